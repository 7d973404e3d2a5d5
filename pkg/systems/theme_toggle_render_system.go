package systems

import (
	"image/color"
	"math"

	"github.com/decker502/herofield/pkg/canvas"
	"github.com/decker502/herofield/pkg/components"
	"github.com/decker502/herofield/pkg/ecs"
	"github.com/decker502/herofield/pkg/utils"
)

// 按钮配色的默认值，样式表未定义对应变量时使用
var (
	defaultToggleBackground = color.NRGBA{R: 30, G: 41, B: 59, A: 255}
	defaultToggleBorder     = color.NRGBA{R: 71, G: 85, B: 105, A: 255}
	defaultToggleIcon       = color.NRGBA{R: 226, G: 232, B: 240, A: 255}
)

// ThemeToggleRenderSystem 主题切换按钮渲染系统
//
// 圆形按钮：深色主题显示月亮，浅色主题显示太阳（点击后切换到的主题由图标暗示）。
// 配色取自样式变量 --toggle-background / --toggle-border / --toggle-icon。
type ThemeToggleRenderSystem struct {
	entityManager *ecs.EntityManager
	style         StyleSource
}

// NewThemeToggleRenderSystem 创建主题切换按钮渲染系统
func NewThemeToggleRenderSystem(em *ecs.EntityManager, style StyleSource) *ThemeToggleRenderSystem {
	return &ThemeToggleRenderSystem{
		entityManager: em,
		style:         style,
	}
}

// Draw 绘制所有主题切换按钮
func (s *ThemeToggleRenderSystem) Draw(surface canvas.Surface) {
	background := s.styleColor("--toggle-background", defaultToggleBackground)
	border := s.styleColor("--toggle-border", defaultToggleBorder)
	icon := s.styleColor("--toggle-icon", defaultToggleIcon)
	light := s.style != nil && s.style.CurrentTheme() == "light"

	entities := ecs.GetEntitiesWith2[*components.ThemeToggleComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		button, _ := ecs.GetComponent[*components.ThemeToggleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		r := float32(math.Min(button.Width, button.Height) / 2)
		cx := float32(pos.X + button.Width/2)
		cy := float32(pos.Y + button.Height/2)

		fill := background
		switch button.State {
		case components.UIHovered:
			fill = utils.BlendColors(background, icon, 0.15)
		case components.UIClicked:
			fill = utils.BlendColors(background, icon, 0.3)
		case components.UIDisabled:
			icon = utils.ScaleAlpha(icon, 0.4)
		}

		surface.FillCircle(cx, cy, r, border)
		surface.FillCircle(cx, cy, r-1, fill)

		if light {
			drawSun(surface, cx, cy, r*0.3, icon)
		} else {
			drawMoon(surface, cx, cy, r*0.45, icon, fill)
		}
	}
}

// drawSun 圆盘 + 8 条光线
func drawSun(surface canvas.Surface, cx, cy, r float32, c color.Color) {
	surface.FillCircle(cx, cy, r, c)
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		cos, sin := float32(math.Cos(a)), float32(math.Sin(a))
		surface.StrokeLine(cx+cos*r*1.5, cy+sin*r*1.5, cx+cos*r*2.1, cy+sin*r*2.1, 1.5, c)
	}
}

// drawMoon 用背景色圆遮住图标圆的一部分，形成月牙
func drawMoon(surface canvas.Surface, cx, cy, r float32, c, background color.Color) {
	surface.FillCircle(cx, cy, r, c)
	surface.FillCircle(cx+r*0.45, cy-r*0.35, r*0.85, background)
}

func (s *ThemeToggleRenderSystem) styleColor(name string, fallback color.NRGBA) color.NRGBA {
	if s.style == nil {
		return fallback
	}
	c, err := utils.ParseCSSColor(s.style.StyleValue(name))
	if err != nil {
		return fallback
	}
	return c
}
