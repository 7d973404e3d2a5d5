package systems

import (
	"image/color"
	"log"

	"github.com/decker502/herofield/pkg/canvas"
	"github.com/decker502/herofield/pkg/components"
	"github.com/decker502/herofield/pkg/config"
	"github.com/decker502/herofield/pkg/ecs"
	"github.com/decker502/herofield/pkg/utils"
)

// StyleSource 当前主题及其样式变量的只读视图
// 由 game.ThemeManager 实现；渲染器只读不写
type StyleSource interface {
	CurrentTheme() string
	StyleValue(name string) string
}

// FieldRenderSystem 粒子场绘制系统
// 先绘制连线，再绘制粒子
//
// 颜色在每次 Draw 时从 StyleSource 实时解析，不缓存，
// 主题切换后下一帧即使用新颜色。
type FieldRenderSystem struct {
	entityManager *ecs.EntityManager
	config        *config.FieldConfig
	style         StyleSource
	search        config.NeighborSearch

	fallback color.NRGBA

	// 最近一次 Draw 的统计，供调试信息显示
	lastLinks     int
	lastParticles int
	lastColorErr  string
}

// NewFieldRenderSystem 创建粒子场绘制系统
//
// 配置中的回退颜色无法解析时使用 config.DefaultFallbackColor
func NewFieldRenderSystem(em *ecs.EntityManager, cfg *config.FieldConfig, style StyleSource) *FieldRenderSystem {
	fallback, err := utils.ParseCSSColor(cfg.FallbackColor)
	if err != nil {
		log.Printf("[FieldRenderSystem] Warning: invalid fallback color %q: %v", cfg.FallbackColor, err)
		fallback = utils.MustParseCSSColor(config.DefaultFallbackColor)
	}

	return &FieldRenderSystem{
		entityManager: em,
		config:        cfg,
		style:         style,
		search:        cfg.ResolveSearch(),
		fallback:      fallback,
	}
}

// ResolveColor 解析当前主题下的粒子颜色
// 样式变量为空或无法解析时返回回退颜色
func (s *FieldRenderSystem) ResolveColor() color.NRGBA {
	if s.style == nil {
		return s.fallback
	}

	value := s.style.StyleValue(s.config.ColorParam)
	if value == "" {
		return s.fallback
	}

	c, err := utils.ParseCSSColor(value)
	if err != nil {
		// 同一个错误只记录一次，避免每帧刷屏
		if msg := err.Error(); msg != s.lastColorErr {
			log.Printf("[FieldRenderSystem] Warning: %s=%q: %v (using fallback)", s.config.ColorParam, value, err)
			s.lastColorErr = msg
		}
		return s.fallback
	}
	return c
}

// Draw 绘制所有粒子和连线
//
// 参数：
//   - surface: 目标画布
//   - muted: alpha 乘数，1 表示正常绘制（mute 策略下非主主题传入 muted_opacity）
func (s *FieldRenderSystem) Draw(surface canvas.Surface, muted float64) {
	particles := s.particles()
	s.lastParticles = len(particles)
	s.lastLinks = 0
	if len(particles) == 0 {
		return
	}

	base := s.ResolveColor()

	if s.config.ConnectLines {
		links := FindLinks(particles, s.config.ConnectDistance, s.search)
		s.lastLinks = len(links)
		width := float32(s.config.LineWidth)
		for _, l := range links {
			// 线条 alpha 只由距离和阻尼决定，与基础颜色的 alpha 无关
			c := utils.WithAlpha(base, l.Opacity*s.config.LineOpacityDamping*muted)
			a, b := particles[l.A], particles[l.B]
			surface.StrokeLine(float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, c)
		}
	}

	fill := utils.ScaleAlpha(base, muted)
	for _, p := range particles {
		surface.FillCircle(float32(p.X), float32(p.Y), float32(p.Radius), fill)
	}
}

// LastStats 返回最近一次 Draw 绘制的粒子数和连线数
func (s *FieldRenderSystem) LastStats() (particles, links int) {
	return s.lastParticles, s.lastLinks
}

// particles 按实体 ID 顺序返回所有粒子
func (s *FieldRenderSystem) particles() []*components.ParticleComponent {
	entities := ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager)
	result := make([]*components.ParticleComponent, 0, len(entities))
	for _, id := range entities {
		if p, ok := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id); ok {
			result = append(result, p)
		}
	}
	return result
}
