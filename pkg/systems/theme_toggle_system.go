package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/herofield/pkg/components"
	"github.com/decker502/herofield/pkg/ecs"
	"github.com/decker502/herofield/pkg/utils"
)

// ThemeToggleSystem 主题切换按钮交互系统
//
// 职责：
//   - 窗口尺寸变化时把按钮固定在右上角
//   - 检测悬停/按下，更新按钮状态
//   - 点击（或触摸）在按钮上释放、或按下 T 键时调用 onToggle
type ThemeToggleSystem struct {
	entityManager *ecs.EntityManager
	onToggle      func()
}

// NewThemeToggleSystem 创建主题切换交互系统
func NewThemeToggleSystem(em *ecs.EntityManager, onToggle func()) *ThemeToggleSystem {
	return &ThemeToggleSystem{
		entityManager: em,
		onToggle:      onToggle,
	}
}

// Update 读取本帧输入并处理
func (s *ThemeToggleSystem) Update() {
	s.HandleInput(utils.ReadPointer(), inpututil.IsKeyJustPressed(ebiten.KeyT))
}

// HandleInput 处理一帧的指针和键盘输入
//
// 返回：
//   - bool: 本帧是否触发了切换
func (s *ThemeToggleSystem) HandleInput(pointer utils.PointerState, keyToggle bool) bool {
	toggled := false
	if keyToggle {
		s.fire()
		toggled = true
	}

	entities := ecs.GetEntitiesWith2[*components.ThemeToggleComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		button, _ := ecs.GetComponent[*components.ThemeToggleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		inside := utils.PointInRect(float64(pointer.X), float64(pointer.Y), pos.X, pos.Y, button.Width, button.Height)
		switch {
		case !inside:
			button.State = components.UINormal
		case pointer.JustReleased:
			if !toggled {
				s.fire()
				toggled = true
			}
			button.State = components.UIHovered
		case pointer.Pressed:
			button.State = components.UIClicked
		case pointer.Touch:
			// 触摸屏没有悬停
			button.State = components.UINormal
		default:
			button.State = components.UIHovered
		}
	}
	return toggled
}

// Layout 将按钮放到窗口右上角
func (s *ThemeToggleSystem) Layout(screenWidth, screenHeight int) {
	entities := ecs.GetEntitiesWith2[*components.ThemeToggleComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		button, _ := ecs.GetComponent[*components.ThemeToggleComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.X = float64(screenWidth) - button.Margin - button.Width
		pos.Y = button.Margin
	}
}

func (s *ThemeToggleSystem) fire() {
	if s.onToggle != nil {
		s.onToggle()
	}
}
