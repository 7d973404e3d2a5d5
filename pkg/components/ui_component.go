package components

// UIState represents the current state of a UI element (e.g., button).
type UIState int

const (
	// UINormal indicates the UI element is in its default state.
	UINormal UIState = iota
	// UIHovered indicates the pointer is hovering over the UI element.
	UIHovered
	// UIClicked indicates the UI element is being pressed.
	UIClicked
	// UIDisabled indicates the UI element is disabled and cannot be interacted with.
	UIDisabled
)

// String returns a readable name, used in debug logs.
func (s UIState) String() string {
	switch s {
	case UINormal:
		return "normal"
	case UIHovered:
		return "hovered"
	case UIClicked:
		return "clicked"
	case UIDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// ThemeToggleComponent 主题切换按钮（页面右上角的太阳/月亮图标）
//
// 纯数据组件：交互由 ThemeToggleSystem 处理，绘制由 ThemeToggleRenderSystem 处理。
// 位置由同一实体上的 PositionComponent 提供。
type ThemeToggleComponent struct {
	// Width/Height 按钮尺寸（像素）
	Width  float64
	Height float64

	// Margin 距离窗口右上角的边距，窗口尺寸变化时用于重新定位
	Margin float64

	// State 当前交互状态
	State UIState

	// Enabled 是否响应点击
	Enabled bool
}
