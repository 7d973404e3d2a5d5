package systems

import (
	"testing"

	"github.com/decker502/herofield/pkg/components"
	"github.com/decker502/herofield/pkg/ecs"
	"github.com/decker502/herofield/pkg/utils"
)

func newToggleEntity(em *ecs.EntityManager) (*components.ThemeToggleComponent, *components.PositionComponent) {
	id := em.CreateEntity()
	button := &components.ThemeToggleComponent{Width: 40, Height: 40, Margin: 16, Enabled: true}
	pos := &components.PositionComponent{}
	em.AddComponent(id, button)
	em.AddComponent(id, pos)
	return button, pos
}

func TestThemeToggleSystemLayout(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewThemeToggleSystem(em, nil)
	_, pos := newToggleEntity(em)

	sys.Layout(800, 600)
	if pos.X != 744 || pos.Y != 16 {
		t.Errorf("position: got (%v, %v), want (744, 16)", pos.X, pos.Y)
	}

	sys.Layout(400, 300)
	if pos.X != 344 {
		t.Errorf("position after resize: got %v, want 344", pos.X)
	}
}

func TestThemeToggleSystemHandleInput(t *testing.T) {
	em := ecs.NewEntityManager()
	toggles := 0
	sys := NewThemeToggleSystem(em, func() { toggles++ })
	button, _ := newToggleEntity(em)
	sys.Layout(800, 600) // 按钮区域 (744,16)-(784,56)

	tests := []struct {
		name        string
		pointer     utils.PointerState
		key         bool
		wantState   components.UIState
		wantToggled bool
	}{
		{"按钮外", utils.PointerState{X: 10, Y: 10}, false, components.UINormal, false},
		{"悬停", utils.PointerState{X: 760, Y: 30}, false, components.UIHovered, false},
		{"按下", utils.PointerState{X: 760, Y: 30, Pressed: true}, false, components.UIClicked, false},
		{"释放触发切换", utils.PointerState{X: 760, Y: 30, JustReleased: true}, false, components.UIHovered, true},
		{"按钮外释放不触发", utils.PointerState{X: 10, Y: 10, JustReleased: true}, false, components.UINormal, false},
		{"触摸释放触发切换", utils.PointerState{X: 750, Y: 20, JustReleased: true, Touch: true}, false, components.UIHovered, true},
		{"T 键触发切换", utils.PointerState{X: 10, Y: 10}, true, components.UINormal, true},
		{"T 键和点击同帧只切换一次", utils.PointerState{X: 760, Y: 30, JustReleased: true}, true, components.UIHovered, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := toggles
			got := sys.HandleInput(tt.pointer, tt.key)
			if got != tt.wantToggled {
				t.Errorf("toggled: got %v, want %v", got, tt.wantToggled)
			}
			wantCalls := 0
			if tt.wantToggled {
				wantCalls = 1
			}
			if toggles-before != wantCalls {
				t.Errorf("onToggle calls: got %d, want %d", toggles-before, wantCalls)
			}
			if button.State != tt.wantState {
				t.Errorf("state: got %s, want %s", button.State, tt.wantState)
			}
		})
	}
}

func TestThemeToggleSystemDisabled(t *testing.T) {
	em := ecs.NewEntityManager()
	toggles := 0
	sys := NewThemeToggleSystem(em, func() { toggles++ })
	button, _ := newToggleEntity(em)
	button.Enabled = false
	sys.Layout(800, 600)

	sys.HandleInput(utils.PointerState{X: 760, Y: 30, JustReleased: true}, false)
	if toggles != 0 {
		t.Error("disabled button should not toggle")
	}
	if button.State != components.UIDisabled {
		t.Errorf("state: got %s, want disabled", button.State)
	}
}

func TestThemeToggleRenderSystemIcons(t *testing.T) {
	em := ecs.NewEntityManager()
	button, _ := newToggleEntity(em)
	NewThemeToggleSystem(em, nil).Layout(800, 600)

	style := &fakeStyle{theme: "dark"}
	render := NewThemeToggleRenderSystem(em, style)

	dark := newRecordingSurface(800, 600)
	render.Draw(dark)
	if len(dark.lines) != 0 {
		t.Errorf("moon icon should not draw rays, got %d lines", len(dark.lines))
	}
	// 边框 + 背景 + 月牙两个圆
	if len(dark.circles) != 4 {
		t.Errorf("dark circles: got %d, want 4", len(dark.circles))
	}
	if dark.circles[0].X != 764 || dark.circles[0].Y != 36 || dark.circles[0].R != 20 {
		t.Errorf("button circle: got %+v, want center (764, 36) r=20", dark.circles[0])
	}

	style.theme = "light"
	light := newRecordingSurface(800, 600)
	render.Draw(light)
	if len(light.lines) != 8 {
		t.Errorf("sun icon rays: got %d, want 8", len(light.lines))
	}

	// 悬停时背景变化
	normalFill := light.circles[1].Color
	button.State = components.UIHovered
	hovered := newRecordingSurface(800, 600)
	render.Draw(hovered)
	if hovered.circles[1].Color == normalFill {
		t.Error("hovered background should differ from normal background")
	}
}
