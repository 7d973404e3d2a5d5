// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态
// 统一鼠标和触摸输入，优先使用触摸
type PointerState struct {
	// X, Y 指针位置（窗口坐标）。触摸释放时为上一 tick 的触摸位置
	X, Y int
	// Pressed 鼠标左键或触摸正在按下
	Pressed bool
	// JustReleased 本帧刚刚释放（点击完成）
	JustReleased bool
	// Touch 输入来自触摸屏
	Touch bool
}

// ReadPointer 读取当前帧的指针状态
func ReadPointer() PointerState {
	// 触摸释放：此时触摸 ID 已失效，使用上一 tick 的位置
	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		x, y := inpututil.TouchPositionInPreviousTick(released[0])
		return PointerState{X: x, Y: y, JustReleased: true, Touch: true}
	}

	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerState{X: x, Y: y, Pressed: true, Touch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		X:            x,
		Y:            y,
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// PointInRect 检测点是否在矩形内（含边界）
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
