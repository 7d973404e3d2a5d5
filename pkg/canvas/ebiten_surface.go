package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface 基于离屏 *ebiten.Image 的画布元素
//
// 画布图像由 App 在 Draw 阶段合成到屏幕上。尺寸为 0 时不持有图像，
// 所有绘制调用变为空操作。
type EbitenSurface struct {
	image  *ebiten.Image
	width  int
	height int

	// container 返回宿主容器当前的渲染尺寸（窗口的外部尺寸）
	container func() (int, int)

	// borrowed 图像由调用方持有（例如屏幕），Resize 不重新分配
	borrowed bool
}

// NewEbitenSurface 创建尚未确定尺寸的画布元素
func NewEbitenSurface(container func() (int, int)) *EbitenSurface {
	return &EbitenSurface{container: container}
}

// WrapImage 在调用方持有的图像上绘制（例如 Draw 中的 screen）
// 每帧重新包装即可，不会分配新图像
func WrapImage(img *ebiten.Image) *EbitenSurface {
	b := img.Bounds()
	return &EbitenSurface{image: img, width: b.Dx(), height: b.Dy(), borrowed: true}
}

// Image 返回底层图像，尺寸为 0 时返回 nil
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.image
}

// RenderedSize 实现 Container 接口
func (s *EbitenSurface) RenderedSize() (int, int) {
	if s.container == nil {
		return s.width, s.height
	}
	return s.container()
}

// Size 实现 Surface 接口
func (s *EbitenSurface) Size() (int, int) {
	return s.width, s.height
}

// Resize 实现 Surface 接口，尺寸变化时重新分配图像
func (s *EbitenSurface) Resize(width, height int) {
	if s.borrowed {
		return
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == s.width && height == s.height && (s.image != nil || width == 0 || height == 0) {
		return
	}

	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
	s.width, s.height = width, height
	if width > 0 && height > 0 {
		s.image = ebiten.NewImage(width, height)
	}
}

// Clear 实现 Surface 接口
func (s *EbitenSurface) Clear() {
	if s.image != nil {
		s.image.Clear()
	}
}

// Fill 实现 Surface 接口（按 alpha 混合，而不是替换像素）
func (s *EbitenSurface) Fill(c color.Color) {
	if s.image == nil {
		return
	}
	vector.DrawFilledRect(s.image, 0, 0, float32(s.width), float32(s.height), c, false)
}

// FillCircle 实现 Surface 接口
func (s *EbitenSurface) FillCircle(cx, cy, r float32, c color.Color) {
	if s.image == nil || r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.image, cx, cy, r, c, true)
}

// StrokeLine 实现 Surface 接口
func (s *EbitenSurface) StrokeLine(x0, y0, x1, y1, width float32, c color.Color) {
	if s.image == nil || width <= 0 {
		return
	}
	vector.StrokeLine(s.image, x0, y0, x1, y1, width, c, true)
}
