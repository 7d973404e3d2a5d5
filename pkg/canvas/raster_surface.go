package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa 用四段三次贝塞尔曲线逼近圆时的控制点系数
const kappa = 0.5522847498

// RasterSurface 基于 *image.RGBA 的软件画布
//
// 使用 golang.org/x/image/vector 做抗锯齿光栅化。用于无窗口的快照命令
// 以及需要检查像素的测试。容器尺寸通过 SetRenderedSize 模拟。
type RasterSurface struct {
	img        *image.RGBA
	rasterizer *vector.Rasterizer
	renderedW  int
	renderedH  int
}

// NewRasterSurface 创建软件画布，容器尺寸初始等于画布尺寸
func NewRasterSurface(width, height int) *RasterSurface {
	s := &RasterSurface{rasterizer: vector.NewRasterizer(0, 0)}
	s.Resize(width, height)
	s.renderedW, s.renderedH = s.Size()
	return s
}

// SetRenderedSize 模拟容器尺寸变化（不会自动改变画布尺寸）
func (s *RasterSurface) SetRenderedSize(width, height int) {
	s.renderedW, s.renderedH = width, height
}

// RenderedSize 实现 Container 接口
func (s *RasterSurface) RenderedSize() (int, int) {
	return s.renderedW, s.renderedH
}

// Image 返回底层像素缓冲
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// Size 实现 Surface 接口
func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize 实现 Surface 接口
func (s *RasterSurface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Clear 实现 Surface 接口
func (s *RasterSurface) Clear() {
	clear(s.img.Pix)
}

// Fill 实现 Surface 接口
func (s *RasterSurface) Fill(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Over)
}

// FillCircle 实现 Surface 接口
func (s *RasterSurface) FillCircle(cx, cy, r float32, c color.Color) {
	if r <= 0 || !s.intersects(cx-r, cy-r, cx+r, cy+r) {
		return
	}
	k := r * kappa

	z := s.begin()
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
	s.finish(c)
}

// StrokeLine 实现 Surface 接口，线段按宽度展开为四边形
func (s *RasterSurface) StrokeLine(x0, y0, x1, y1, width float32, c color.Color) {
	if width <= 0 {
		return
	}
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	half := width / 2
	nx, ny := -dy/length*half, dx/length*half

	minX := min(x0, x1) - half
	minY := min(y0, y1) - half
	maxX := max(x0, x1) + half
	maxY := max(y0, y1) + half
	if !s.intersects(minX, minY, maxX, maxY) {
		return
	}

	z := s.begin()
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
	s.finish(c)
}

// intersects 判断包围盒是否与画布相交
func (s *RasterSurface) intersects(minX, minY, maxX, maxY float32) bool {
	w, h := s.Size()
	if w == 0 || h == 0 {
		return false
	}
	return maxX >= 0 && maxY >= 0 && minX <= float32(w) && minY <= float32(h)
}

func (s *RasterSurface) begin() *vector.Rasterizer {
	w, h := s.Size()
	s.rasterizer.Reset(w, h)
	return s.rasterizer
}

func (s *RasterSurface) finish(c color.Color) {
	s.rasterizer.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}
