// Package canvas 定义粒子场渲染器使用的绘图表面契约
//
// 渲染器只依赖这里的接口：Ebitengine 窗口使用 EbitenSurface，
// 无窗口的快照命令和单元测试使用 RasterSurface。
package canvas

import "image/color"

// Surface 可绘制的画布
//
// 尺寸由渲染器在初始化和每次容器尺寸变化时写入。
type Surface interface {
	// Size 返回当前画布尺寸（像素）
	Size() (width, height int)

	// Resize 设置画布尺寸，旧内容被丢弃
	Resize(width, height int)

	// Clear 将整个画布清空为透明
	Clear()

	// Fill 用颜色覆盖整个画布（按 alpha 混合），用于拖尾效果
	Fill(c color.Color)

	// FillCircle 绘制实心圆
	FillCircle(cx, cy, r float32, c color.Color)

	// StrokeLine 绘制线段
	StrokeLine(x0, y0, x1, y1, width float32, c color.Color)
}

// Container 画布所在的容器，提供当前渲染尺寸
type Container interface {
	RenderedSize() (width, height int)
}

// Element 挂在文档中的画布元素：绘图表面 + 所属容器的几何信息
type Element interface {
	Surface
	Container
}

// Document 宿主文档，按 id 查找画布元素
type Document interface {
	Element(id string) (Element, bool)
}
