package components

// ParticleComponent 粒子场中的单个粒子
//
// 纯数据组件，不包含任何方法。物理步进由 systems.Advance 完成，
// 绘制由 FieldRenderSystem 完成。
//
// 不变量：
//   - Radius 创建后不再修改
//   - 速度分量的绝对值在整个运行期间保持不变，边界反弹只改变符号
type ParticleComponent struct {
	// 位置（画布像素坐标）
	X float64
	Y float64

	// 速度（像素/帧）
	VX float64
	VY float64

	// Radius 绘制半径（像素）
	Radius float64
}

// Bounds 画布尺寸，用于边界反弹判定
type Bounds struct {
	Width  float64
	Height float64
}

// Area 返回画布面积，宽或高非正时返回 0
func (b Bounds) Area() float64 {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}
