package systems

import "image/color"

type recordedCircle struct {
	X, Y, R float32
	Color   color.NRGBA
}

type recordedLine struct {
	X0, Y0, X1, Y1, Width float32
	Color                 color.NRGBA
}

// recordingSurface 记录所有绘制调用的假画布
type recordingSurface struct {
	width, height int
	clears        int
	fills         []color.NRGBA
	circles       []recordedCircle
	lines         []recordedLine
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{width: w, height: h}
}

func (s *recordingSurface) Size() (int, int) { return s.width, s.height }
func (s *recordingSurface) Resize(w, h int) { s.width, s.height = w, h }
func (s *recordingSurface) Clear() { s.clears++ }
func (s *recordingSurface) Fill(c color.Color) { s.fills = append(s.fills, toNRGBA(c)) }
func (s *recordingSurface) FillCircle(cx, cy, r float32, c color.Color) {
	s.circles = append(s.circles, recordedCircle{cx, cy, r, toNRGBA(c)})
}
func (s *recordingSurface) StrokeLine(x0, y0, x1, y1, width float32, c color.Color) {
	s.lines = append(s.lines, recordedLine{x0, y0, x1, y1, width, toNRGBA(c)})
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// fakeStyle 固定的样式来源
type fakeStyle struct {
	theme  string
	values map[string]map[string]string
}

func (f *fakeStyle) CurrentTheme() string { return f.theme }
func (f *fakeStyle) StyleValue(name string) string {
	return f.values[f.theme][name]
}
