package utils

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseCSSColor 解析样式表中的颜色字符串
//
// 支持的格式：
//   - "#rgb" / "#rrggbb"
//   - "rgb(59, 130, 246)"
//   - "rgba(59, 130, 246, 0.5)"（alpha 取值 0~1）
//
// 返回非预乘的 color.NRGBA。空字符串或无法识别的格式返回错误，
// 调用方应回退到固定颜色。
func ParseCSSColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color value")
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b := c.Clamped().RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	}

	var args string
	var wantAlpha bool
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		args = s[len("rgba(") : len(s)-1]
		wantAlpha = true
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		args = s[len("rgb(") : len(s)-1]
	default:
		return color.NRGBA{}, fmt.Errorf("unsupported color format %q", s)
	}

	parts := strings.Split(args, ",")
	if wantAlpha && len(parts) != 4 || !wantAlpha && len(parts) != 3 {
		return color.NRGBA{}, fmt.Errorf("wrong number of components in %q", s)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid channel %q in %q: %w", parts[i], s, err)
		}
		channels[i] = uint8(math.Round(clamp(v, 0, 255)))
	}

	alpha := 1.0
	if wantAlpha {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha %q in %q: %w", parts[3], s, err)
		}
		alpha = clamp(v, 0, 1)
	}

	return color.NRGBA{
		R: channels[0],
		G: channels[1],
		B: channels[2],
		A: uint8(math.Round(alpha * 255)),
	}, nil
}

// MustParseCSSColor 解析颜色，失败时 panic（仅用于包级常量）
func MustParseCSSColor(s string) color.NRGBA {
	c, err := ParseCSSColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha 替换颜色的 alpha 通道（alpha 取值 0~1）
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(clamp(alpha, 0, 1) * 255))
	return c
}

// ScaleAlpha 将颜色的 alpha 通道乘以 factor
func ScaleAlpha(c color.NRGBA, factor float64) color.NRGBA {
	c.A = uint8(math.Round(clamp(float64(c.A)*factor, 0, 255)))
	return c
}

// BlendColors 在 RGB 空间中按 t 混合两个颜色，alpha 线性插值
func BlendColors(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp(t, 0, 1)
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(alpha))}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
