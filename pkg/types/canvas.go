// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"image/color"
	"unicode/utf8"
)

// Canvas 宿主提供的 2D 绘制表面
// 坐标为画布像素坐标（左上角为原点）。
// 实现需要把 SetOffset 设置的偏移量叠加到所有绘制调用上（用于屏幕震动）。
type Canvas interface {
	// Size 返回画布的逻辑尺寸
	Size() (w, h float64)
	// SetOffset 设置后续绘制的整体偏移
	SetOffset(dx, dy float64)
	// Fill 用纯色填充整个画布
	Fill(c color.RGBA)
	FillRect(x, y, w, h float64, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
	StrokeCircle(cx, cy, r, width float64, c color.RGBA)
	StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA)
	// FillPolygon 填充由顶点 (xs[i], ys[i]) 围成的凸多边形
	FillPolygon(xs, ys []float64, c color.RGBA)
	// DrawText 以 (x, y) 为左上角绘制单行文本
	DrawText(s string, x, y float64, c color.RGBA)
}

// 宿主字体的字形尺寸（basicfont 7x13），用于对齐文本
const (
	GlyphWidth  = 7
	GlyphHeight = 13
)

// TextWidth 单行文本的像素宽度
func TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * GlyphWidth
}
