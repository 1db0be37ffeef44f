// Package terminal runs the arcade games inside a terminal through tcell.
// The playfield is rasterised onto a grid of character cells; each cell
// covers a fixed rectangle of canvas pixels.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/arcade/pkg/types"
)

// 小于一个单元格的图形用字符表示
const (
	blockRune  = '■'
	circleRune = '●'
	ringRune   = '·'
)

type cell struct {
	ch     rune
	fg, bg color.RGBA
}

// Grid 字符单元格画布，实现 types.Canvas
type Grid struct {
	cols, rows int
	w, h       float64 // 画布逻辑尺寸（像素）
	cw, ch     float64 // 每个单元格覆盖的像素
	dx, dy     float64
	cells      []cell
}

// NewGrid 创建 cols×rows 的单元格画布，映射 w×h 的游戏画布
func NewGrid(cols, rows int, w, h float64) *Grid {
	g := &Grid{w: w, h: h}
	g.Resize(cols, rows)
	return g
}

// Resize 终端尺寸变化时调整单元格数量
func (g *Grid) Resize(cols, rows int) {
	g.cols, g.rows = max(cols, 1), max(rows, 1)
	g.cw = g.w / float64(g.cols)
	g.ch = g.h / float64(g.rows)
	g.cells = make([]cell, g.cols*g.rows)
}

// Dims 单元格列数与行数
func (g *Grid) Dims() (int, int) {
	return g.cols, g.rows
}

// Cell 读取单元格内容
func (g *Grid) Cell(col, row int) (rune, color.RGBA, color.RGBA) {
	c := g.cells[row*g.cols+col]
	return c.ch, c.fg, c.bg
}

// ToCanvas 单元格中心的画布坐标
func (g *Grid) ToCanvas(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * g.cw, (float64(row) + 0.5) * g.ch
}

// cellAt 包含画布点 (x, y) 的单元格（已叠加偏移）
func (g *Grid) cellAt(x, y float64) (int, int, bool) {
	col := int(math.Floor((x + g.dx) / g.cw))
	row := int(math.Floor((y + g.dy) / g.ch))
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return 0, 0, false
	}
	return col, row, true
}

// center 单元格中心在绘制坐标系（减去偏移）中的位置
func (g *Grid) center(col, row int) (float64, float64) {
	x, y := g.ToCanvas(col, row)
	return x - g.dx, y - g.dy
}

// span 覆盖 [lo, hi) 的单元格下标范围（已裁剪）
func span(lo, hi, size, offset float64, n int) (int, int) {
	a := int(math.Floor((lo + offset) / size))
	b := int(math.Ceil((hi + offset) / size))
	return max(a, 0), min(b, n)
}

// blend 预乘 alpha 的 src over dst
func blend(src, dst color.RGBA) color.RGBA {
	if src.A == 0xff {
		return src
	}
	k := float64(0xff-src.A) / 0xff
	return color.RGBA{
		R: uint8(float64(src.R) + float64(dst.R)*k),
		G: uint8(float64(src.G) + float64(dst.G)*k),
		B: uint8(float64(src.B) + float64(dst.B)*k),
		A: uint8(float64(src.A) + float64(dst.A)*k),
	}
}

func (g *Grid) paintBg(col, row int, c color.RGBA) {
	p := &g.cells[row*g.cols+col]
	p.bg = blend(c, p.bg)
	if c.A == 0xff {
		p.ch = 0
	}
}

func (g *Grid) paintFg(col, row int, r rune, c color.RGBA) {
	p := &g.cells[row*g.cols+col]
	p.ch = r
	p.fg = blend(c, p.bg)
}

// mark 图形小于一个单元格时，用字符标出它所在的单元格
func (g *Grid) mark(x, y float64, r rune, c color.RGBA) {
	if col, row, ok := g.cellAt(x, y); ok {
		g.paintFg(col, row, r, c)
	}
}

// Size 实现 types.Canvas
func (g *Grid) Size() (float64, float64) {
	return g.w, g.h
}

// SetOffset 实现 types.Canvas
func (g *Grid) SetOffset(dx, dy float64) {
	g.dx, g.dy = dx, dy
}

// Fill 实现 types.Canvas
func (g *Grid) Fill(c color.RGBA) {
	for i := range g.cells {
		g.cells[i] = cell{bg: c}
	}
}

// FillRect 实现 types.Canvas
func (g *Grid) FillRect(x, y, w, h float64, c color.RGBA) {
	c0, c1 := span(x, x+w, g.cw, g.dx, g.cols)
	r0, r1 := span(y, y+h, g.ch, g.dy, g.rows)
	painted := false
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			cx, cy := g.center(col, row)
			if cx >= x && cx < x+w && cy >= y && cy < y+h {
				g.paintBg(col, row, c)
				painted = true
			}
		}
	}
	if !painted {
		g.mark(x+w/2, y+h/2, blockRune, c)
	}
}

// FillCircle 实现 types.Canvas
func (g *Grid) FillCircle(cx, cy, r float64, c color.RGBA) {
	c0, c1 := span(cx-r, cx+r, g.cw, g.dx, g.cols)
	r0, r1 := span(cy-r, cy+r, g.ch, g.dy, g.rows)
	painted := false
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			x, y := g.center(col, row)
			if math.Hypot(x-cx, y-cy) <= r {
				g.paintBg(col, row, c)
				painted = true
			}
		}
	}
	if !painted {
		g.mark(cx, cy, circleRune, c)
	}
}

// StrokeCircle 实现 types.Canvas：沿圆周采样，每个经过的单元格画一个点
func (g *Grid) StrokeCircle(cx, cy, r, width float64, c color.RGBA) {
	step := min(g.cw, g.ch) / 2
	n := max(16, int(2*math.Pi*r/step))
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		g.mark(cx+r*math.Cos(a), cy+r*math.Sin(a), ringRune, c)
	}
}

// lineRune 按单元格比例下的斜率选择线段字符
func (g *Grid) lineRune(dx, dy float64) rune {
	sx, sy := dx/g.cw, dy/g.ch
	switch {
	case math.Abs(sy) < 0.4*math.Abs(sx):
		return '-'
	case math.Abs(sx) < 0.4*math.Abs(sy):
		return '|'
	case (sx > 0) == (sy > 0):
		return '\\'
	default:
		return '/'
	}
}

// StrokeLine 实现 types.Canvas
func (g *Grid) StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA) {
	dx, dy := x2-x1, y2-y1
	r := g.lineRune(dx, dy)
	step := min(g.cw, g.ch) / 2
	n := max(1, int(math.Hypot(dx, dy)/step))
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		g.mark(x1+dx*t, y1+dy*t, r, c)
	}
}

// FillPolygon 实现 types.Canvas：填充中心落在凸多边形内的单元格
func (g *Grid) FillPolygon(xs, ys []float64, c color.RGBA) {
	n := min(len(xs), len(ys))
	if n < 3 {
		return
	}
	minX, maxX, minY, maxY := xs[0], xs[0], ys[0], ys[0]
	sumX, sumY := 0.0, 0.0
	for i := 0; i < n; i++ {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
		sumX += xs[i]
		sumY += ys[i]
	}
	c0, c1 := span(minX, maxX, g.cw, g.dx, g.cols)
	r0, r1 := span(minY, maxY, g.ch, g.dy, g.rows)
	painted := false
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			x, y := g.center(col, row)
			if insideConvex(xs[:n], ys[:n], x, y) {
				g.paintBg(col, row, c)
				painted = true
			}
		}
	}
	if !painted {
		g.mark(sumX/float64(n), sumY/float64(n), blockRune, c)
	}
}

// insideConvex 点是否在凸多边形内（顶点顺序不限）
func insideConvex(xs, ys []float64, x, y float64) bool {
	var pos, neg bool
	n := len(xs)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := (xs[j]-xs[i])*(y-ys[i]) - (ys[j]-ys[i])*(x-xs[i])
		if cross > 0 {
			pos = true
		} else if cross < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// DrawText 实现 types.Canvas：每个字符占一个单元格，从文本左端所在单元格开始
func (g *Grid) DrawText(s string, x, y float64, c color.RGBA) {
	col, row, ok := g.cellAt(x, y+types.GlyphHeight/2)
	if !ok {
		return
	}
	for _, r := range s {
		if col >= g.cols {
			break
		}
		if r != ' ' {
			g.paintFg(col, row, r, c)
		}
		col++
	}
}

// Flush 把单元格写到 screen，从第 top 行开始
func (g *Grid) Flush(screen tcell.Screen, top int) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			p := g.cells[row*g.cols+col]
			style := tcell.StyleDefault.
				Foreground(rgb(p.fg)).
				Background(rgb(p.bg))
			ch := p.ch
			if ch == 0 {
				ch = ' '
			}
			screen.SetContent(col, top+row, ch, nil, style)
		}
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var _ types.Canvas = (*Grid)(nil)
