package terminal

import (
	"image/color"
	"testing"

	"github.com/decker502/arcade/pkg/types"
)

var (
	blue  = color.RGBA{B: 0xff, A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	black = color.RGBA{A: 0xff}
)

// newTestGrid 10x5 个单元格，每个覆盖 10x10 像素
func newTestGrid() *Grid {
	g := NewGrid(10, 5, 100, 50)
	g.Fill(blue)
	return g
}

func bgAt(g *Grid, col, row int) color.RGBA {
	_, _, bg := g.Cell(col, row)
	return bg
}

func runeAt(g *Grid, col, row int) rune {
	r, _, _ := g.Cell(col, row)
	return r
}

func TestGridFillRect(t *testing.T) {
	g := newTestGrid()
	g.FillRect(20, 10, 30, 20, red)

	tests := []struct {
		col, row int
		want     color.RGBA
	}{
		{2, 1, red},
		{4, 2, red},
		{5, 1, blue},
		{1, 1, blue},
		{2, 3, blue},
	}
	for _, tt := range tests {
		if got := bgAt(g, tt.col, tt.row); got != tt.want {
			t.Errorf("cell (%d,%d) bg = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}
}

// TestGridSmallShapes 小于一个单元格的图形用字符标出
func TestGridSmallShapes(t *testing.T) {
	g := newTestGrid()
	g.FillRect(61, 31, 2, 2, green)
	if r := runeAt(g, 6, 3); r != blockRune {
		t.Errorf("small rect rune = %q, want %q", r, blockRune)
	}
	if bgAt(g, 6, 3) != blue {
		t.Error("small rect should not repaint the background")
	}

	g.FillCircle(50, 25, 3, red)
	if r := runeAt(g, 5, 2); r != circleRune {
		t.Errorf("small circle rune = %q, want %q", r, circleRune)
	}
}

func TestGridFillCircle(t *testing.T) {
	g := newTestGrid()
	g.FillCircle(50, 25, 12, red)
	if bgAt(g, 4, 2) != red || bgAt(g, 5, 2) != red {
		t.Error("cells at the circle center should be filled")
	}
	if bgAt(g, 0, 0) != blue {
		t.Error("corner cell should stay untouched")
	}
}

func TestGridStrokeLine(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		col, row       int
		want           rune
	}{
		{"水平线", 0, 5, 100, 5, 3, 0, '-'},
		{"竖直线", 35, 0, 35, 50, 3, 2, '|'},
		{"右下斜线", 0, 0, 50, 50, 2, 2, '\\'},
		{"右上斜线", 0, 50, 50, 0, 2, 2, '/'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid()
			g.StrokeLine(tt.x1, tt.y1, tt.x2, tt.y2, 1, green)
			if r := runeAt(g, tt.col, tt.row); r != tt.want {
				t.Errorf("rune at (%d,%d) = %q, want %q", tt.col, tt.row, r, tt.want)
			}
		})
	}
}

func TestGridFillPolygon(t *testing.T) {
	g := newTestGrid()
	g.FillPolygon([]float64{20, 40, 40, 20}, []float64{20, 20, 40, 40}, red)
	for _, c := range [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}} {
		if bgAt(g, c[0], c[1]) != red {
			t.Errorf("cell %v should be inside the polygon", c)
		}
	}
	if bgAt(g, 4, 2) != blue || bgAt(g, 1, 2) != blue {
		t.Error("cells outside the polygon should stay untouched")
	}

	// 反向顶点顺序结果相同
	g2 := newTestGrid()
	g2.FillPolygon([]float64{20, 20, 40, 40}, []float64{20, 40, 40, 20}, red)
	if bgAt(g2, 2, 2) != red {
		t.Error("winding order should not matter")
	}
}

func TestGridDrawText(t *testing.T) {
	g := newTestGrid()
	g.DrawText("hi there!?", 10, 14, green)
	if r := runeAt(g, 1, 2); r != 'h' {
		t.Errorf("first rune = %q, want 'h'", r)
	}
	if r := runeAt(g, 2, 2); r != 'i' {
		t.Errorf("second rune = %q, want 'i'", r)
	}
	// 超出右边界的字符被截断
	if r := runeAt(g, 9, 2); r != '!' {
		t.Errorf("last visible rune = %q, want '!'", r)
	}
	// 空格不覆盖单元格
	if r := runeAt(g, 3, 2); r != 0 {
		t.Errorf("space cell rune = %q, want none", r)
	}

	// 画布外的文本忽略
	g.DrawText("x", -50, 14, green)
}

func TestGridOffset(t *testing.T) {
	g := newTestGrid()
	g.SetOffset(10, 0)
	g.FillRect(0, 0, 10, 10, red)
	if bgAt(g, 1, 0) != red {
		t.Error("offset should shift the rect one cell right")
	}
	if bgAt(g, 0, 0) != blue {
		t.Error("original cell should stay untouched")
	}
}

func TestGridResizeAndMapping(t *testing.T) {
	g := NewGrid(10, 5, 100, 50)
	x, y := g.ToCanvas(0, 0)
	if x != 5 || y != 5 {
		t.Errorf("ToCanvas(0,0) = (%v,%v), want (5,5)", x, y)
	}
	g.Resize(20, 10)
	if cols, rows := g.Dims(); cols != 20 || rows != 10 {
		t.Errorf("Dims = %dx%d, want 20x10", cols, rows)
	}
	x, y = g.ToCanvas(19, 9)
	if x != 97.5 || y != 47.5 {
		t.Errorf("ToCanvas(19,9) = (%v,%v), want (97.5,47.5)", x, y)
	}

	g.Resize(0, 0)
	if cols, rows := g.Dims(); cols != 1 || rows != 1 {
		t.Errorf("Dims after Resize(0,0) = %dx%d, want 1x1", cols, rows)
	}
}

func TestBlend(t *testing.T) {
	half := types.Fade(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, 0.5)
	got := blend(half, black)
	if got.R != half.R || got.A < 0xfe {
		t.Errorf("blend = %v, want R=%d and opaque", got, half.R)
	}
	if blend(red, blue) != red {
		t.Error("opaque source should replace the destination")
	}
}
