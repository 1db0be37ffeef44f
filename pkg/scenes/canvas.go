package scenes

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/arcade/pkg/types"
)

// hudFace basicfont 7x13，与 types.GlyphWidth/GlyphHeight 一致
var hudFace = text.NewGoXFace(basicfont.Face7x13)

// whitePixel 多边形填充的源纹理，首次使用时创建
var whitePixel *ebiten.Image

// solidSource 取 3x3 白图的中心像素，避免边缘采样
func solidSource() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// EbitenCanvas 把 types.Canvas 的绘制调用转换为 ebiten vector/text 调用
type EbitenCanvas struct {
	dst    *ebiten.Image
	w, h   float64
	dx, dy float64

	path     vector.Path
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewEbitenCanvas 创建绑定到 dst 的画布，逻辑尺寸为 dst 的尺寸
func NewEbitenCanvas(dst *ebiten.Image) *EbitenCanvas {
	b := dst.Bounds()
	return &EbitenCanvas{dst: dst, w: float64(b.Dx()), h: float64(b.Dy())}
}

// Image 底层图像
func (c *EbitenCanvas) Image() *ebiten.Image {
	return c.dst
}

// Size 实现 types.Canvas
func (c *EbitenCanvas) Size() (float64, float64) {
	return c.w, c.h
}

// SetOffset 实现 types.Canvas
func (c *EbitenCanvas) SetOffset(dx, dy float64) {
	c.dx, c.dy = dx, dy
}

func (c *EbitenCanvas) pt(x, y float64) (float32, float32) {
	return float32(x + c.dx), float32(y + c.dy)
}

// Fill 实现 types.Canvas（整体填充不受偏移影响，震动时边缘不会露底）
func (c *EbitenCanvas) Fill(col color.RGBA) {
	c.dst.Fill(col)
}

// FillRect 实现 types.Canvas
func (c *EbitenCanvas) FillRect(x, y, w, h float64, col color.RGBA) {
	px, py := c.pt(x, y)
	vector.DrawFilledRect(c.dst, px, py, float32(w), float32(h), col, false)
}

// FillCircle 实现 types.Canvas
func (c *EbitenCanvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	px, py := c.pt(cx, cy)
	vector.DrawFilledCircle(c.dst, px, py, float32(r), col, true)
}

// StrokeCircle 实现 types.Canvas
func (c *EbitenCanvas) StrokeCircle(cx, cy, r, width float64, col color.RGBA) {
	px, py := c.pt(cx, cy)
	vector.StrokeCircle(c.dst, px, py, float32(r), float32(width), col, true)
}

// StrokeLine 实现 types.Canvas
func (c *EbitenCanvas) StrokeLine(x1, y1, x2, y2, width float64, col color.RGBA) {
	ax, ay := c.pt(x1, y1)
	bx, by := c.pt(x2, y2)
	vector.StrokeLine(c.dst, ax, ay, bx, by, float32(width), col, true)
}

// FillPolygon 实现 types.Canvas
func (c *EbitenCanvas) FillPolygon(xs, ys []float64, col color.RGBA) {
	n := min(len(xs), len(ys))
	if n < 3 {
		return
	}
	c.path.Reset()
	x, y := c.pt(xs[0], ys[0])
	c.path.MoveTo(x, y)
	for i := 1; i < n; i++ {
		x, y = c.pt(xs[i], ys[i])
		c.path.LineTo(x, y)
	}
	c.path.Close()

	c.vertices, c.indices = c.path.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])
	r, g, b, a := float32(col.R)/0xff, float32(col.G)/0xff, float32(col.B)/0xff, float32(col.A)/0xff
	for i := range c.vertices {
		v := &c.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		// color.RGBA 本身就是预乘 alpha
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	c.dst.DrawTriangles(c.vertices, c.indices, solidSource(), op)
}

// DrawText 实现 types.Canvas
func (c *EbitenCanvas) DrawText(s string, x, y float64, col color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+c.dx, y+c.dy)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.dst, s, hudFace, op)
}

var _ types.Canvas = (*EbitenCanvas)(nil)
