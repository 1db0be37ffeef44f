// Package canvastest provides a types.Canvas that records draw calls, for
// tests that check what a renderer drew without a real surface.
package canvastest

import (
	"fmt"
	"image/color"
)

// Op is one recorded draw call.
type Op struct {
	Kind  string // fill, rect, circle, ring, line, poly, text
	X, Y  float64
	W, H  float64 // rect size; circle radius in W
	Text  string
	Color color.RGBA
	OffX  float64 // canvas offset at the time of the call
	OffY  float64
}

func (o Op) String() string {
	return fmt.Sprintf("%s(%.0f,%.0f)", o.Kind, o.X, o.Y)
}

// Recorder implements types.Canvas.
type Recorder struct {
	W, H       float64
	Ops        []Op
	offX, offY float64
}

// New returns a recorder of the given logical size.
func New(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) SetOffset(dx, dy float64) { r.offX, r.offY = dx, dy }

func (r *Recorder) add(op Op) {
	op.OffX, op.OffY = r.offX, r.offY
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Fill(c color.RGBA) {
	r.add(Op{Kind: "fill", W: r.W, H: r.H, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.add(Op{Kind: "rect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.RGBA) {
	r.add(Op{Kind: "circle", X: cx, Y: cy, W: radius, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, radius, width float64, c color.RGBA) {
	r.add(Op{Kind: "ring", X: cx, Y: cy, W: radius, H: width, Color: c})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA) {
	r.add(Op{Kind: "line", X: x1, Y: y1, W: x2, H: y2, Color: c})
}

// FillPolygon records the first vertex; the vertex count goes in W.
func (r *Recorder) FillPolygon(xs, ys []float64, c color.RGBA) {
	op := Op{Kind: "poly", W: float64(len(xs)), Color: c}
	if len(xs) > 0 && len(ys) > 0 {
		op.X, op.Y = xs[0], ys[0]
	}
	r.add(op)
}

func (r *Recorder) DrawText(s string, x, y float64, c color.RGBA) {
	r.add(Op{Kind: "text", X: x, Y: y, Text: s, Color: c})
}

// Count returns how many ops of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every string drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset drops recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
