package machine

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/types"
)

var (
	faceColor      = color.RGBA{A: 0xff}
	indicatorOn    = types.MustHexColor("#00ff00")
	indicatorOff   = types.MustHexColor("#ff0000")
	barShade       = color.RGBA{A: 0x80}
	barBorder      = types.MustHexColor("#ffffff")
	bubbleFill     = types.Fade(types.MustHexColor("#ffffff"), 0.9)
	bubbleText     = types.MustHexColor("#333333")
	proximityColor = types.Fade(types.MustHexColor("#ff0000"), 0.3)
	trailColor     = types.MustHexColor("#ffffff")
	hudColor       = types.MustHexColor("#e2e8f0")
)

// 想法气泡尺寸
const (
	bubbleHeight   = 30
	bubbleMinWidth = 80
	bubbleCharW    = 8
)

// energyColor 能量条颜色：绿 > 70 > 黄 > 40 > 橙 > 20 > 红
func energyColor(energy float64) color.RGBA {
	switch {
	case energy > 70:
		return types.MustHexColor("#00ff00")
	case energy > 40:
		return types.MustHexColor("#ffff00")
	case energy > 20:
		return types.MustHexColor("#ff8800")
	default:
		return types.MustHexColor("#ff0000")
	}
}

// body 机器局部坐标（以中心为原点、未旋转未缩放）到画布坐标的变换
type body struct {
	x, y     float64
	cos, sin float64
	scale    float64
}

func newBody(m *components.MachineComponent, pos *components.PositionComponent) body {
	return body{
		x:     pos.X,
		y:     pos.Y,
		cos:   math.Cos(m.Rotation),
		sin:   math.Sin(m.Rotation),
		scale: m.Scale,
	}
}

func (b body) at(lx, ly float64) (float64, float64) {
	lx *= b.scale
	ly *= b.scale
	return b.x + lx*b.cos - ly*b.sin, b.y + lx*b.sin + ly*b.cos
}

func (b body) fillRect(c types.Canvas, x, y, w, h float64, col color.RGBA) {
	xs := make([]float64, 4)
	ys := make([]float64, 4)
	xs[0], ys[0] = b.at(x, y)
	xs[1], ys[1] = b.at(x+w, y)
	xs[2], ys[2] = b.at(x+w, y+h)
	xs[3], ys[3] = b.at(x, y+h)
	c.FillPolygon(xs, ys, col)
}

func (b body) strokeRect(c types.Canvas, x, y, w, h, width float64, col color.RGBA) {
	b.line(c, x, y, x+w, y, width, col)
	b.line(c, x+w, y, x+w, y+h, width, col)
	b.line(c, x+w, y+h, x, y+h, width, col)
	b.line(c, x, y+h, x, y, width, col)
}

func (b body) line(c types.Canvas, x1, y1, x2, y2, width float64, col color.RGBA) {
	ax, ay := b.at(x1, y1)
	bx, by := b.at(x2, y2)
	c.StrokeLine(ax, ay, bx, by, width*b.scale, col)
}

// arc 以折线近似圆弧，角度为弧度，顺时针从 from 到 to
func (b body) arc(c types.Canvas, cx, cy, r, from, to, width float64, col color.RGBA) {
	const segments = 10
	step := (to - from) / segments
	px, py := cx+r*math.Cos(from), cy+r*math.Sin(from)
	for i := 1; i <= segments; i++ {
		a := from + step*float64(i)
		nx, ny := cx+r*math.Cos(a), cy+r*math.Sin(a)
		b.line(c, px, py, nx, ny, width, col)
		px, py = nx, ny
	}
}

// Draw 实现 engine.Rules：指针轨迹 → 机器 → 想法气泡 → 逃跑半径
func (g *Game) Draw(w *engine.World, c types.Canvas) {
	g.drawTrail(c)
	if g.machine == 0 || !g.em.IsAlive(g.machine) {
		return
	}
	m, pos, _ := g.parts()
	b := newBody(m, pos)
	half := m.Size / 2

	border := m.Color
	if l, ok := g.looks[m.Mood]; ok {
		border = l.border
	}
	b.fillRect(c, -half, -half, m.Size, m.Size, m.Color)
	b.strokeRect(c, -half, -half, m.Size, m.Size, 3, border)

	g.drawFace(c, b, m.Mood)

	// 开关指示灯
	indicator := indicatorOff
	if m.On {
		indicator = indicatorOn
	}
	b.fillRect(c, -4, -half-15, 8, 8, indicator)

	// 能量条
	barY := half + 10
	b.fillRect(c, -half, barY, m.Size, 4, barShade)
	if m.Energy > 0 {
		b.fillRect(c, -half, barY, m.Energy/g.cfg.MaxEnergy*m.Size, 4, energyColor(m.Energy))
	}
	b.strokeRect(c, -half, barY, m.Size, 4, 1, barBorder)

	if g.thinking() && m.Thought != "" {
		g.drawThought(c, m, pos)
	}

	if m.PointerNear && g.hasPointer {
		c.StrokeCircle(g.pointer.X, g.pointer.Y, g.cfg.FleeRadius, 2, proximityColor)
	}
}

func (g *Game) drawTrail(c types.Canvas) {
	n := len(g.trail)
	for i := 1; i < n; i++ {
		alpha := float64(i) / float64(n) * 0.3
		p, q := g.trail[i-1], g.trail[i]
		c.StrokeLine(p.X, p.Y, q.X, q.Y, 2, types.Fade(trailColor, alpha))
	}
}

// drawFace 眼睛固定，嘴型随心情变化
func (g *Game) drawFace(c types.Canvas, b body, mood string) {
	const mouth = 10
	b.fillRect(c, -10, -10, 5, 5, faceColor)
	b.fillRect(c, 5, -10, 5, 5, faceColor)

	switch mood {
	case "happy":
		b.arc(c, 0, 2, mouth, 0, math.Pi, 3, faceColor)
	case "sad":
		b.arc(c, 0, 10, mouth, math.Pi, 2*math.Pi, 3, faceColor)
	case "angry":
		b.line(c, -mouth, 10, mouth, 10, 3, faceColor)
	case "confused":
		b.arc(c, 0, 2, mouth, 0, 2*math.Pi, 3, faceColor)
	case "scared":
		b.arc(c, 0, 2, mouth, math.Pi, 2*math.Pi, 3, faceColor)
	case "tired":
		b.arc(c, 0, 2, mouth, 0, math.Pi, 3, faceColor)
		b.fillRect(c, -2, -8, 4, 2, faceColor)
		b.fillRect(c, 3, -8, 4, 2, faceColor)
	default:
		b.line(c, -mouth, 2, mouth, 2, 3, faceColor)
	}
}

// drawThought 在机器上方绘制想法气泡（不随机器旋转）
func (g *Game) drawThought(c types.Canvas, m *components.MachineComponent, pos *components.PositionComponent) {
	width := math.Max(bubbleMinWidth, float64(len(m.Thought))*bubbleCharW)
	x := pos.X - width/2
	y := pos.Y - m.Size - 30
	c.FillRect(x, y, width, bubbleHeight, bubbleFill)
	c.StrokeLine(x, y, x+width, y, 2, bubbleText)
	c.StrokeLine(x+width, y, x+width, y+bubbleHeight, 2, bubbleText)
	c.StrokeLine(x+width, y+bubbleHeight, x, y+bubbleHeight, 2, bubbleText)
	c.StrokeLine(x, y+bubbleHeight, x, y, 2, bubbleText)
	c.DrawText(m.Thought, pos.X-types.TextWidth(m.Thought)/2, y+(bubbleHeight-types.GlyphHeight)/2, bubbleText)
}

// DrawHUD 实现 engine.Rules：打扰次数、最高纪录与能量
func (g *Game) DrawHUD(w *engine.World, c types.Canvas) {
	s := w.Session
	c.DrawText(fmt.Sprintf("Annoyances %d  Best %d", s.Score, w.Score.HighScore()), 10, 10, hudColor)
	if m := g.Machine(); m != nil {
		label := fmt.Sprintf("Energy %d%%", int(math.Round(m.Energy)))
		c.DrawText(label, w.Bounds.W-10-types.TextWidth(label), 10, energyColor(m.Energy))
	}
}
