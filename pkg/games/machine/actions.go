package machine

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/arcade/internal/tone"
	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/systems"
	"github.com/decker502/arcade/pkg/types"
	"github.com/decker502/arcade/pkg/vmath"
)

// burstPreset 一种动作的粒子外观
type burstPreset struct {
	count int
	color color.RGBA
	shape systems.BurstShape
	speed float64 // 像素/秒
	size  float64 // 0 表示随机
	decay float64 // 每秒寿命衰减
}

var (
	bounceBurst   = burstPreset{count: 5, color: types.MustHexColor("#ffd700"), shape: systems.BurstUp, speed: 360, decay: 1.5}
	spinBurst     = burstPreset{count: 12, color: types.MustHexColor("#ff69b4"), shape: systems.BurstRing, speed: 600, size: 3, decay: 1.2}
	teleportBurst = burstPreset{count: 15, color: types.MustHexColor("#00ffff"), speed: 600, decay: 2}
	panicBurst    = burstPreset{count: 3, color: types.MustHexColor("#ff4444"), speed: 240, size: 2, decay: 2}
	tantrumBurst  = burstPreset{count: 6, color: types.MustHexColor("#ff0000"), speed: 720, decay: 60.0 / 45}
	protestBurst  = burstPreset{count: 8, color: types.MustHexColor("#ffa500"), shape: systems.BurstUp, speed: 480, size: 2, decay: 1}
	glitchBurst   = burstPreset{count: 10, speed: 480, decay: 3}
	emotionBurst  = burstPreset{count: 8, speed: 360, decay: 1.5}
)

var (
	glitchMagenta = types.MustHexColor("#ff00ff")
	glitchGreen   = types.MustHexColor("#00ff00")
)

func (g *Game) burst(w *engine.World, p burstPreset, x, y float64) {
	w.Particles.SpawnBurst(systems.BurstOptions{
		X: x, Y: y, Color: p.color, Count: p.count,
		Shape: p.shape, Speed: p.speed, Size: p.size, Decay: p.decay,
	})
}

// burstAround 在 (x, y) 周围 ±spread 的随机位置逐个生成粒子
func (g *Game) burstAround(w *engine.World, p burstPreset, x, y, spread float64, c color.RGBA) {
	for i := 0; i < p.count; i++ {
		w.Particles.SpawnBurst(systems.BurstOptions{
			X:     x + (w.Rand.Float64()-0.5)*spread*2,
			Y:     y + (w.Rand.Float64()-0.5)*spread*2,
			Color: c, Count: 1, Shape: p.shape, Speed: p.speed, Size: p.size, Decay: p.decay,
		})
	}
}

// performAction 冷却结束后随机做一件没用的事
func (g *Game) performAction(w *engine.World) {
	m, _, _ := g.parts()
	now := w.Now()
	if now-m.LastAction < g.cfg.ActionCooldown {
		return
	}
	m.LastAction = now
	m.Energy = math.Max(0, m.Energy-g.cfg.ActionCost)

	action := g.cfg.Actions[w.Rand.Intn(len(g.cfg.Actions))]
	g.doAction(w, action)

	if w.Rand.Float64() < 0.5 {
		g.think(g.randomThought(w), 1.5)
	}
}

// doAction 执行指定动作，多步动作交给调度器分帧完成
func (g *Game) doAction(w *engine.World, action string) {
	m, pos, vel := g.parts()
	log.Printf("[Machine] Action: %s", action)

	switch action {
	case "turnOff":
		m.On = false
		g.setMood(m, "confused")
		g.think("wait what?", 1.5)
		w.SetStatus("Machine turned itself off!")
		w.Scheduler.After(g.cfg.TurnOnDelay, func() {
			if g.machine == 0 {
				return
			}
			m, _, _ := g.parts()
			m.On = true
			g.setMood(m, "happy")
			g.think("back online!", 1)
			w.SetStatus("Machine reluctantly turned back on")
		})

	case "runAway":
		dir := vmath.V(w.Rand.Float64()-0.5, w.Rand.Float64()-0.5)
		if g.hasPointer {
			dir = vmath.V(pos.X, pos.Y).Sub(g.pointer)
		}
		if dir.IsZero() {
			dir = vmath.V(1, 0)
		}
		kick := dir.Norm().Scale(g.cfg.FleeBase * 2)
		vel.VX += kick.X
		vel.VY += kick.Y
		g.setMood(m, "scared")
		g.think("can't catch me!", 1.5)

	case "spin":
		vel.VX += (w.Rand.Float64() - 0.5) * 720
		vel.VY += (w.Rand.Float64() - 0.5) * 720
		g.setMood(m, "confused")
		g.think("wheeee!", 1.5)
		g.burst(w, spinBurst, pos.X, pos.Y)
		w.Audio.PlaySound("spin")

	case "bounce":
		vel.VY = -600
		g.setMood(m, "happy")
		g.think("boing!", 1.5)
		g.burst(w, bounceBurst, pos.X, pos.Y)

	case "shake":
		w.Scheduler.Repeat(10, 0.05, func(int) {
			if g.machine == 0 {
				return
			}
			_, _, vel := g.parts()
			vel.VX += (w.Rand.Float64() - 0.5) * 360
		})
		g.setMood(m, "angry")
		g.think("shake it!", 1.5)

	case "hide":
		s := m.Size
		corners := []vmath.Vec2{
			{X: s, Y: s},
			{X: w.Bounds.W - s, Y: s},
			{X: s, Y: w.Bounds.H - s},
			{X: w.Bounds.W - s, Y: w.Bounds.H - s},
		}
		corner := corners[w.Rand.Intn(len(corners))]
		vel.VX = (corner.X - pos.X) * 0.15 * vmath.ReferenceFPS
		vel.VY = (corner.Y - pos.Y) * 0.15 * vmath.ReferenceFPS
		g.setMood(m, "scared")
		g.think("hiding!", 1.5)

	case "confuse":
		g.setMood(m, "confused")
		g.think("huh?", 1.5)

	case "ignore":
		g.setMood(m, "neutral")
		g.think("...", 1.5)
		w.SetStatus("Machine is ignoring you")

	case "tantrum":
		g.tantrum(w)

	case "sleep":
		vel.VX *= 0.1
		vel.VY *= 0.1
		g.setMood(m, "tired")
		g.think("zzz...", 3)
		w.SetStatus("Machine is pretending to sleep")

	case "dance":
		w.Scheduler.Repeat(10, 0.1, func(i int) {
			if g.machine == 0 {
				return
			}
			_, _, vel := g.parts()
			vel.VX = math.Sin(float64(i)) * 180
			vel.VY = math.Cos(float64(i)) * 180
		})
		g.setMood(m, "happy")
		g.think("~la la la~", 2)
		w.Audio.PlaySound("dance")

	case "shrink":
		m.Size = math.Max(g.cfg.MinSize, m.Size-g.cfg.SizeStep)
		g.setMood(m, "scared")
		g.think("getting smaller!", 1.5)

	case "grow":
		m.Size = math.Min(g.cfg.MaxSize, m.Size+g.cfg.SizeStep)
		p := vmath.ClampInside(vmath.V(pos.X, pos.Y), m.Size, w.Bounds)
		pos.X, pos.Y = p.X, p.Y
		g.setMood(m, "angry")
		g.think("BIGGER!", 1.5)

	case "teleport":
		g.burst(w, teleportBurst, pos.X, pos.Y)
		pos.X = m.Size + w.Rand.Float64()*(w.Bounds.W-m.Size*2)
		pos.Y = m.Size + w.Rand.Float64()*(w.Bounds.H-m.Size*2)
		g.burst(w, teleportBurst, pos.X, pos.Y)
		g.setMood(m, "happy")
		g.think("teleport!", 1.5)
		w.Audio.PlaySound("warp")

	case "disguise":
		m.Color = types.HSL(w.Rand.Float64()*360, 0.6, 0.7)
		g.think("you can't see me", 1.5)

	case "protest":
		vel.VY = -360
		g.setMood(m, "angry")
		g.think("NO!", 2)
		g.burst(w, protestBurst, pos.X, pos.Y-m.Size)
		w.Audio.PlaySound("protest")
		w.SetStatus("Machine is protesting!")

	case "malfunction":
		w.Scheduler.Repeat(20, 0.05, func(int) {
			if g.machine == 0 {
				return
			}
			_, _, vel := g.parts()
			vel.VX = (w.Rand.Float64() - 0.5) * 480
			vel.VY = (w.Rand.Float64() - 0.5) * 480
		})
		g.setMood(m, "confused")
		g.think("ERROR 404", 2.5)
		g.burstAround(w, glitchBurst, pos.X, pos.Y, m.Size, glitchMagenta)
		g.burstAround(w, glitchBurst, pos.X, pos.Y, m.Size, glitchGreen)
		w.SetStatus("Machine is malfunctioning!")

	default:
		log.Printf("[Machine] Warning: unknown action %q", action)
	}
}

// tantrum 三秒内每 0.1 秒乱撞一次，伴随红色粒子与杂乱的音调
func (g *Game) tantrum(w *engine.World) {
	m, _, _ := g.parts()
	g.setMood(m, "angry")
	g.think("TANTRUM!", 3)
	w.SetStatus("Machine is having a tantrum!")

	w.Scheduler.Repeat(30, 0.1, func(int) {
		if g.machine == 0 {
			return
		}
		_, pos, vel := g.parts()
		vel.VX = (w.Rand.Float64() - 0.5) * 900
		vel.VY = (w.Rand.Float64() - 0.5) * 900
		g.burst(w, tantrumBurst, pos.X, pos.Y)
		w.Audio.PlayTone(w.RandRange(100, 300), 0.05, tone.Sine)
	})
}
