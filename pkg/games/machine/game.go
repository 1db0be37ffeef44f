// Package machine implements the Useless Machine: a reluctant little box that
// drifts around the playfield, runs from the pointer and answers every click
// with a random pointless action. The score counts how often it was annoyed.
package machine

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/decker502/arcade/internal/tone"
	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/entities"
	"github.com/decker502/arcade/pkg/systems"
	"github.com/decker502/arcade/pkg/types"
	"github.com/decker502/arcade/pkg/vmath"
)

// ID 游戏 ID，也是存储中的对象名
const ID = "machine"

// 机器专用按键（1-7 强制切换心情由数字键直接处理）
const (
	KeyTantrum     engine.Key = "t"
	KeyRandomMood  engine.Key = "0"
	KeyStopMachine            = engine.KeyS
)

// trailLength 指针轨迹保留的点数
const trailLength = 20

// bounceEffectSpeed 撞墙速度低于该值时不产生粒子与音效（贴墙静止时避免每帧触发）
const bounceEffectSpeed = 30

// look 心情对应的外观
type look struct {
	fill   color.RGBA
	border color.RGBA
}

// Game 无用机器规则，实现 engine.Rules
type Game struct {
	cfg   *config.MachineConfig
	looks map[string]look

	em      *ecs.EntityManager
	machine ecs.EntityID // 0 表示尚未创建

	pointer    vmath.Vec2
	hasPointer bool
	trail      []vmath.Vec2
}

// New 创建无用机器规则
func New(cfg *config.MachineConfig) (*Game, error) {
	looks := make(map[string]look, len(cfg.Moods))
	for _, m := range cfg.Moods {
		fill, err := types.ParseHexColor(m.Color)
		if err != nil {
			return nil, fmt.Errorf("mood %q: %w", m.Name, err)
		}
		border := fill
		if m.Border != "" {
			if border, err = types.ParseHexColor(m.Border); err != nil {
				return nil, fmt.Errorf("mood %q border: %w", m.Name, err)
			}
		}
		looks[m.Name] = look{fill: fill, border: border}
	}
	return &Game{cfg: cfg, looks: looks}, nil
}

// EngineConfig 从机器配置生成引擎参数
// 机器没有生命与连击，生命固定为 1
func EngineConfig(cfg *config.MachineConfig) (engine.Config, error) {
	bg, err := types.ParseHexColor(cfg.Playfield.Background)
	if err != nil {
		return engine.Config{}, fmt.Errorf("machine background: %w", err)
	}
	return engine.Config{
		Width:      cfg.Playfield.Width,
		Height:     cfg.Playfield.Height,
		Background: bg,
		ShakeDecay: cfg.Playfield.ShakeDecay,
		Lives:      1,
		Particles:  cfg.Particles,
		Sounds:     cfg.Sounds,
	}, nil
}

// Name 实现 engine.Rules
func (g *Game) Name() string {
	return ID
}

// Machine 当前机器的状态，尚未开始时返回 nil
func (g *Game) Machine() *components.MachineComponent {
	if g.em == nil || g.machine == 0 {
		return nil
	}
	m, _ := ecs.GetComponent[*components.MachineComponent](g.em, g.machine)
	return m
}

func (g *Game) parts() (*components.MachineComponent, *components.PositionComponent, *components.VelocityComponent) {
	m, _ := ecs.GetComponent[*components.MachineComponent](g.em, g.machine)
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, g.machine)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](g.em, g.machine)
	return m, pos, vel
}

// Start 实现 engine.Rules：机器在画布中央不情愿地开机
func (g *Game) Start(w *engine.World) {
	g.em = w.Entities
	g.machine = entities.NewMachineEntity(g.em, g.cfg, w.Bounds.W/2, w.Bounds.H/2)
	g.hasPointer = false
	g.trail = g.trail[:0]

	m, _, _ := g.parts()
	m.On = true
	m.Energy = g.cfg.MaxEnergy
	m.LastAction = -g.cfg.ActionCooldown
	g.setMood(m, "happy")
	g.think("fine...", 1.5)

	w.SetStatus("Machine is running (reluctantly)")
	w.Audio.PlaySound("start")
	g.scheduleRandomAction(w)
	log.Printf("[Machine] Started")
}

// Reset 实现 engine.Resetter
func (g *Game) Reset(w *engine.World) {
	g.em = w.Entities
	g.machine = 0
	g.hasPointer = false
	g.trail = g.trail[:0]
}

// Stop 关掉机器并结束会话（机器对此很满意）
func (g *Game) Stop(w *engine.World) {
	if g.machine == 0 {
		return
	}
	m, _, _ := g.parts()
	m.On = false
	g.setMood(m, "happy")
	g.think("finally!", 2)
	m.Energy = math.Min(g.cfg.MaxEnergy, m.Energy+g.cfg.StopRecovery)
	w.Audio.PlaySound("stop")
	w.End("Machine is off (and relieved)")
}

// scheduleRandomAction 每隔 RandomActionMin-RandomActionMax 秒自发做一次动作
// 任务随会话代数失效，因此重置或结束后不会再触发
func (g *Game) scheduleRandomAction(w *engine.World) {
	delay := w.RandRange(g.cfg.RandomActionMin, g.cfg.RandomActionMax)
	w.Scheduler.After(delay, func() {
		if !w.Session.Running() || g.machine == 0 {
			return
		}
		if m, _, _ := g.parts(); m.Energy > g.cfg.MinActionEnergy {
			g.performAction(w)
		}
		g.scheduleRandomAction(w)
	})
}

// frameChance 把逐帧概率换算为 dt 内至少发生一次的概率
func frameChance(perFrame, dt float64) float64 {
	return 1 - math.Pow(1-perFrame, dt*vmath.ReferenceFPS)
}

// Advance 实现 engine.Rules：能量消耗、游走、阻尼、撞墙与心情漂移
func (g *Game) Advance(w *engine.World, dt float64) {
	if g.machine == 0 {
		return
	}
	m, pos, vel := g.parts()

	if timer, ok := ecs.GetComponent[*components.TimerComponent](g.em, g.machine); ok {
		timer.Advance(dt)
	}

	m.Energy = math.Max(0, m.Energy-g.cfg.EnergyDrain*dt)
	if m.Energy < g.cfg.TiredEnergy {
		g.setMood(m, "tired")
		m.Thought = "so tired..."
	}

	if !m.PointerNear && w.Rand.Float64() < frameChance(g.cfg.WanderChance, dt) {
		vel.VX += (w.Rand.Float64() - 0.5) * g.cfg.WanderKick
		vel.VY += (w.Rand.Float64() - 0.5) * g.cfg.WanderKick
	}

	m.Rotation += (vel.VX + vel.VY) * 0.02 * dt

	v := vmath.Damp(vmath.V(vel.VX, vel.VY), g.cfg.Damping, dt)
	vel.VX, vel.VY = v.X, v.Y
	systems.MoveWith[*components.MachineComponent](g.em, dt, 1)
	g.bounce(w, m, pos, vel)

	if w.Rand.Float64() < frameChance(g.cfg.MoodChance, dt) {
		g.setMood(m, g.cfg.Moods[w.Rand.Intn(len(g.cfg.Moods))].Name)
		g.think(g.randomThought(w), 2)
	}

	m.Scale = 1 + math.Sin(w.Now()*5)*0.1
}

// bounce 在边界内反弹，足够快的撞击产生粒子与音效
func (g *Game) bounce(w *engine.World, m *components.MachineComponent, pos *components.PositionComponent, vel *components.VelocityComponent) {
	speed := math.Hypot(vel.VX, vel.VY)
	p, v, bounced := vmath.Reflect(vmath.V(pos.X, pos.Y), vmath.V(vel.VX, vel.VY), m.Size, w.Bounds, g.cfg.Restitution)
	pos.X, pos.Y = p.X, p.Y
	vel.VX, vel.VY = v.X, v.Y
	if bounced && speed > bounceEffectSpeed {
		g.burst(w, bounceBurst, pos.X, pos.Y)
		w.Audio.PlaySound("bounce")
	}
}

// Spawn 实现 engine.Rules：机器不生成新实体
func (g *Game) Spawn(w *engine.World, dt float64) {}

// Pointer 实现 engine.Rules：每次点击都算一次打扰
func (g *Game) Pointer(w *engine.World, x, y float64) {
	if g.machine == 0 {
		return
	}
	w.Score.RecordScore(1)
	g.performAction(w)
	w.Particles.SpawnBurst(systems.BurstOptions{
		X: x, Y: y, RandomHue: true, Count: 8, Speed: 480, Decay: 1,
	})
	w.Audio.PlayTone(w.RandRange(150, 250), 0.2, tone.Sine)
}

// PointerMove 实现 engine.Rules：指针进入逃跑半径时受惊并逃离
func (g *Game) PointerMove(w *engine.World, x, y float64) {
	g.pointer = vmath.V(x, y)
	g.hasPointer = true
	g.trail = append(g.trail, g.pointer)
	if len(g.trail) > trailLength {
		g.trail = g.trail[len(g.trail)-trailLength:]
	}
	if g.machine == 0 {
		return
	}

	m, pos, vel := g.parts()
	d := vmath.Dist(pos.X, pos.Y, x, y)
	wasNear := m.PointerNear
	m.PointerNear = d < g.cfg.FleeRadius
	if !m.PointerNear {
		return
	}
	if !wasNear {
		g.setMood(m, "scared")
		g.think("oh no!", 1)
		w.Audio.PlaySound("scared")
	}
	if d <= 0 {
		return
	}
	speed := g.cfg.FleeBase + (g.cfg.FleeRadius-d)*g.cfg.FleeGain
	vel.VX += (pos.X - x) / d * speed
	vel.VY += (pos.Y - y) / d * speed
	g.setMood(m, "scared")
	if w.Rand.Float64() < 0.3 {
		g.burst(w, panicBurst, pos.X+(w.Rand.Float64()-0.5)*m.Size, pos.Y+(w.Rand.Float64()-0.5)*m.Size)
	}
}

// Key 实现 engine.Rules
func (g *Game) Key(w *engine.World, key engine.Key) {
	if g.machine == 0 {
		return
	}
	switch key {
	case KeyStopMachine:
		g.Stop(w)
	case KeyTantrum:
		g.tantrum(w)
	case KeyRandomMood:
		g.forceMood(w, g.cfg.Moods[w.Rand.Intn(len(g.cfg.Moods))].Name, g.randomThought(w))
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(g.cfg.Moods) {
				mood := g.cfg.Moods[i]
				g.forceMood(w, mood.Name, mood.Thought)
			}
		}
	}
}

// forceMood 强制切换心情
func (g *Game) forceMood(w *engine.World, mood, thought string) {
	m, pos, _ := g.parts()
	g.setMood(m, mood)
	g.think(thought, 2)
	g.burstAround(w, emotionBurst, pos.X, pos.Y, m.Size/2, m.Color)
	w.Audio.PlayTone(w.RandRange(300, 500), 0.2, tone.Sine)
	w.SetStatus(fmt.Sprintf("Machine is now %s!", mood))
}

// setMood 切换心情并恢复该心情的颜色（伪装随之失效）
func (g *Game) setMood(m *components.MachineComponent, mood string) {
	m.Mood = mood
	if l, ok := g.looks[mood]; ok {
		m.Color = l.fill
	}
}

// think 显示想法气泡 seconds 秒
func (g *Game) think(thought string, seconds float64) {
	m, _, _ := g.parts()
	m.Thought = thought
	if timer, ok := ecs.GetComponent[*components.TimerComponent](g.em, g.machine); ok {
		timer.Restart(seconds)
	}
}

// thinking 想法气泡是否可见
func (g *Game) thinking() bool {
	timer, ok := ecs.GetComponent[*components.TimerComponent](g.em, g.machine)
	return ok && !timer.IsReady
}

func (g *Game) randomThought(w *engine.World) string {
	return g.cfg.Thoughts[w.Rand.Intn(len(g.cfg.Thoughts))]
}
