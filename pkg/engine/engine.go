// Package engine drives a real-time 2D game: it owns the session, the entity
// world and the particle pool, and advances them in a fixed order each tick.
// A game plugs in through Rules; the platform plugs in through Host.
package engine

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/systems"
	"github.com/decker502/arcade/pkg/types"
	"github.com/decker502/arcade/pkg/vmath"
)

// maxFrameTime 单帧最大时间步长，防止窗口失焦恢复后的大跳跃
const maxFrameTime = 0.1

// maxQueuedInput 输入队列上限，超出的事件被丢弃
const maxQueuedInput = 64

// ErrDestroyed 引擎已销毁
var ErrDestroyed = errors.New("engine destroyed")

// Config 引擎参数
type Config struct {
	Width, Height float64
	Background    color.RGBA
	ShakeDecay    float64 // 每参考帧震动衰减系数
	Lives         int
	ComboStep     float64
	ComboGrace    float64
	Particles     config.ParticleConfig
	Sounds        map[string]config.ToneConfig
	// Seed 随机数种子，0 表示使用当前时间
	Seed int64
}

type inputKind int

const (
	inputPointer inputKind = iota
	inputMove
	inputKey
)

type inputEvent struct {
	kind inputKind
	x, y float64
	key  Key
}

// Engine 游戏循环驱动器
//
// 每帧顺序：Advance → Spawn → 输入 → 粒子 → 限时效果/延迟任务/连击 → 渲染。
// 所有方法必须在同一个 goroutine 中调用（单一修改者）。
type Engine struct {
	cfg        Config
	rules      Rules
	host       Host
	world      *World
	serializer *game.SessionSerializer

	input        []inputEvent
	shake        float64
	freezeFrames int
	shakeRand    *rand.Rand
	status       string
	lastScore    int
	lastHigh     int

	initialized bool
	destroyed   bool
}

// New 创建引擎，处于 idle 状态
func New(cfg Config, rules Rules, host Host) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		cfg:        cfg,
		rules:      rules,
		host:       host,
		serializer: game.NewSessionSerializer(host.Store, rules.Name(), cfg.Lives),
		shakeRand:  rand.New(rand.NewSource(seed + 1)),
		lastScore:  -1,
		lastHigh:   -1,
	}

	session := game.NewSession(cfg.Lives)
	audio := game.NewAudioManager(host.Tones, host.Settings)
	if err := audio.LoadCues(cfg.Sounds); err != nil {
		log.Printf("[Engine] Warning: %v", err)
	}

	e.world = &World{
		Entities:  ecs.NewEntityManager(),
		Particles: systems.NewParticleSystem(cfg.Particles, rng),
		Session:   session,
		Score:     game.NewScoreKeeper(session, host.Store, rules.Name(), cfg.ComboStep, cfg.ComboGrace),
		Scheduler: game.NewScheduler(),
		Effects:   game.NewEffectTimers(),
		Audio:     audio,
		Rand:      rng,
		Bounds:    vmath.Bounds{W: cfg.Width, H: cfg.Height},
		engine:    e,
	}
	return e
}

// World 当前世界（只读访问用于宿主 HUD 与测试）
func (e *Engine) World() *World {
	return e.world
}

// State 会话状态
func (e *Engine) State() game.SessionState {
	return e.world.Session.State
}

// Status 当前状态文字
func (e *Engine) Status() string {
	return e.status
}

// Destroyed 是否已销毁
func (e *Engine) Destroyed() bool {
	return e.destroyed
}

// HasSnapshot 是否存在可继续的会话
func (e *Engine) HasSnapshot() bool {
	return !e.destroyed && e.serializer.HasSnapshot()
}

// Init 读取最高分并显示初始状态，可重复调用
func (e *Engine) Init() {
	if e.destroyed {
		return
	}
	if !e.initialized {
		e.world.Score.LoadHighScore()
		e.initialized = true
		log.Printf("[Engine] %s initialized (high score %d)", e.rules.Name(), e.world.Score.HighScore())
	}
	e.setStatus("Ready")
	e.publish()
}

// Start 开始新的一局（idle 或 ended → running）
func (e *Engine) Start() error {
	if e.destroyed {
		return ErrDestroyed
	}
	e.Init()
	if err := e.world.Session.Start(e.cfg.Lives); err != nil {
		return err
	}
	e.beginSession()
	log.Printf("[Engine] %s session started", e.rules.Name())
	return nil
}

// Continue 从保存的快照继续（idle 或 ended → running）
// 没有快照时返回 game.ErrNotFound；快照损坏时以默认会话开始并返回错误
func (e *Engine) Continue() error {
	if e.destroyed {
		return ErrDestroyed
	}
	e.Init()
	snap, err := e.serializer.Load()
	if errors.Is(err, game.ErrNotFound) {
		return err
	}
	if startErr := e.world.Session.Start(e.cfg.Lives); startErr != nil {
		return startErr
	}
	snap.Apply(e.world.Session)
	e.beginSession()
	if err != nil {
		log.Printf("[Engine] Warning: %v (starting a new session)", err)
		return fmt.Errorf("continue: %w", err)
	}
	log.Printf("[Engine] %s continued at wave %d", e.rules.Name(), e.world.Session.Wave)
	return nil
}

func (e *Engine) beginSession() {
	e.world.clear()
	e.input = e.input[:0]
	e.shake = 0
	e.freezeFrames = 0
	e.rules.Start(e.world)
	e.publish()
}

// Pause running → paused，并保存会话快照
func (e *Engine) Pause() error {
	if e.destroyed {
		return ErrDestroyed
	}
	if err := e.world.Session.Pause(); err != nil {
		return err
	}
	e.input = e.input[:0]
	e.SaveSnapshot()
	e.setStatus("Paused")
	return nil
}

// Resume paused → running
func (e *Engine) Resume() error {
	if e.destroyed {
		return ErrDestroyed
	}
	if err := e.world.Session.Resume(); err != nil {
		return err
	}
	e.setStatus("Running")
	return nil
}

// TogglePause 在运行与暂停之间切换
func (e *Engine) TogglePause() error {
	if e.State() == game.StatePaused {
		return e.Resume()
	}
	return e.Pause()
}

// SaveSnapshot 保存运行中或暂停中的会话，供下次继续
func (e *Engine) SaveSnapshot() bool {
	s := e.world.Session
	if e.destroyed || (s.State != game.StateRunning && s.State != game.StatePaused) {
		return false
	}
	if err := e.serializer.Save(s); err != nil {
		log.Printf("[Engine] Warning: failed to save snapshot: %v", err)
		return false
	}
	return true
}

// Reset 清空世界与会话，回到 idle（最高分先写入存储，快照丢弃）
func (e *Engine) Reset() {
	if e.destroyed {
		return
	}
	e.world.Score.TrySaveHighScore()
	e.serializer.Clear()
	e.world.clear()
	e.world.Session.Reset(e.cfg.Lives)
	e.input = e.input[:0]
	e.shake = 0
	e.freezeFrames = 0
	if r, ok := e.rules.(Resetter); ok {
		r.Reset(e.world)
	}
	e.setStatus("Ready")
	e.publish()
}

// End 结束会话并保存最高分（running/paused → ended）
func (e *Engine) End(reason string) {
	if e.destroyed {
		return
	}
	if err := e.world.Session.End(); err != nil {
		return
	}
	e.input = e.input[:0]
	// 同一帧内尚未执行的延迟任务不再运行
	e.world.Scheduler.Bump()
	e.world.Score.TrySaveHighScore()
	e.serializer.Clear()
	e.setStatus(reason)
	e.publish()
	log.Printf("[Engine] %s session ended: %s (score %d)", e.rules.Name(), reason, e.world.Session.Score)
}

// Destroy 释放引擎：保存最高分，取消所有延迟任务并丢弃输入，之后所有调用都是空操作
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.world.Score.TrySaveHighScore()
	e.world.Scheduler.Close()
	e.world.Entities.Clear()
	e.world.Particles.Clear()
	e.world.Effects.Clear()
	e.input = nil
	e.destroyed = true
	log.Printf("[Engine] %s destroyed", e.rules.Name())
}

// QueuePointer 排队一次点击，下一帧处理
func (e *Engine) QueuePointer(x, y float64) {
	e.enqueue(inputEvent{kind: inputPointer, x: x, y: y})
}

// QueuePointerMove 排队一次指针移动，连续的移动只保留最新一次
func (e *Engine) QueuePointerMove(x, y float64) {
	if n := len(e.input); n > 0 && e.input[n-1].kind == inputMove {
		e.input[n-1].x, e.input[n-1].y = x, y
		return
	}
	e.enqueue(inputEvent{kind: inputMove, x: x, y: y})
}

// QueueKey 排队一次按键
func (e *Engine) QueueKey(key Key) {
	e.enqueue(inputEvent{kind: inputKey, key: key})
}

func (e *Engine) enqueue(ev inputEvent) {
	if e.destroyed || !e.world.Session.Running() {
		return
	}
	if len(e.input) >= maxQueuedInput {
		return
	}
	e.input = append(e.input, ev)
}

// Tick 推进一帧
func (e *Engine) Tick(dt float64) {
	if e.destroyed || !e.world.Session.Running() {
		return
	}
	if dt <= 0 {
		return
	}
	if dt > maxFrameTime {
		dt = maxFrameTime
	}
	e.decayShake(dt)
	if e.freezeFrames > 0 {
		e.freezeFrames--
		return
	}

	w := e.world
	w.clock += dt

	// 1-2. 实体推进与生成
	e.rules.Advance(w, dt)
	if !e.stillRunning() {
		return
	}
	e.rules.Spawn(w, dt)

	// 3. 输入
	e.drainInput()
	if !e.stillRunning() {
		return
	}
	w.Entities.RemoveMarkedEntities()

	// 4. 粒子
	w.Particles.Update(dt)

	// 5. 限时效果、延迟任务、连击
	for _, name := range w.Effects.Advance(dt) {
		if x, ok := e.rules.(EffectExpirer); ok {
			x.EffectExpired(w, name)
		}
	}
	w.Scheduler.Advance(dt)
	if !e.stillRunning() {
		return
	}
	w.Score.ExpireCombo(w.clock)
	w.Entities.RemoveMarkedEntities()
	if s := w.Session; s.Score != e.lastScore && s.Score >= s.HighScore {
		w.Score.TrySaveHighScore()
	}

	e.publish()
}

// stillRunning 规则可能在回调中结束了会话或销毁了引擎
func (e *Engine) stillRunning() bool {
	if e.destroyed {
		return false
	}
	if !e.world.Session.Running() {
		e.world.Entities.RemoveMarkedEntities()
		e.publish()
		return false
	}
	return true
}

func (e *Engine) drainInput() {
	queue := e.input
	e.input = nil
	for _, ev := range queue {
		if e.destroyed || !e.world.Session.Running() {
			return
		}
		switch ev.kind {
		case inputPointer:
			e.rules.Pointer(e.world, ev.x, ev.y)
		case inputMove:
			e.rules.PointerMove(e.world, ev.x, ev.y)
		case inputKey:
			e.rules.Key(e.world, ev.key)
		}
	}
	if e.input == nil {
		e.input = queue[:0]
	}
}

func (e *Engine) decayShake(dt float64) {
	if e.shake <= 0 {
		return
	}
	e.shake *= vmath.FrameFactor(e.cfg.ShakeDecay, dt)
	if e.shake < 0.5 {
		e.shake = 0
	}
}

// Shake 当前震动幅度（像素）
func (e *Engine) Shake() float64 {
	return e.shake
}

// FreezeFrames 剩余定格帧数
func (e *Engine) FreezeFrames() int {
	return e.freezeFrames
}

// Render 绘制一帧：背景 → 实体 → 粒子 → HUD
// 销毁后不绘制任何内容
func (e *Engine) Render(c types.Canvas) {
	if e.destroyed {
		return
	}
	w := e.world
	if e.shake > 0 {
		c.SetOffset(
			(e.shakeRand.Float64()-0.5)*e.shake,
			(e.shakeRand.Float64()-0.5)*e.shake,
		)
	} else {
		c.SetOffset(0, 0)
	}
	c.Fill(e.cfg.Background)
	e.rules.Draw(w, c)
	w.Particles.Draw(c)
	c.SetOffset(0, 0)
	e.rules.DrawHUD(w, c)
}

func (e *Engine) setStatus(text string) {
	if e.status == text {
		return
	}
	e.status = text
	if e.host.Status != nil {
		e.host.Status.SetStatus(text)
	}
}

// publish 把变化的分数推送给宿主
func (e *Engine) publish() {
	if e.host.Status == nil {
		return
	}
	s := e.world.Session
	if s.Score != e.lastScore {
		e.lastScore = s.Score
		e.host.Status.SetScore(s.Score)
	}
	if s.HighScore != e.lastHigh {
		e.lastHigh = s.HighScore
		e.host.Status.SetHighScore(s.HighScore)
	}
}
