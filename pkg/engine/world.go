package engine

import (
	"math/rand"

	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/systems"
	"github.com/decker502/arcade/pkg/vmath"
)

// World 规则可以读写的会话数据
// 由引擎创建和清理，规则不应保存 World 以外的实体引用跨越重置
type World struct {
	Entities  *ecs.EntityManager
	Particles *systems.ParticleSystem
	Session   *game.Session
	Score     *game.ScoreKeeper
	Scheduler *game.Scheduler
	Effects   *game.EffectTimers
	Audio     *game.AudioManager
	Rand      *rand.Rand
	Bounds    vmath.Bounds

	engine *Engine
	clock  float64
}

// Now 会话时钟（秒），只在运行且未定格时推进
func (w *World) Now() float64 {
	return w.clock
}

// SetStatus 更新宿主显示的状态文字
func (w *World) SetStatus(text string) {
	w.engine.setStatus(text)
}

// Shake 触发屏幕震动，取当前震动与 amount 的较大值
func (w *World) Shake(amount float64) {
	if amount > w.engine.shake {
		w.engine.shake = amount
	}
}

// Freeze 定格若干帧（只渲染，不更新）
func (w *World) Freeze(frames int) {
	if frames > w.engine.freezeFrames {
		w.engine.freezeFrames = frames
	}
}

// End 结束当前会话
func (w *World) End(reason string) {
	w.engine.End(reason)
}

// RandRange 返回 [min, max) 内的随机数
func (w *World) RandRange(min, max float64) float64 {
	return min + w.Rand.Float64()*(max-min)
}

func (w *World) clear() {
	w.Entities.Clear()
	w.Particles.Clear()
	w.Effects.Clear()
	w.Scheduler.Bump()
	w.clock = 0
}
