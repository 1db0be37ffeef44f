package bugblaster

import (
	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/systems"
	"github.com/decker502/arcade/pkg/types"
	"github.com/decker502/arcade/pkg/vmath"
)

// teleportBurst 瞬移时的粒子数量
const teleportBurst = 15

// speedScale 道具对虫子速度的影响：冻结 0，慢动作 SlowmoFactor
func (g *Game) speedScale(w *engine.World) float64 {
	switch {
	case w.Effects.Active(types.PowerUpFreeze.String()):
		return 0
	case w.Effects.Active(types.PowerUpSlowmo.String()):
		return g.cfg.PowerUps.SlowmoFactor
	default:
		return 1
	}
}

// Advance 实现 engine.Rules
//
// 顺序：虫子移动 → 瞬移 → 逃逸 → Boss → 道具下落与过期 → 闪烁 → 自动射击
func (g *Game) Advance(w *engine.World, dt float64) {
	scale := g.speedScale(w)
	frozen := scale <= 0

	systems.MoveWith[*components.BugComponent](g.em, dt, scale)
	if !frozen {
		g.updateTeleporters(w, dt)
	}
	if g.handleEscapes(w) {
		return
	}
	if !frozen {
		g.updateBoss(w, dt)
	}

	systems.MoveWith[*components.PowerUpComponent](g.em, dt, 1)
	g.lifetime.Update(dt)
	for _, id := range systems.Escaped[*components.PowerUpComponent](g.em, w.Bounds, g.cfg.Playfield.EscapeMargin) {
		g.em.DestroyEntity(id)
	}

	g.flash.Update(dt)
	g.updateAutofire(w, dt)
}

// updateTeleporters 瞬移虫每隔 Interval 秒跳到画布内的随机位置
func (g *Game) updateTeleporters(w *engine.World, dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.BugComponent, *components.PositionComponent](g.em) {
		bug, _ := ecs.GetComponent[*components.BugComponent](g.em, id)
		tp, ok := bug.Trait.(*components.TeleportTrait)
		if !ok {
			continue
		}
		tp.Timer += dt
		if tp.Timer <= tp.Interval {
			continue
		}
		tp.Timer = 0
		pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
		pos.X = w.Rand.Float64() * w.Bounds.W
		pos.Y = w.Rand.Float64() * w.Bounds.H
		w.Particles.Spawn(pos.X, pos.Y, bug.Color, teleportBurst)
	}
}

// handleEscapes 移除离开画布的虫子
// 陷阱虫或护盾生效时逃逸不扣命。返回游戏是否因此结束。
func (g *Game) handleEscapes(w *engine.World) bool {
	shield := w.Effects.Active(types.PowerUpShield.String())
	for _, id := range systems.Escaped[*components.BugComponent](g.em, w.Bounds, g.cfg.Playfield.EscapeMargin) {
		bug, _ := ecs.GetComponent[*components.BugComponent](g.em, id)
		g.markRemoved(id)
		if shield || bug.IsTrap() {
			continue
		}
		w.Shake(g.cfg.Scoring.EscapeShake)
		if g.loseLife(w) {
			return true
		}
	}
	return false
}

// updateBoss 随机移动并定时召唤小兵，狂暴阶段更快更频繁
func (g *Game) updateBoss(w *engine.World, dt float64) {
	if g.boss == 0 || !g.em.IsAlive(g.boss) {
		return
	}
	boss, _ := ecs.GetComponent[*components.BossComponent](g.em, g.boss)
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, g.boss)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](g.em, g.boss)
	cfg := g.cfg.Boss

	boss.MoveTimer += dt
	boss.AttackTimer += dt
	if boss.MoveTimer > cfg.MoveInterval {
		boss.MoveTimer = 0
		vel.VX = (w.Rand.Float64() - 0.5) * 2 * cfg.MoveSpeed
		vel.VY = (w.Rand.Float64() - 0.5) * 2 * cfg.MoveSpeed
	}

	factor := 1.0
	if boss.Phase == 2 {
		factor = cfg.AngrySpeedFactor
	}
	next := vmath.Integrate(vmath.V(pos.X, pos.Y), vmath.V(vel.VX, vel.VY), dt*factor)
	next = vmath.ClampInside(next, boss.Size, w.Bounds)
	pos.X, pos.Y = next.X, next.Y

	interval := cfg.AttackInterval
	if boss.Phase == 2 {
		interval = cfg.AngryAttackInterval
	}
	if boss.AttackTimer > interval {
		boss.AttackTimer = 0
		g.bossAttack(w, boss, pos)
	}
}

// updateAutofire 自动射击生效时每隔 AutofireInterval 秒射击最早出现的虫子（没有虫子时射击 Boss）
func (g *Game) updateAutofire(w *engine.World, dt float64) {
	if !w.Effects.Active(types.PowerUpAutofire.String()) {
		g.autofireTimer = 0
		return
	}
	g.autofireTimer += dt
	if g.autofireTimer < g.cfg.PowerUps.AutofireInterval {
		return
	}
	g.autofireTimer -= g.cfg.PowerUps.AutofireInterval

	if x, y, ok := g.autofireTarget(); ok {
		g.shoot(w, x, y)
	}
}

func (g *Game) autofireTarget() (float64, float64, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.BugComponent, *components.PositionComponent](g.em) {
		if !g.alive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
		return pos.X, pos.Y, true
	}
	if g.boss != 0 && g.alive(g.boss) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, g.boss)
		return pos.X, pos.Y, true
	}
	return 0, 0, false
}
