package bugblaster

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/entities"
	"github.com/decker502/arcade/pkg/types"
)

// 反应效果的粒子数量
const (
	trapBurst    = 30
	bombBurst    = 50
	bossHitBurst = 10
	minionBurst  = 20
	bossBurst    = 100
)

var (
	trapColor      = color.RGBA{A: 0xff}
	explosionColor = types.MustHexColor("#ff6600")
)

// Pointer 实现 engine.Rules
func (g *Game) Pointer(w *engine.World, x, y float64) {
	g.shoot(w, x, y)
	g.checkWaveComplete(w)
}

// PointerMove 实现 engine.Rules：记录准星位置
func (g *Game) PointerMove(w *engine.World, x, y float64) {
	g.aimX, g.aimY = x, y
	g.aiming = true
}

// Key 实现 engine.Rules
// 暂停、重置等按键由宿主处理，本游戏没有额外按键
func (g *Game) Key(w *engine.World, key engine.Key) {}

// shoot 解析一次射击：道具 → Boss → 虫子（最新优先）→ 未命中
func (g *Game) shoot(w *engine.World, x, y float64) {
	hit := g.hits.Resolve(x, y)
	if !hit.Found {
		w.Score.BreakCombo()
		w.Audio.PlaySound("miss")
		return
	}
	switch hit.Layer {
	case components.LayerPowerUp:
		g.collectPowerUp(w, hit.Entity)
	case components.LayerBoss:
		damage := 1
		if w.Effects.Active(types.PowerUpMultishot.String()) {
			damage = g.cfg.PowerUps.MultishotDamage
		}
		g.hitBoss(w, hit.Entity, damage)
	default:
		g.hitBug(w, hit.Entity)
	}
}

// alive 实体存在且处于存活阶段
func (g *Game) alive(id ecs.EntityID) bool {
	if !g.em.IsAlive(id) {
		return false
	}
	life, ok := ecs.GetComponent[*components.LifeStateComponent](g.em, id)
	return !ok || life.State == components.LifeAlive
}

// markRemoved 标记实体删除并禁止后续的点击与连锁反应
func (g *Game) markRemoved(id ecs.EntityID) {
	if life, ok := ecs.GetComponent[*components.LifeStateComponent](g.em, id); ok {
		life.State = components.LifeDying
	}
	if click, ok := ecs.GetComponent[*components.ClickableComponent](g.em, id); ok {
		click.IsEnabled = false
	}
	g.em.DestroyEntity(id)
}

func (g *Game) newBug(cat config.CategoryConfig, spawn entities.BugSpawn) (ecs.EntityID, error) {
	return entities.NewBugEntity(g.em, cat, spawn)
}

// hitBug 对虫子造成 1 点伤害
func (g *Game) hitBug(w *engine.World, id ecs.EntityID) {
	bug, _ := ecs.GetComponent[*components.BugComponent](g.em, id)
	if trap, ok := bug.Trait.(*components.TrapTrait); ok {
		g.triggerTrap(w, id, trap)
		return
	}

	health, _ := ecs.GetComponent[*components.HealthComponent](g.em, id)
	health.CurrentHealth--
	if health.CurrentHealth <= 0 {
		g.killBug(w, id)
		return
	}
	g.flash.Trigger(id, g.cfg.Scoring.FlashDuration, 1)
	w.Audio.PlaySound("hit")
}

// triggerTrap 点中陷阱：扣分、扣命、连击归零
func (g *Game) triggerTrap(w *engine.World, id ecs.EntityID, trap *components.TrapTrait) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
	g.markRemoved(id)

	w.Score.RecordScore(-trap.Penalty)
	w.Score.BreakCombo()
	w.Shake(g.cfg.Scoring.TrapShake)
	w.Freeze(g.cfg.Scoring.TrapFreeze)
	w.Audio.PlaySound("trap")
	w.Particles.Spawn(pos.X, pos.Y, trapColor, trapBurst)
	w.SetStatus(fmt.Sprintf("TRAP TRIGGERED! -%d Points!", trap.Penalty))

	g.loseLife(w)
}

// killBug 结算一只被消灭的虫子并执行其特殊行为
//
// 得分按命中前的连击计算；炸弹虫会递归消灭半径内生命耗尽的虫子，
// 已结算的虫子处于 LifeDying 阶段，不会被重复结算。
func (g *Game) killBug(w *engine.World, id ecs.EntityID) {
	bug, _ := ecs.GetComponent[*components.BugComponent](g.em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
	x, y := pos.X, pos.Y
	g.markRemoved(id)

	w.Score.ScoreHit(bug.ScoreValue, w.Now())
	w.Particles.Spawn(x, y, bug.Color, g.cfg.Scoring.ExplosionCount)
	w.Particles.SpawnSplat(x, y, bug.Color, g.cfg.Scoring.SplatSize)
	w.Audio.PlaySound("splat")

	switch t := bug.Trait.(type) {
	case *components.SplitTrait:
		g.split(w, x, y, bug.Size*t.ChildScale, t.Children)
	case *components.ExplodeTrait:
		g.explode(w, id, x, y, t)
	case *components.GoldenTrait:
		w.Score.RecordScore(t.Bonus)
	}

	g.maybeDropPowerUp(w, x, y)
}

// split 在 (x, y) 生成 count 只尺寸为 size 的 basic 子虫
func (g *Game) split(w *engine.World, x, y, size float64, count int) {
	for i := 0; i < count; i++ {
		spawn := entities.BugSpawn{
			X:     x,
			Y:     y,
			VX:    (w.Rand.Float64() - 0.5) * g.cfg.Scoring.ChildSpeed,
			VY:    (w.Rand.Float64() - 0.5) * g.cfg.Scoring.ChildSpeed,
			Scale: size / g.basic.Size,
		}
		if _, err := g.newBug(g.basic, spawn); err != nil {
			log.Printf("[BugBlaster] Warning: failed to split: %v", err)
			return
		}
	}
}

// explode 对半径内的其他虫子造成伤害，陷阱虫被直接清除且不扣分
func (g *Game) explode(w *engine.World, self ecs.EntityID, x, y float64, t *components.ExplodeTrait) {
	for _, id := range g.hits.Within(x, y, t.Radius, self) {
		if !g.alive(id) {
			continue
		}
		bug, _ := ecs.GetComponent[*components.BugComponent](g.em, id)
		if bug.IsTrap() {
			p, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
			w.Particles.Spawn(p.X, p.Y, bug.Color, g.cfg.Scoring.ExplosionCount)
			g.markRemoved(id)
			continue
		}
		health, _ := ecs.GetComponent[*components.HealthComponent](g.em, id)
		health.CurrentHealth -= t.Damage
		if health.CurrentHealth <= 0 {
			g.killBug(w, id)
		} else {
			g.flash.Trigger(id, g.cfg.Scoring.FlashDuration, 1)
		}
	}
	w.Particles.Spawn(x, y, explosionColor, bombBurst)
	w.Shake(g.cfg.Scoring.BombShake)
}

// maybeDropPowerUp 按 DropChance 在 (x, y) 掉落随机道具
func (g *Game) maybeDropPowerUp(w *engine.World, x, y float64) {
	kinds := g.cfg.PowerUps.Kinds
	if len(kinds) == 0 || w.Rand.Float64() >= g.cfg.PowerUps.DropChance {
		return
	}
	name := kinds[w.Rand.Intn(len(kinds))].Name
	kind, err := types.ParsePowerUpKind(name)
	if err != nil {
		log.Printf("[BugBlaster] Warning: %v", err)
		return
	}
	entities.NewPowerUpEntity(g.em, g.cfg.PowerUps, kind, x, y)
}

// collectPowerUp 拾取道具：限时道具写入剩余时间，核弹立即生效
func (g *Game) collectPowerUp(w *engine.World, id ecs.EntityID) {
	pu, _ := ecs.GetComponent[*components.PowerUpComponent](g.em, id)
	g.markRemoved(id)
	w.Audio.PlaySound("powerUp")

	kindCfg, ok := g.cfg.PowerUpKind(pu.Kind.String())
	if !ok {
		return
	}
	w.SetStatus(fmt.Sprintf("%s activated!", kindCfg.Label))

	if kindCfg.Duration <= 0 {
		if pu.Kind == types.PowerUpNuke {
			g.nuke(w)
		}
		return
	}
	w.Effects.Activate(kindCfg.Name, kindCfg.Duration)
	if pu.Kind == types.PowerUpAutofire {
		g.autofireTimer = 0
	}
}

// nuke 清除所有虫子并获得它们的基础分（陷阱虫不计分），同时伤害 Boss
func (g *Game) nuke(w *engine.World) {
	for _, id := range ecs.GetEntitiesWith2[*components.BugComponent, *components.PositionComponent](g.em) {
		if !g.alive(id) {
			continue
		}
		bug, _ := ecs.GetComponent[*components.BugComponent](g.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
		w.Particles.Spawn(pos.X, pos.Y, bug.Color, g.cfg.Scoring.ExplosionCount)
		if !bug.IsTrap() {
			w.Score.RecordScore(bug.ScoreValue)
		}
		g.markRemoved(id)
	}
	w.Shake(g.cfg.PowerUps.NukeShake)

	if g.boss != 0 && g.alive(g.boss) {
		g.damageBoss(w, g.boss, g.cfg.PowerUps.NukeBossDamage)
	}
}
