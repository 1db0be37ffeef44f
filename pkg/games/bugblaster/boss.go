package bugblaster

import (
	"fmt"
	"log"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/entities"
	"github.com/decker502/arcade/pkg/types"
)

// bossNumber 第 wave 波是第几个 Boss
func (g *Game) bossNumber(wave int) int {
	return wave / g.cfg.Boss.Every
}

// BossHealth 第 wave 波 Boss 的生命值
func (g *Game) BossHealth(wave int) int {
	return g.cfg.Boss.BaseHealth + g.cfg.Boss.HealthPerBoss*g.bossNumber(wave)
}

// BossPoints 击败第 wave 波 Boss 的奖励分
func (g *Game) BossPoints(wave int) int {
	return g.cfg.Boss.BasePoints + g.cfg.Boss.PointsPerBoss*g.bossNumber(wave)
}

// spawnBoss 在画布中央生成本波的 Boss
func (g *Game) spawnBoss(w *engine.World) {
	wave := w.Session.Wave
	id, err := entities.NewBossEntity(g.em, g.cfg.Boss, w.Bounds.W/2, w.Bounds.H/2, g.BossHealth(wave))
	if err != nil {
		log.Printf("[BugBlaster] Warning: failed to spawn boss: %v", err)
		return
	}
	g.boss = id
	w.SetStatus(fmt.Sprintf("BOSS WAVE %d!", g.bossNumber(wave)))
	log.Printf("[BugBlaster] Boss %d spawned with %d health", g.bossNumber(wave), g.BossHealth(wave))
}

// hitBoss 玩家点中 Boss
func (g *Game) hitBoss(w *engine.World, id ecs.EntityID, damage int) {
	boss, _ := ecs.GetComponent[*components.BossComponent](g.em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
	w.Particles.Spawn(pos.X, pos.Y, boss.Color, bossHitBurst)
	w.Audio.PlaySound("bossHit")
	w.Shake(g.cfg.Scoring.HitShake)
	g.damageBoss(w, id, damage)
}

// damageBoss 扣除 Boss 生命值，低于一半进入狂暴阶段，耗尽时击败
func (g *Game) damageBoss(w *engine.World, id ecs.EntityID, damage int) {
	boss, _ := ecs.GetComponent[*components.BossComponent](g.em, id)
	health, _ := ecs.GetComponent[*components.HealthComponent](g.em, id)
	health.CurrentHealth -= damage

	if boss.Phase == 1 && health.CurrentHealth*2 < health.MaxHealth {
		boss.Phase = 2
		boss.Angry = true
		if c, err := types.ParseHexColor(g.cfg.Boss.AngryColor); err == nil {
			boss.Color = c
		}
		w.SetStatus("Boss is ANGRY!")
	}
	if health.CurrentHealth <= 0 {
		g.defeatBoss(w, id)
	}
}

// defeatBoss 结算 Boss：奖励分、延迟掉落道具、进入下一波
func (g *Game) defeatBoss(w *engine.World, id ecs.EntityID) {
	boss, _ := ecs.GetComponent[*components.BossComponent](g.em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.em, id)
	x, y := pos.X, pos.Y
	g.markRemoved(id)
	g.boss = 0

	s := w.Session
	points := g.BossPoints(s.Wave)
	w.Score.RecordScore(points)
	s.BossesDefeated++

	w.Particles.Spawn(x, y, boss.Color, bossBurst)
	w.Particles.SpawnSplat(x, y, types.MustHexColor(g.cfg.Boss.AngryColor), boss.Size)
	w.Shake(g.cfg.Boss.DefeatShake)
	w.Freeze(g.cfg.Boss.DefeatFreeze)
	w.SetStatus(fmt.Sprintf("Boss defeated! +%d points!", points))

	spread := g.cfg.Boss.DropSpread
	w.Scheduler.Repeat(g.cfg.Boss.PowerUpDrops, g.cfg.Boss.DropSpacing, func(int) {
		g.maybeDropPowerUp(w,
			x+(w.Rand.Float64()-0.5)*spread,
			y+(w.Rand.Float64()-0.5)*spread,
		)
	})

	if s.BossesDefeated >= g.cfg.Achievements.BossSlayerBosses {
		g.achievements.Unlock(AchievementBossSlayer)
	}

	s.Wave++
	g.waves.Schedule(s.Wave, g.cfg.Waves.BossNextWaveDelay)
	log.Printf("[BugBlaster] Boss defeated, next wave %d", s.Wave)
}

// bossAttack 在 Boss 位置召唤 basic 小兵
func (g *Game) bossAttack(w *engine.World, boss *components.BossComponent, pos *components.PositionComponent) {
	count := g.cfg.Boss.Minions
	if boss.Phase == 2 {
		count = g.cfg.Boss.AngryMinions
	}
	for i := 0; i < count; i++ {
		spawn := entities.BugSpawn{
			X:  pos.X,
			Y:  pos.Y,
			VX: (w.Rand.Float64() - 0.5) * g.cfg.Scoring.ChildSpeed,
			VY: (w.Rand.Float64() - 0.5) * g.cfg.Scoring.ChildSpeed,
		}
		if _, err := g.newBug(g.basic, spawn); err != nil {
			log.Printf("[BugBlaster] Warning: failed to spawn minion: %v", err)
			return
		}
	}
	w.Particles.Spawn(pos.X, pos.Y, boss.Color, minionBurst)
}
