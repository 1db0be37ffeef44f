// Package bugblaster implements Bug Blaster: bugs stream in from the edges in
// waves, the player clicks them before they escape, and every fifth wave a
// boss shows up. Power-ups, combos, traps and achievements sit on top.
package bugblaster

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/systems"
	"github.com/decker502/arcade/pkg/types"
)

// ID 游戏 ID，也是存储中的对象名
const ID = "bugblaster"

// 成就 ID
const (
	AchievementBossSlayer  = "boss_slayer"
	AchievementScoreMaster = "score_master"
	AchievementComboKing   = "combo_king"
)

// Game 打虫子规则，实现 engine.Rules
type Game struct {
	cfg          *config.BugBlasterConfig
	basic        config.CategoryConfig
	achievements *game.AchievementManager

	em       *ecs.EntityManager
	hits     *systems.HitTestSystem
	lifetime *systems.LifetimeSystem
	flash    *systems.FlashEffectSystem
	waves    *WaveController

	boss          ecs.EntityID // 0 表示没有 Boss
	autofireTimer float64
	startHigh     int // 本局开始时的最高分
	warnedWave    int // 已记录过"无可用类别"警告的波次

	aimX, aimY float64
	aiming     bool
}

// New 创建打虫子规则
// store 用于成就持久化，可以为 nil
func New(cfg *config.BugBlasterConfig, store game.Store) (*Game, error) {
	basic, ok := cfg.Category("basic")
	if !ok {
		return nil, fmt.Errorf("bug blaster: category \"basic\" is required")
	}
	return &Game{
		cfg:          cfg,
		basic:        basic,
		achievements: game.NewAchievementManager(store, ID),
	}, nil
}

// EngineConfig 从游戏配置生成引擎参数
func EngineConfig(cfg *config.BugBlasterConfig) (engine.Config, error) {
	bg, err := types.ParseHexColor(cfg.Playfield.Background)
	if err != nil {
		return engine.Config{}, fmt.Errorf("bug blaster background: %w", err)
	}
	return engine.Config{
		Width:      cfg.Playfield.Width,
		Height:     cfg.Playfield.Height,
		Background: bg,
		ShakeDecay: cfg.Playfield.ShakeDecay,
		Lives:      cfg.Scoring.Lives,
		ComboStep:  cfg.Scoring.ComboStep,
		ComboGrace: cfg.Scoring.ComboGrace,
		Particles:  cfg.Particles,
		Sounds:     cfg.Sounds,
	}, nil
}

// Achievements 成就管理器（菜单显示已解锁的成就）
func (g *Game) Achievements() *game.AchievementManager {
	return g.achievements
}

// Name 实现 engine.Rules
func (g *Game) Name() string {
	return ID
}

// bind 为世界的实体管理器创建系统（实体管理器在引擎生命周期内不变）
func (g *Game) bind(w *engine.World) {
	if g.em == w.Entities {
		return
	}
	g.em = w.Entities
	g.hits = systems.NewHitTestSystem(w.Entities)
	g.lifetime = systems.NewLifetimeSystem(w.Entities)
	g.flash = systems.NewFlashEffectSystem(w.Entities)
	g.waves = NewWaveController(g.cfg, w.Bounds, w.Rand)
}

// Start 实现 engine.Rules：从会话的当前波次开始（继续游戏时可能大于 1）
func (g *Game) Start(w *engine.World) {
	g.bind(w)
	g.boss = 0
	g.autofireTimer = 0
	g.warnedWave = 0
	g.aiming = false
	g.startHigh = w.Score.HighScore()

	wave := w.Session.Wave
	g.waves.Schedule(wave, g.cfg.Waves.FirstWaveDelay)
	w.SetStatus(fmt.Sprintf("Get ready! Wave %d starting...", wave))
}

// Reset 实现 engine.Resetter
func (g *Game) Reset(w *engine.World) {
	g.bind(w)
	g.waves.Reset()
	g.boss = 0
	g.autofireTimer = 0
	g.aiming = false
}

// Spawn 实现 engine.Rules：按波次控制器的决策生成虫子与 Boss
func (g *Game) Spawn(w *engine.World, dt float64) {
	tick, err := g.waves.Update(dt)
	if tick.Started {
		if tick.Boss {
			g.spawnBoss(w)
		} else {
			w.SetStatus(fmt.Sprintf("Wave %d - %d bugs incoming!", tick.Wave, g.waves.BugCount(tick.Wave)))
		}
	}
	for _, e := range tick.Bugs {
		if _, err := g.newBug(e.Category, e.Spawn); err != nil {
			log.Printf("[BugBlaster] Warning: failed to spawn %s: %v", e.Category.Name, err)
		}
	}
	if errors.Is(err, ErrNoCategories) {
		if g.warnedWave != g.waves.Wave() {
			g.warnedWave = g.waves.Wave()
			log.Printf("[BugBlaster] Warning: %v %d, skipping spawns", err, g.waves.Wave())
		}
		return
	}
	g.checkWaveComplete(w)
}

// checkWaveComplete 没有存活的虫子、没有待释放的虫子、没有 Boss 时进入下一波
func (g *Game) checkWaveComplete(w *engine.World) {
	if !w.Session.Running() || g.boss != 0 || !g.waves.Idle() {
		return
	}
	if len(ecs.GetEntitiesWith1[*components.BugComponent](g.em)) > 0 {
		return
	}
	w.Session.Wave++
	g.waves.Schedule(w.Session.Wave, g.cfg.Waves.NextWaveDelay)
	log.Printf("[BugBlaster] Wave cleared, next wave %d", w.Session.Wave)
}

// EffectExpired 实现 engine.EffectExpirer
func (g *Game) EffectExpired(w *engine.World, name string) {
	if name == types.PowerUpAutofire.String() {
		g.autofireTimer = 0
	}
	if kind, ok := g.cfg.PowerUpKind(name); ok {
		log.Printf("[BugBlaster] %s wore off", kind.Label)
	}
}

// endGame 生命耗尽：检查成就并结束会话
func (g *Game) endGame(w *engine.World) {
	s := w.Session
	if s.Score > g.cfg.Achievements.ScoreMaster {
		g.achievements.Unlock(AchievementScoreMaster)
	}
	if s.MaxCombo >= g.cfg.Achievements.ComboKing {
		g.achievements.Unlock(AchievementComboKing)
	}
	w.Audio.PlaySound("gameOver")

	if s.Score > g.startHigh {
		w.End(fmt.Sprintf("NEW HIGH SCORE: %d!", s.Score))
		return
	}
	w.End(fmt.Sprintf("Game Over! Score: %d", s.Score))
}

// loseLife 扣命，生命耗尽时结束游戏，返回游戏是否已结束
func (g *Game) loseLife(w *engine.World) bool {
	if w.Session.LoseLife() {
		g.endGame(w)
		return true
	}
	return false
}
