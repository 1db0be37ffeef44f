package config

import (
	"fmt"

	"github.com/decker502/arcade/pkg/types"
	"gopkg.in/yaml.v3"
)

// BugBlasterConfig 打虫子游戏的全部可调参数
// 时间单位为秒，速度单位为像素/秒
type BugBlasterConfig struct {
	Playfield    PlayfieldConfig       `yaml:"playfield"`
	Particles    ParticleConfig        `yaml:"particles"`
	Scoring      ScoringConfig         `yaml:"scoring"`
	Categories   []CategoryConfig      `yaml:"categories"`
	Waves        WaveConfig            `yaml:"waves"`
	Boss         BossConfig            `yaml:"boss"`
	PowerUps     PowerUpConfig         `yaml:"powerUps"`
	Achievements AchievementConfig     `yaml:"achievements"`
	Sounds       map[string]ToneConfig `yaml:"sounds"`
}

// ScoringConfig 计分、生命与反馈参数
type ScoringConfig struct {
	Lives          int     `yaml:"lives"`
	ComboStep      float64 `yaml:"comboStep"`      // 每层连击的得分加成（0.1 = +10%）
	ComboGrace     float64 `yaml:"comboGrace"`     // 连击宽限时间
	FlashDuration  float64 `yaml:"flashDuration"`  // 受击闪烁时间
	ChildSpeed     float64 `yaml:"childSpeed"`     // 分裂子虫/小兵随机速度范围（±ChildSpeed/2）
	ExplosionCount int     `yaml:"explosionCount"` // 普通击杀爆炸粒子数
	SplatSize      float64 `yaml:"splatSize"`
	HitShake       float64 `yaml:"hitShake"`    // 击中 Boss
	BombShake      float64 `yaml:"bombShake"`   // 炸弹虫爆炸
	EscapeShake    float64 `yaml:"escapeShake"` // 虫子逃逸扣命
	TrapShake      float64 `yaml:"trapShake"`
	TrapFreeze     int     `yaml:"trapFreeze"` // 触发陷阱后的定格帧数
}

// CategoryConfig 虫子类别
type CategoryConfig struct {
	Name       string       `yaml:"name"`
	Size       float64      `yaml:"size"`   // 半径
	Speed      float64      `yaml:"speed"`  // 基础速度
	Points     int          `yaml:"points"` // 基础分
	Color      string       `yaml:"color"`
	Health     int          `yaml:"health"`
	UnlockWave int          `yaml:"unlockWave"` // 最早出现的波次
	Weight     int          `yaml:"weight"`     // 随机权重
	Trait      *TraitConfig `yaml:"trait,omitempty"`
}

// TraitConfig 特殊行为参数，按 Kind 使用对应字段
type TraitConfig struct {
	Kind       string  `yaml:"kind"` // split/explode/teleport/golden/trap
	ChildScale float64 `yaml:"childScale,omitempty"`
	Children   int     `yaml:"children,omitempty"`
	Radius     float64 `yaml:"radius,omitempty"`
	Damage     int     `yaml:"damage,omitempty"`
	Interval   float64 `yaml:"interval,omitempty"`
	Bonus      int     `yaml:"bonus,omitempty"`
	Penalty    int     `yaml:"penalty,omitempty"`
}

// WaveConfig 波次生成参数
type WaveConfig struct {
	BaseCount         int     `yaml:"baseCount"`         // 每波基础数量
	PerWave           int     `yaml:"perWave"`           // 每波递增数量
	SpawnInterval     float64 `yaml:"spawnInterval"`     // 同一波内相邻虫子的间隔
	SpeedPerWave      float64 `yaml:"speedPerWave"`      // 每波速度加成
	FirstWaveDelay    float64 `yaml:"firstWaveDelay"`    // 开局到第一波的延迟
	NextWaveDelay     float64 `yaml:"nextWaveDelay"`     // 普通波结束到下一波的延迟
	BossNextWaveDelay float64 `yaml:"bossNextWaveDelay"` // 击败 Boss 后的延迟
	GoldenChance      float64 `yaml:"goldenChance"`      // 金色虫额外出现机会
	TrapChance        float64 `yaml:"trapChance"`        // 陷阱虫额外出现机会
	EdgeOffset        float64 `yaml:"edgeOffset"`        // 生成点在画布外的距离
}

// BossConfig Boss 参数
type BossConfig struct {
	Every               int     `yaml:"every"` // 每隔多少波出现一次
	BaseHealth          int     `yaml:"baseHealth"`
	HealthPerBoss       int     `yaml:"healthPerBoss"`
	Size                float64 `yaml:"size"`
	Color               string  `yaml:"color"`
	AngryColor          string  `yaml:"angryColor"`
	MoveInterval        float64 `yaml:"moveInterval"` // 重新随机方向的间隔
	MoveSpeed           float64 `yaml:"moveSpeed"`    // 每个方向分量的最大速度
	AngrySpeedFactor    float64 `yaml:"angrySpeedFactor"`
	AttackInterval      float64 `yaml:"attackInterval"`
	AngryAttackInterval float64 `yaml:"angryAttackInterval"`
	Minions             int     `yaml:"minions"`
	AngryMinions        int     `yaml:"angryMinions"`
	BasePoints          int     `yaml:"basePoints"`
	PointsPerBoss       int     `yaml:"pointsPerBoss"`
	PowerUpDrops        int     `yaml:"powerUpDrops"`
	DropSpacing         float64 `yaml:"dropSpacing"` // 相邻掉落的延迟
	DropSpread          float64 `yaml:"dropSpread"`
	DefeatFreeze        int     `yaml:"defeatFreeze"` // 击败后的定格帧数
	DefeatShake         float64 `yaml:"defeatShake"`
}

// PowerUpConfig 道具参数
type PowerUpConfig struct {
	DropChance       float64             `yaml:"dropChance"`
	Radius           float64             `yaml:"radius"`
	FallSpeed        float64             `yaml:"fallSpeed"`
	Lifetime         float64             `yaml:"lifetime"`
	SlowmoFactor     float64             `yaml:"slowmoFactor"`
	MultishotDamage  int                 `yaml:"multishotDamage"`
	NukeBossDamage   int                 `yaml:"nukeBossDamage"`
	NukeShake        float64             `yaml:"nukeShake"`
	AutofireInterval float64             `yaml:"autofireInterval"`
	Kinds            []PowerUpKindConfig `yaml:"kinds"`
}

// PowerUpKindConfig 单个道具类型
type PowerUpKindConfig struct {
	Name     string  `yaml:"name"`
	Label    string  `yaml:"label"`
	Duration float64 `yaml:"duration"` // 0 表示立即生效
}

// AchievementConfig 成就门槛
type AchievementConfig struct {
	BossSlayerBosses int `yaml:"bossSlayerBosses"`
	ScoreMaster      int `yaml:"scoreMaster"` // 分数严格大于该值
	ComboKing        int `yaml:"comboKing"`   // 最大连击不小于该值
}

// DefaultBugBlasterConfig 返回内置默认配置
// 与 data/bugblaster.yaml 保持一致，YAML 中缺省的字段使用这里的值
func DefaultBugBlasterConfig() *BugBlasterConfig {
	return &BugBlasterConfig{
		Playfield: PlayfieldConfig{
			Width:        800,
			Height:       600,
			Background:   "#1e293b",
			ShakeDecay:   0.9,
			EscapeMargin: 50,
		},
		Particles: ParticleConfig{
			Cap:        400,
			Speed:      360,
			Lift:       120,
			Gravity:    720,
			Decay:      1.2,
			Drag:       1,
			SplatDecay: 0.3,
			MinSize:    1,
			MaxSize:    4,
		},
		Scoring: ScoringConfig{
			Lives:          3,
			ComboStep:      0.1,
			ComboGrace:     3,
			FlashDuration:  0.1,
			ChildSpeed:     180,
			ExplosionCount: 20,
			SplatSize:      20,
			HitShake:       5,
			BombShake:      10,
			EscapeShake:    15,
			TrapShake:      20,
			TrapFreeze:     6,
		},
		Categories: []CategoryConfig{
			{Name: "basic", Size: 20, Speed: 60, Points: 10, Color: "#ef4444", Health: 1, UnlockWave: 1, Weight: 1},
			{Name: "fast", Size: 15, Speed: 180, Points: 20, Color: "#3b82f6", Health: 1, UnlockWave: 2, Weight: 1},
			{Name: "tank", Size: 30, Speed: 30, Points: 30, Color: "#8b5cf6", Health: 3, UnlockWave: 4, Weight: 1},
			{Name: "splitter", Size: 25, Speed: 90, Points: 25, Color: "#f59e0b", Health: 2, UnlockWave: 6, Weight: 1,
				Trait: &TraitConfig{Kind: "split", ChildScale: 0.5, Children: 2}},
			{Name: "teleporter", Size: 18, Speed: 120, Points: 35, Color: "#06b6d4", Health: 1, UnlockWave: 8, Weight: 1,
				Trait: &TraitConfig{Kind: "teleport", Interval: 2}},
			{Name: "bomber", Size: 22, Speed: 60, Points: 40, Color: "#ec4899", Health: 2, UnlockWave: 10, Weight: 1,
				Trait: &TraitConfig{Kind: "explode", Radius: 100, Damage: 1}},
			{Name: "golden", Size: 15, Speed: 240, Points: 100, Color: "#fbbf24", Health: 1, UnlockWave: 12, Weight: 1,
				Trait: &TraitConfig{Kind: "golden", Bonus: 50}},
			{Name: "trap", Size: 22, Speed: 48, Points: -50, Color: "#1f2937", Health: 1, UnlockWave: 14, Weight: 1,
				Trait: &TraitConfig{Kind: "trap", Penalty: 50}},
		},
		Waves: WaveConfig{
			BaseCount:         5,
			PerWave:           2,
			SpawnInterval:     0.3,
			SpeedPerWave:      0.05,
			FirstWaveDelay:    1,
			NextWaveDelay:     2,
			BossNextWaveDelay: 3,
			GoldenChance:      0.05,
			TrapChance:        0.1,
			EdgeOffset:        30,
		},
		Boss: BossConfig{
			Every:               5,
			BaseHealth:          20,
			HealthPerBoss:       10,
			Size:                60,
			Color:               "#dc2626",
			AngryColor:          "#991b1b",
			MoveInterval:        1,
			MoveSpeed:           120,
			AngrySpeedFactor:    1.5,
			AttackInterval:      2,
			AngryAttackInterval: 1,
			Minions:             2,
			AngryMinions:        3,
			BasePoints:          500,
			PointsPerBoss:       200,
			PowerUpDrops:        3,
			DropSpacing:         0.2,
			DropSpread:          100,
			DefeatFreeze:        10,
			DefeatShake:         20,
		},
		PowerUps: PowerUpConfig{
			DropChance:       0.3,
			Radius:           20,
			FallSpeed:        120,
			Lifetime:         10.0 / 3,
			SlowmoFactor:     0.3,
			MultishotDamage:  2,
			NukeBossDamage:   5,
			NukeShake:        30,
			AutofireInterval: 0.5,
			Kinds: []PowerUpKindConfig{
				{Name: "autofire", Label: "Auto-Fire", Duration: 10},
				{Name: "slowmo", Label: "Slow Motion", Duration: 8},
				{Name: "shield", Label: "Shield", Duration: 15},
				{Name: "multishot", Label: "Multi-Shot", Duration: 12},
				{Name: "nuke", Label: "Nuke", Duration: 0},
				{Name: "freeze", Label: "Freeze", Duration: 5},
			},
		},
		Achievements: AchievementConfig{
			BossSlayerBosses: 2,
			ScoreMaster:      1000,
			ComboKing:        10,
		},
		Sounds: map[string]ToneConfig{
			"hit":      {Frequency: 400, Duration: 0.1},
			"miss":     {Frequency: 200, Duration: 0.1},
			"powerUp":  {Frequency: 600, Duration: 0.2},
			"bossHit":  {Frequency: 300, Duration: 0.15},
			"gameOver": {Frequency: 150, Duration: 0.5},
			"splat":    {Frequency: 100, Duration: 0.2},
			"trap":     {Frequency: 100, Duration: 0.5},
		},
	}
}

// LoadBugBlasterConfig 从 YAML 文件加载打虫子配置
func LoadBugBlasterConfig(filePath string) (*BugBlasterConfig, error) {
	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, err
	}
	return ParseBugBlasterConfig(data)
}

// ParseBugBlasterConfig 解析 YAML 内容
// 解析结果覆盖在默认配置之上（列表整体替换，映射按键合并）
func ParseBugBlasterConfig(data []byte) (*BugBlasterConfig, error) {
	config := DefaultBugBlasterConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse bug blaster YAML: %w", err)
	}

	if err := validateBugBlasterConfig(config); err != nil {
		return nil, fmt.Errorf("invalid bug blaster config: %w", err)
	}

	return config, nil
}

// Category 按名称查找类别
func (c *BugBlasterConfig) Category(name string) (CategoryConfig, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return CategoryConfig{}, false
}

// PowerUpKind 按名称查找道具
func (c *BugBlasterConfig) PowerUpKind(name string) (PowerUpKindConfig, bool) {
	for _, k := range c.PowerUps.Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return PowerUpKindConfig{}, false
}

// validateBugBlasterConfig 验证配置的有效性
func validateBugBlasterConfig(config *BugBlasterConfig) error {
	if err := validatePlayfield(&config.Playfield); err != nil {
		return err
	}
	if err := validateParticles(&config.Particles); err != nil {
		return err
	}

	s := config.Scoring
	if s.Lives < 1 {
		return fmt.Errorf("scoring.lives must be >= 1, got %d", s.Lives)
	}
	if s.ComboStep < 0 || s.ComboGrace <= 0 {
		return fmt.Errorf("scoring combo settings invalid: step=%v grace=%v", s.ComboStep, s.ComboGrace)
	}
	if s.FlashDuration <= 0 {
		return fmt.Errorf("scoring.flashDuration must be positive")
	}

	// 验证虫子类别
	if len(config.Categories) == 0 {
		return fmt.Errorf("categories cannot be empty")
	}
	if _, ok := config.Category("basic"); !ok {
		// 分裂子虫和 Boss 小兵都使用 basic
		return fmt.Errorf("category \"basic\" is required")
	}
	seen := make(map[string]bool)
	for _, cat := range config.Categories {
		if err := validateCategory(cat); err != nil {
			return err
		}
		if seen[cat.Name] {
			return fmt.Errorf("duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
	}

	w := config.Waves
	if w.BaseCount < 0 || w.PerWave < 0 {
		return fmt.Errorf("waves counts must be >= 0")
	}
	if w.SpawnInterval <= 0 {
		return fmt.Errorf("waves.spawnInterval must be positive, got %v", w.SpawnInterval)
	}
	if w.SpeedPerWave < 0 {
		return fmt.Errorf("waves.speedPerWave must be >= 0, got %v", w.SpeedPerWave)
	}
	if w.GoldenChance < 0 || w.GoldenChance > 1 || w.TrapChance < 0 || w.TrapChance > 1 {
		return fmt.Errorf("waves chances must be in [0, 1]")
	}

	b := config.Boss
	if b.Every < 1 {
		return fmt.Errorf("boss.every must be >= 1, got %d", b.Every)
	}
	if b.BaseHealth < 1 || b.Size <= 0 {
		return fmt.Errorf("boss health and size must be positive")
	}
	if b.MoveInterval <= 0 || b.AttackInterval <= 0 || b.AngryAttackInterval <= 0 {
		return fmt.Errorf("boss intervals must be positive")
	}
	for _, c := range []string{b.Color, b.AngryColor} {
		if _, err := types.ParseHexColor(c); err != nil {
			return fmt.Errorf("boss color: %w", err)
		}
	}

	p := config.PowerUps
	if p.DropChance < 0 || p.DropChance > 1 {
		return fmt.Errorf("powerUps.dropChance must be in [0, 1], got %v", p.DropChance)
	}
	if p.Radius <= 0 || p.Lifetime <= 0 || p.AutofireInterval <= 0 {
		return fmt.Errorf("powerUps radius, lifetime and autofireInterval must be positive")
	}
	if len(p.Kinds) == 0 {
		return fmt.Errorf("powerUps.kinds cannot be empty")
	}
	for _, k := range p.Kinds {
		if _, err := types.ParsePowerUpKind(k.Name); err != nil {
			return err
		}
		if k.Duration < 0 {
			return fmt.Errorf("power-up %q: duration must be >= 0", k.Name)
		}
	}

	return validateSounds(config.Sounds)
}

func validateCategory(cat CategoryConfig) error {
	if _, err := types.ParseBugCategory(cat.Name); err != nil {
		return err
	}
	if cat.Size <= 0 {
		return fmt.Errorf("category %q: size must be positive", cat.Name)
	}
	if cat.Health < 1 {
		return fmt.Errorf("category %q: health must be >= 1", cat.Name)
	}
	if cat.UnlockWave < 1 {
		return fmt.Errorf("category %q: unlockWave must be >= 1", cat.Name)
	}
	if cat.Weight < 0 {
		return fmt.Errorf("category %q: weight must be >= 0", cat.Name)
	}
	if _, err := types.ParseHexColor(cat.Color); err != nil {
		return fmt.Errorf("category %q: %w", cat.Name, err)
	}
	if cat.Trait == nil {
		return nil
	}
	switch t := cat.Trait; t.Kind {
	case "split":
		if t.Children < 1 || t.ChildScale <= 0 {
			return fmt.Errorf("category %q: split needs children >= 1 and childScale > 0", cat.Name)
		}
	case "explode":
		if t.Radius <= 0 || t.Damage < 1 {
			return fmt.Errorf("category %q: explode needs radius > 0 and damage >= 1", cat.Name)
		}
	case "teleport":
		if t.Interval <= 0 {
			return fmt.Errorf("category %q: teleport interval must be positive", cat.Name)
		}
	case "golden":
		if t.Bonus < 0 {
			return fmt.Errorf("category %q: golden bonus must be >= 0", cat.Name)
		}
	case "trap":
		if t.Penalty < 0 {
			return fmt.Errorf("category %q: trap penalty must be >= 0", cat.Name)
		}
	default:
		return fmt.Errorf("category %q: unknown trait %q", cat.Name, t.Kind)
	}
	return nil
}
