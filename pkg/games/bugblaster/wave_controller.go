package bugblaster

import (
	"errors"
	"math/rand"

	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/entities"
	"github.com/decker502/arcade/pkg/vmath"
)

// ErrNoCategories 当前波次没有可用的虫子类别
var ErrNoCategories = errors.New("no bug categories available for wave")

// Emission 一次虫子生成
type Emission struct {
	Category config.CategoryConfig
	Spawn    entities.BugSpawn
}

// WaveTick WaveController.Update 的结果
type WaveTick struct {
	// Started 本帧开始了新的一波（Wave 为其波次）
	Started bool
	Wave    int
	// Boss 本波是 Boss 波，调用方负责生成 Boss
	Boss bool
	// Bugs 本帧需要生成的虫子
	Bugs []Emission
}

// WaveController 波次生成控制器
//
// 职责：
//   - 等待波次开始延迟（开局、波次之间）
//   - 普通波按 SpawnInterval 逐只释放 BaseCount + PerWave×wave 只虫子
//   - 每 Boss.Every 波改为 Boss 波
//   - 按解锁波次与权重随机选择类别，金色虫和陷阱虫有额外机会
//
// 控制器只做决策，不创建实体；时间只在 Update 中推进，因此暂停时不会生成。
type WaveController struct {
	waves      config.WaveConfig
	bossEvery  int
	categories []config.CategoryConfig
	bounds     vmath.Bounds
	rng        *rand.Rand

	wave       int
	waiting    bool    // 等待本波开始
	delay      float64 // 距本波开始的剩余时间
	remaining  int     // 本波尚未释放的虫子
	spawnTimer float64 // 距下一只虫子的剩余时间
}

// NewWaveController 创建波次控制器
func NewWaveController(cfg *config.BugBlasterConfig, bounds vmath.Bounds, rng *rand.Rand) *WaveController {
	return &WaveController{
		waves:      cfg.Waves,
		bossEvery:  cfg.Boss.Every,
		categories: cfg.Categories,
		bounds:     bounds,
		rng:        rng,
	}
}

// Schedule 在 delay 秒后开始第 wave 波，覆盖尚未开始或未释放完的波次
func (wc *WaveController) Schedule(wave int, delay float64) {
	wc.wave = wave
	wc.waiting = true
	wc.delay = delay
	wc.remaining = 0
	wc.spawnTimer = 0
}

// Reset 取消所有待开始与待释放的生成
func (wc *WaveController) Reset() {
	wc.waiting = false
	wc.delay = 0
	wc.remaining = 0
	wc.spawnTimer = 0
}

// Idle 没有等待开始的波次，也没有待释放的虫子
func (wc *WaveController) Idle() bool {
	return !wc.waiting && wc.remaining == 0
}

// Wave 最近一次调度的波次
func (wc *WaveController) Wave() int {
	return wc.wave
}

// Remaining 本波尚未释放的虫子数量
func (wc *WaveController) Remaining() int {
	return wc.remaining
}

// IsBossWave 第 wave 波是否为 Boss 波
func (wc *WaveController) IsBossWave(wave int) bool {
	return wc.bossEvery > 0 && wave > 0 && wave%wc.bossEvery == 0
}

// BugCount 普通波的虫子数量
func (wc *WaveController) BugCount(wave int) int {
	return wc.waves.BaseCount + wc.waves.PerWave*wave
}

// SpeedScale 第 wave 波的速度倍率，随波次单调不减
func (wc *WaveController) SpeedScale(wave int) float64 {
	if wave < 1 {
		wave = 1
	}
	return 1 + wc.waves.SpeedPerWave*float64(wave-1)
}

// Update 推进时间，返回本帧的生成决策
//
// 没有可用类别时返回 ErrNoCategories，本帧不生成，待释放数量保持不变
func (wc *WaveController) Update(dt float64) (WaveTick, error) {
	var tick WaveTick
	if wc.waiting {
		wc.delay -= dt
		if wc.delay > 0 {
			return tick, nil
		}
		wc.waiting = false
		tick.Started = true
		tick.Wave = wc.wave
		if wc.IsBossWave(wc.wave) {
			tick.Boss = true
			return tick, nil
		}
		wc.remaining = wc.BugCount(wc.wave)
		// 第一只虫子在波次开始的同一帧释放
		wc.spawnTimer = 0
		dt = 0
	}

	if wc.remaining == 0 {
		return tick, nil
	}
	wc.spawnTimer -= dt
	for wc.remaining > 0 && wc.spawnTimer <= 0 {
		cat, err := wc.Pick(wc.wave)
		if err != nil {
			wc.spawnTimer = 0
			return tick, err
		}
		tick.Bugs = append(tick.Bugs, Emission{
			Category: cat,
			Spawn:    wc.EdgeSpawn(cat, wc.wave),
		})
		wc.remaining--
		wc.spawnTimer += wc.waves.SpawnInterval
	}
	return tick, nil
}

// Pick 按权重随机选择第 wave 波可用的类别
//
// 解锁波次不大于 wave 且权重为正的类别参与抽取；
// 金色虫与陷阱虫分别以 GoldenChance / TrapChance 的概率额外获得一张票。
func (wc *WaveController) Pick(wave int) (config.CategoryConfig, error) {
	type ticket struct {
		cat    config.CategoryConfig
		weight int
	}
	var tickets []ticket
	total := 0
	for _, cat := range wc.categories {
		if cat.UnlockWave <= wave && cat.Weight > 0 {
			tickets = append(tickets, ticket{cat, cat.Weight})
			total += cat.Weight
		}
	}

	extra := func(name string, chance float64) {
		if wc.rng.Float64() >= chance {
			return
		}
		for _, cat := range wc.categories {
			if cat.Name == name {
				tickets = append(tickets, ticket{cat, 1})
				total++
				return
			}
		}
	}
	extra("golden", wc.waves.GoldenChance)
	extra("trap", wc.waves.TrapChance)

	if total == 0 {
		return config.CategoryConfig{}, ErrNoCategories
	}
	n := wc.rng.Intn(total)
	for _, t := range tickets {
		if n < t.weight {
			return t.cat, nil
		}
		n -= t.weight
	}
	return tickets[len(tickets)-1].cat, nil
}

// EdgeSpawn 在随机一侧的画布外生成，速度指向画布内
func (wc *WaveController) EdgeSpawn(cat config.CategoryConfig, wave int) entities.BugSpawn {
	speed := cat.Speed * wc.SpeedScale(wave)
	off := wc.waves.EdgeOffset
	w, h := wc.bounds.W, wc.bounds.H

	switch wc.rng.Intn(4) {
	case 0: // 上
		return entities.BugSpawn{X: wc.rng.Float64() * w, Y: -off, VY: speed}
	case 1: // 右
		return entities.BugSpawn{X: w + off, Y: wc.rng.Float64() * h, VX: -speed}
	case 2: // 下
		return entities.BugSpawn{X: wc.rng.Float64() * w, Y: h + off, VY: -speed}
	default: // 左
		return entities.BugSpawn{X: -off, Y: wc.rng.Float64() * h, VX: speed}
	}
}
