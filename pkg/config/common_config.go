package config

import (
	"fmt"

	"github.com/decker502/arcade/pkg/types"
)

// PlayfieldConfig 画布与引擎通用参数
type PlayfieldConfig struct {
	Width        float64 `yaml:"width"`        // 画布宽度（像素）
	Height       float64 `yaml:"height"`       // 画布高度（像素）
	Background   string  `yaml:"background"`   // 背景色
	ShakeDecay   float64 `yaml:"shakeDecay"`   // 屏幕震动每参考帧衰减系数
	EscapeMargin float64 `yaml:"escapeMargin"` // 实体离开画布超过该距离视为逃逸
}

// ParticleConfig 粒子系统参数（速度单位：像素/秒）
type ParticleConfig struct {
	Cap        int     `yaml:"cap"`        // 粒子池上限
	Speed      float64 `yaml:"speed"`      // 随机速度幅度（±Speed/2）
	Lift       float64 `yaml:"lift"`       // 初始向上偏移速度
	Gravity    float64 `yaml:"gravity"`    // 重力加速度（像素/秒²）
	Decay      float64 `yaml:"decay"`      // 每秒寿命衰减
	Drag       float64 `yaml:"drag"`       // 每参考帧水平阻力系数，1 表示无阻力
	SplatDecay float64 `yaml:"splatDecay"` // 污渍每秒寿命衰减
	MinSize    float64 `yaml:"minSize"`
	MaxSize    float64 `yaml:"maxSize"`
}

// ToneConfig 音效参数
type ToneConfig struct {
	Frequency float64 `yaml:"frequency"` // Hz
	Duration  float64 `yaml:"duration"`  // 秒
	Wave      string  `yaml:"wave"`      // sine/square/sawtooth/triangle，空为 sine
}

func validatePlayfield(p *PlayfieldConfig) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("playfield size must be positive, got %vx%v", p.Width, p.Height)
	}
	if _, err := types.ParseHexColor(p.Background); err != nil {
		return fmt.Errorf("playfield.background: %w", err)
	}
	if p.ShakeDecay < 0 || p.ShakeDecay >= 1 {
		return fmt.Errorf("playfield.shakeDecay must be in [0, 1), got %v", p.ShakeDecay)
	}
	if p.EscapeMargin < 0 {
		return fmt.Errorf("playfield.escapeMargin must be >= 0, got %v", p.EscapeMargin)
	}
	return nil
}

func validateParticles(p *ParticleConfig) error {
	if p.Cap < 1 {
		return fmt.Errorf("particles.cap must be >= 1, got %d", p.Cap)
	}
	if p.Decay <= 0 || p.SplatDecay <= 0 {
		return fmt.Errorf("particles decay rates must be positive")
	}
	if p.Drag <= 0 || p.Drag > 1 {
		return fmt.Errorf("particles.drag must be in (0, 1], got %v", p.Drag)
	}
	if p.MinSize <= 0 || p.MaxSize < p.MinSize {
		return fmt.Errorf("particles size range invalid: [%v, %v]", p.MinSize, p.MaxSize)
	}
	return nil
}

func validateSounds(sounds map[string]ToneConfig) error {
	for name, s := range sounds {
		if s.Frequency <= 0 {
			return fmt.Errorf("sound %q: frequency must be positive", name)
		}
		if s.Duration <= 0 {
			return fmt.Errorf("sound %q: duration must be positive", name)
		}
		switch s.Wave {
		case "", "sine", "square", "sawtooth", "triangle":
		default:
			return fmt.Errorf("sound %q: unknown wave %q", name, s.Wave)
		}
	}
	return nil
}
