package game

import (
	"fmt"
	"log"

	"github.com/decker502/arcade/internal/tone"
	"github.com/decker502/arcade/pkg/config"
)

// ToneGenerator 宿主提供的音调播放能力
// 实现必须立即返回（fire-and-forget）
type ToneGenerator interface {
	PlayTone(freq, duration float64, wave tone.Waveform, volume float64) error
}

// Cue 命名音效
type Cue struct {
	Frequency float64
	Duration  float64
	Wave      tone.Waveform
}

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 播放失败只记录一次日志，之后静默忽略
type AudioManager struct {
	tones           ToneGenerator    // 可为 nil（无音频）
	settingsManager *SettingsManager // 可为 nil（使用默认音量）
	cues            map[string]Cue
	failed          bool
}

// NewAudioManager 创建新的音频管理器
func NewAudioManager(tones ToneGenerator, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		tones:           tones,
		settingsManager: sm,
		cues:            make(map[string]Cue),
	}
}

// LoadCues 从配置注册命名音效
func (am *AudioManager) LoadCues(sounds map[string]config.ToneConfig) error {
	for name, s := range sounds {
		wave, err := tone.ParseWaveform(s.Wave)
		if err != nil {
			return fmt.Errorf("sound %q: %w", name, err)
		}
		am.cues[name] = Cue{Frequency: s.Frequency, Duration: s.Duration, Wave: wave}
	}
	return nil
}

// PlaySound 播放命名音效，返回是否成功播放
func (am *AudioManager) PlaySound(cueID string) bool {
	cue, ok := am.cues[cueID]
	if !ok {
		return false
	}
	return am.PlayTone(cue.Frequency, cue.Duration, cue.Wave)
}

// PlayTone 直接播放指定音调
func (am *AudioManager) PlayTone(freq, duration float64, wave tone.Waveform) bool {
	if am == nil || am.tones == nil {
		return false
	}
	volume := am.getSoundVolume()
	if volume <= 0 {
		return false
	}
	if err := am.tones.PlayTone(freq, duration, wave, volume); err != nil {
		if !am.failed {
			log.Printf("[AudioManager] Warning: tone playback unavailable: %v", err)
			am.failed = true
		}
		return false
	}
	return true
}

// getSoundVolume 音效关闭时返回 0
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager == nil {
		return 1
	}
	settings := am.settingsManager.GetSettings()
	if !settings.SoundEnabled {
		return 0
	}
	return settings.SoundVolume
}
