package app

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/decker502/arcade/internal/tone"
)

// maxVoices 同时播放的音调上限，超出时丢弃新的音调
const maxVoices = 16

// TonePlayer 用 ebiten 音频上下文播放合成的音调，实现 game.ToneGenerator
type TonePlayer struct {
	ctx     *audio.Context
	playing []*audio.Player
}

// NewTonePlayer 创建音调播放器
func NewTonePlayer(ctx *audio.Context) *TonePlayer {
	return &TonePlayer{ctx: ctx}
}

// PlayTone 合成 PCM 并立即开始播放
func (p *TonePlayer) PlayTone(freq, duration float64, wave tone.Waveform, volume float64) error {
	p.reap()
	if len(p.playing) >= maxVoices {
		return nil
	}
	pcm := tone.Render(p.ctx.SampleRate(), freq, duration, wave, volume)
	player := p.ctx.NewPlayerFromBytes(pcm)
	player.Play()
	p.playing = append(p.playing, player)
	return nil
}

// reap 释放已经播放完的 player
func (p *TonePlayer) reap() {
	p.playing = slices.DeleteFunc(p.playing, func(pl *audio.Player) bool {
		if pl.IsPlaying() {
			return false
		}
		_ = pl.Close()
		return true
	})
}
