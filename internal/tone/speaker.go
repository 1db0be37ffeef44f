package tone

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SpeakerRate is the sample rate used for the system speaker.
const SpeakerRate = beep.SampleRate(44100)

// SpeakerPlayer plays tones on the system speaker through beep.
// It is used by hosts without their own audio context (the terminal host).
type SpeakerPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeakerPlayer creates a player; call Init before playing.
func NewSpeakerPlayer() *SpeakerPlayer {
	return &SpeakerPlayer{mixer: &beep.Mixer{}}
}

// Init opens the speaker with a 100ms buffer.
func (p *SpeakerPlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SpeakerRate, SpeakerRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlayTone queues a tone on the shared mixer and returns immediately.
func (p *SpeakerPlayer) PlayTone(freq, duration float64, wave Waveform, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return fmt.Errorf("speaker not initialized")
	}
	s := New(SpeakerRate, freq, duration, wave, volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Close silences everything still playing.
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
