package tone

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	// startGain and endGain mirror a gain node ramping exponentially from
	// 0.1 to 0.01 over the tone's duration.
	startGain = 0.1
	endGain   = 0.01
	// attack avoids a click at the start of the tone.
	attack = 5 * time.Millisecond
)

// oscillator generates a raw periodic wave.
type oscillator struct {
	freq  float64
	phase float64
	wave  Waveform
	rate  beep.SampleRate
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var val float64
		switch o.wave {
		case Square:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case Sawtooth:
			val = 2 * (o.phase - 0.5)
		case Triangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decayEnvelope applies a short linear attack followed by an exponential
// decay from startGain to endGain across total samples.
type decayEnvelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	total    int
}

func (e *decayEnvelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(e.pos) / float64(e.total)
		gain := startGain * math.Pow(endGain/startGain, t)
		if e.pos < e.attack {
			gain *= float64(e.pos) / float64(e.attack)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *decayEnvelope) Err() error { return e.streamer.Err() }

// New returns a finite streamer playing freq Hz for duration seconds.
// volume is linear in [0, 1]; 0 yields a silent streamer of the same length.
func New(rate beep.SampleRate, freq, duration float64, wave Waveform, volume float64) beep.Streamer {
	total := rate.N(time.Duration(duration * float64(time.Second)))
	if total < 1 {
		total = 1
	}
	att := rate.N(attack)
	if att > total/2 {
		att = total / 2
	}
	env := &decayEnvelope{
		streamer: &oscillator{freq: freq, wave: wave, rate: rate},
		attack:   att,
		total:    total,
	}

	vol := &effects.Volume{Streamer: env, Base: 2}
	if volume <= 0 {
		vol.Silent = true
	} else if volume < 1 {
		vol.Volume = math.Log2(volume)
	}
	return beep.Take(total, vol)
}

// RenderPCM16 drains s into interleaved signed 16-bit little-endian stereo
// PCM, the format ebiten's audio context expects.
func RenderPCM16(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				if v > 1 {
					v = 1
				} else if v < -1 {
					v = -1
				}
				x := int16(v * math.MaxInt16)
				out = append(out, byte(x), byte(x>>8))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}

// Render is New followed by RenderPCM16.
func Render(rate int, freq, duration float64, wave Waveform, volume float64) []byte {
	return RenderPCM16(New(beep.SampleRate(rate), freq, duration, wave, volume))
}
