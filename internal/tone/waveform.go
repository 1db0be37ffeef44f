// Package tone synthesizes short feedback tones (oscillator + envelope) as
// beep streamers and renders them to PCM for hosts that play raw bytes.
package tone

import "fmt"

// Waveform is an oscillator wave shape.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// ParseWaveform maps a config name to a Waveform. The empty string is sine.
func ParseWaveform(name string) (Waveform, error) {
	switch name {
	case "", "sine":
		return Sine, nil
	case "square":
		return Square, nil
	case "sawtooth", "saw":
		return Sawtooth, nil
	case "triangle":
		return Triangle, nil
	}
	return Sine, fmt.Errorf("unknown waveform %q", name)
}
