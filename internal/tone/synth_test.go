package tone

import (
	"testing"

	"github.com/gopxl/beep"
)

func TestParseWaveform(t *testing.T) {
	tests := []struct {
		in      string
		want    Waveform
		wantErr bool
	}{
		{"", Sine, false},
		{"sine", Sine, false},
		{"square", Square, false},
		{"sawtooth", Sawtooth, false},
		{"triangle", Triangle, false},
		{"noise", Sine, true},
	}
	for _, tt := range tests {
		got, err := ParseWaveform(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseWaveform(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestRenderLength(t *testing.T) {
	// 0.1s at 48kHz = 4800 frames, 4 bytes per stereo frame
	pcm := Render(48000, 400, 0.1, Sine, 1)
	if len(pcm) != 4800*4 {
		t.Fatalf("len(pcm) = %d, want %d", len(pcm), 4800*4)
	}
}

func TestRenderEnvelopeDecays(t *testing.T) {
	s := New(beep.SampleRate(8000), 200, 0.5, Square, 1)
	buf := make([][2]float64, 4000)
	n, _ := s.Stream(buf)
	if n != 4000 {
		t.Fatalf("streamed %d samples, want 4000", n)
	}

	peak := func(from, to int) float64 {
		m := 0.0
		for _, f := range buf[from:to] {
			if v := f[0]; v > m {
				m = v
			} else if -v > m {
				m = -v
			}
		}
		return m
	}
	early, late := peak(100, 500), peak(3500, 4000)
	if early > startGain+1e-9 {
		t.Errorf("early peak %v exceeds start gain", early)
	}
	if late >= early {
		t.Errorf("envelope should decay: early=%v late=%v", early, late)
	}
}

func TestSilentVolume(t *testing.T) {
	pcm := Render(8000, 440, 0.05, Sine, 0)
	for i, b := range pcm {
		if b != 0 {
			t.Fatalf("byte %d = %d, want silence", i, b)
		}
	}
}
