package types

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ef4444", color.RGBA{0xef, 0x44, 0x44, 0xff}, false},
		{"#000", color.RGBA{0, 0, 0, 0xff}, false},
		{"fbbf24", color.RGBA{0xfb, 0xbf, 0x24, 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFade(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}
	if got := Fade(c, 0.5); got != (color.RGBA{100, 50, 25, 127}) {
		t.Errorf("Fade(0.5) = %v", got)
	}
	if got := Fade(c, 0); got != (color.RGBA{}) {
		t.Errorf("Fade(0) = %v", got)
	}
}

func TestCategoryNamesRoundTrip(t *testing.T) {
	for c := BugBasic; c <= BugTrap; c++ {
		parsed, err := ParseBugCategory(c.String())
		if err != nil || parsed != c {
			t.Errorf("ParseBugCategory(%q) = %v, %v", c.String(), parsed, err)
		}
	}
	if _, err := ParseBugCategory("ladybug"); err == nil {
		t.Error("expected error for unknown category")
	}
	for k := PowerUpAutofire; k <= PowerUpFreeze; k++ {
		if parsed, err := ParsePowerUpKind(k.String()); err != nil || parsed != k {
			t.Errorf("ParsePowerUpKind(%q) = %v, %v", k.String(), parsed, err)
		}
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    string
	}{
		{0, 1, 0.5, "#ff0000"},
		{120, 1, 0.5, "#00ff00"},
		{240, 1, 0.5, "#0000ff"},
		{360, 1, 0.5, "#ff0000"},
		{-120, 1, 0.5, "#0000ff"},
		{0, 0, 1, "#ffffff"},
	}
	for _, tt := range tests {
		if got := HexString(HSL(tt.h, tt.s, tt.l)); got != tt.want {
			t.Errorf("HSL(%v, %v, %v) = %s, want %s", tt.h, tt.s, tt.l, got, tt.want)
		}
	}
}
