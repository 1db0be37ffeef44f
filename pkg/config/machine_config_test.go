package config

import (
	"strings"
	"testing"
)

func TestLoadMachineConfig_ShippedFile(t *testing.T) {
	cfg, err := LoadMachineConfig("../../data/machine.yaml")
	if err != nil {
		t.Fatalf("LoadMachineConfig failed: %v", err)
	}
	if cfg.Size != 40 || cfg.Damping != 0.92 || cfg.Restitution != 0.8 {
		t.Errorf("unexpected physics: size=%v damping=%v restitution=%v", cfg.Size, cfg.Damping, cfg.Restitution)
	}
	if len(cfg.Actions) != len(MachineActions) {
		t.Errorf("expected %d actions, got %d", len(MachineActions), len(cfg.Actions))
	}
	if m, ok := cfg.Mood("angry"); !ok || m.Thought != "GRRR!" {
		t.Errorf("Mood(angry) = %+v, %v", m, ok)
	}
}

func TestParseMachineConfig_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		errContains string
	}{
		{"unknown action", "actions: [turnOff, fly]", "unknown action"},
		{"size outside range", "size: 100", "outside"},
		{"damping above one", "damping: 1.5", "damping"},
		{"empty moods", "moods: []", "moods"},
		{"inverted random range", "randomActionMin: 5\nrandomActionMax: 1", "random action range"},
		{"machine too big", "playfield: { width: 60, height: 60, background: '#000' }", "does not fit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMachineConfig([]byte(tt.yamlContent))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
			}
		})
	}
}
