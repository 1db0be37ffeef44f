package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadBugBlasterConfig_ShippedFile(t *testing.T) {
	cfg, err := LoadBugBlasterConfig("../../data/bugblaster.yaml")
	if err != nil {
		t.Fatalf("LoadBugBlasterConfig failed: %v", err)
	}

	defaults := DefaultBugBlasterConfig()
	if !reflect.DeepEqual(cfg.Categories, defaults.Categories) {
		t.Errorf("shipped categories differ from defaults:\n got %+v\nwant %+v", cfg.Categories, defaults.Categories)
	}
	if !reflect.DeepEqual(cfg.Sounds, defaults.Sounds) {
		t.Errorf("shipped sounds differ from defaults: %+v", cfg.Sounds)
	}
	if cfg.Waves != defaults.Waves {
		t.Errorf("waves = %+v, want %+v", cfg.Waves, defaults.Waves)
	}
	if cfg.Boss != defaults.Boss {
		t.Errorf("boss = %+v, want %+v", cfg.Boss, defaults.Boss)
	}
	if cfg.Scoring != defaults.Scoring {
		t.Errorf("scoring = %+v, want %+v", cfg.Scoring, defaults.Scoring)
	}
}

func TestLoadBugBlasterConfig_MissingFile(t *testing.T) {
	_, err := LoadBugBlasterConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseBugBlasterConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *BugBlasterConfig)
	}{
		{
			name:        "empty document keeps defaults",
			yamlContent: "",
			validate: func(t *testing.T, cfg *BugBlasterConfig) {
				if cfg.Scoring.Lives != 3 {
					t.Errorf("expected lives = 3, got %d", cfg.Scoring.Lives)
				}
				if len(cfg.Categories) != 8 {
					t.Errorf("expected 8 categories, got %d", len(cfg.Categories))
				}
			},
		},
		{
			name: "partial override",
			yamlContent: `
scoring:
  lives: 5
boss:
  every: 3
`,
			validate: func(t *testing.T, cfg *BugBlasterConfig) {
				if cfg.Scoring.Lives != 5 {
					t.Errorf("expected lives = 5, got %d", cfg.Scoring.Lives)
				}
				if cfg.Scoring.ComboGrace != 3 {
					t.Errorf("unset field should keep default, got comboGrace = %v", cfg.Scoring.ComboGrace)
				}
				if cfg.Boss.Every != 3 {
					t.Errorf("expected boss.every = 3, got %d", cfg.Boss.Every)
				}
			},
		},
		{
			name: "categories list replaces defaults",
			yamlContent: `
categories:
  - { name: basic, size: 10, speed: 50, points: 1, color: "#fff", health: 1, unlockWave: 1, weight: 1 }
`,
			validate: func(t *testing.T, cfg *BugBlasterConfig) {
				if len(cfg.Categories) != 1 {
					t.Fatalf("expected 1 category, got %d", len(cfg.Categories))
				}
				if cfg.Categories[0].Size != 10 {
					t.Errorf("expected size 10, got %v", cfg.Categories[0].Size)
				}
			},
		},
		{
			name: "basic category required",
			yamlContent: `
categories:
  - { name: fast, size: 10, speed: 50, points: 1, color: "#fff", health: 1, unlockWave: 1 }
`,
			wantErr:     true,
			errContains: "basic",
		},
		{
			name: "unknown category",
			yamlContent: `
categories:
  - { name: basic, size: 10, speed: 50, points: 1, color: "#fff", health: 1, unlockWave: 1 }
  - { name: ladybug, size: 10, speed: 50, points: 1, color: "#fff", health: 1, unlockWave: 1 }
`,
			wantErr:     true,
			errContains: "ladybug",
		},
		{
			name: "bad color",
			yamlContent: `
categories:
  - { name: basic, size: 10, speed: 50, points: 1, color: "red", health: 1, unlockWave: 1 }
`,
			wantErr:     true,
			errContains: "invalid color",
		},
		{
			name: "unknown trait",
			yamlContent: `
categories:
  - { name: basic, size: 10, speed: 50, points: 1, color: "#fff", health: 1, unlockWave: 1, trait: { kind: fly } }
`,
			wantErr:     true,
			errContains: "unknown trait",
		},
		{
			name:        "zero spawn interval",
			yamlContent: "waves: { spawnInterval: 0 }",
			wantErr:     true,
			errContains: "spawnInterval",
		},
		{
			name:        "unknown sound wave",
			yamlContent: "sounds: { hit: { frequency: 400, duration: 0.1, wave: noise } }",
			wantErr:     true,
			errContains: "unknown wave",
		},
		{
			name:        "malformed yaml",
			yamlContent: "scoring: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseBugBlasterConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadBugBlasterConfig_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("waves: { baseCount: 1, perWave: 0 }\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadBugBlasterConfig(path)
	if err != nil {
		t.Fatalf("LoadBugBlasterConfig failed: %v", err)
	}
	if cfg.Waves.BaseCount != 1 || cfg.Waves.PerWave != 0 {
		t.Errorf("waves = %+v", cfg.Waves)
	}
}

func TestLookupHelpers(t *testing.T) {
	cfg := DefaultBugBlasterConfig()
	if cat, ok := cfg.Category("tank"); !ok || cat.Health != 3 {
		t.Errorf("Category(tank) = %+v, %v", cat, ok)
	}
	if _, ok := cfg.Category("ladybug"); ok {
		t.Error("Category(ladybug) should not be found")
	}
	if k, ok := cfg.PowerUpKind("shield"); !ok || k.Duration != 15 {
		t.Errorf("PowerUpKind(shield) = %+v, %v", k, ok)
	}
}
