package games

import (
	"strings"
	"testing"

	"github.com/decker502/arcade/pkg/engine"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/games/bugblaster"
	"github.com/decker502/arcade/pkg/games/machine"
)

func TestLoadConfigsFromDisk(t *testing.T) {
	cfgs, err := LoadConfigs("../../data")
	if err != nil {
		t.Fatalf("LoadConfigs failed: %v", err)
	}
	if cfgs.BugBlaster == nil || cfgs.Machine == nil {
		t.Fatal("expected both configs")
	}
	if len(cfgs.BugBlaster.Categories) == 0 {
		t.Error("bug blaster config has no categories")
	}
}

func TestLoadConfigsMissingDir(t *testing.T) {
	if _, err := LoadConfigs(t.TempDir()); err == nil {
		t.Fatal("expected error for a directory without configs")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		id    string
		found bool
	}{
		{bugblaster.ID, true},
		{machine.ID, true},
		{"pong", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if _, ok := Lookup(tt.id); ok != tt.found {
				t.Errorf("Lookup(%q) = %v, want %v", tt.id, ok, tt.found)
			}
		})
	}
}

func TestNewEveryEntry(t *testing.T) {
	cfgs := DefaultConfigs()
	for _, entry := range Entries {
		t.Run(entry.ID, func(t *testing.T) {
			inst, err := New(entry.ID, cfgs, engine.Host{Store: game.NewMemoryStore()})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if inst.Rules.Name() != entry.ID {
				t.Errorf("rules name = %q, want %q", inst.Rules.Name(), entry.ID)
			}
			if inst.Engine.State() != game.StateIdle {
				t.Errorf("state = %v, want idle", inst.Engine.State())
			}
			if inst.Engine.Status() != "Ready" {
				t.Errorf("status = %q, want Ready", inst.Engine.Status())
			}
		})
	}
}

func TestNewUnknownGame(t *testing.T) {
	if _, err := New("pong", DefaultConfigs(), engine.Host{}); err == nil {
		t.Fatal("expected error for unknown game")
	}
}

// TestSummarize 菜单摘要读取最高分与可继续的快照
func TestSummarize(t *testing.T) {
	store := game.NewMemoryStore()

	if s := Summarize(store, machine.ID); s.Best != 0 || s.CanContinue || len(s.Achievements) != 0 {
		t.Fatalf("empty store summary = %+v", s)
	}

	inst, err := New(machine.ID, DefaultConfigs(), engine.Host{Store: store})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e := inst.Engine
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		e.QueuePointer(10, 10)
		e.Tick(1.0 / 60)
	}
	if !e.SaveSnapshot() {
		t.Fatal("SaveSnapshot failed")
	}
	if s := Summarize(store, machine.ID); !s.CanContinue {
		t.Error("expected a snapshot after SaveSnapshot")
	}

	e.QueueKey(machine.KeyStopMachine)
	e.Tick(1.0 / 60)
	if e.State() != game.StateEnded {
		t.Fatalf("state = %v, want ended", e.State())
	}

	s := Summarize(store, machine.ID)
	if s.Best != 3 {
		t.Errorf("best = %d, want 3", s.Best)
	}
	if s.CanContinue {
		t.Error("snapshot should be cleared when the session ends")
	}
	if !strings.Contains(ShareText(inst), "I scored 3 in Useless Machine") {
		t.Errorf("share text = %q", ShareText(inst))
	}
}

func TestSummarizeWithoutStore(t *testing.T) {
	if s := Summarize(nil, bugblaster.ID); s.Best != 0 || s.CanContinue {
		t.Errorf("summary = %+v, want zero", s)
	}
}
