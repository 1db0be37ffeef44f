package game

import (
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestSessionSnapshotRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ser := NewSessionSerializer(store, "bugblaster", 3)

	s := NewSession(3)
	s.Start(3)
	s.Score, s.Wave, s.Lives, s.Combo, s.MaxCombo, s.BossesDefeated = 420, 7, 2, 3, 9, 1

	if err := ser.Save(s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !ser.HasSnapshot() {
		t.Fatal("HasSnapshot should be true after Save")
	}

	snap, err := ser.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	restored := NewSession(3)
	snap.Apply(restored)
	if restored.Score != 420 || restored.Wave != 7 || restored.Lives != 2 ||
		restored.Combo != 3 || restored.MaxCombo != 9 || restored.BossesDefeated != 1 {
		t.Errorf("restored session = %+v", restored)
	}
	if restored.State != StateIdle {
		t.Errorf("Apply must not change state, got %s", restored.State)
	}
}

func TestSessionSnapshotMalformed(t *testing.T) {
	ser := NewSessionSerializer(nil, "bugblaster", 3)

	wrongVersion, _ := msgpack.Marshal(&SessionSnapshot{Version: 99, Wave: 1, Lives: 3})
	badRange, _ := msgpack.Marshal(&SessionSnapshot{Version: SnapshotVersion, Wave: 0, Lives: 3})

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte{0xc1, 0xff, 0x00}},
		{"truncated", []byte{0x87}},
		{"wrong type", []byte("hello")},
		{"wrong version", wrongVersion},
		{"out of range", badRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := ser.Decode(tt.data)
			if err == nil {
				t.Fatal("expected an error")
			}
			if snap != DefaultSnapshot(3) {
				t.Errorf("got %+v, want default snapshot", snap)
			}
		})
	}
}

func TestSessionSnapshotClear(t *testing.T) {
	store := NewMemoryStore()
	ser := NewSessionSerializer(store, "bugblaster", 3)

	if _, err := ser.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load before Save: got %v, want ErrNotFound", err)
	}

	s := NewSession(3)
	s.Start(3)
	ser.Save(s)
	ser.Clear()

	if ser.HasSnapshot() {
		t.Error("snapshot should be gone after Clear")
	}
	if _, err := ser.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Clear: got %v, want ErrNotFound", err)
	}
}

func TestSessionSerializerWithoutStore(t *testing.T) {
	ser := NewSessionSerializer(nil, "machine", 1)
	if err := ser.Save(NewSession(1)); err != nil {
		t.Errorf("Save without store should be a no-op, got %v", err)
	}
	if ser.HasSnapshot() {
		t.Error("HasSnapshot without store should be false")
	}
	ser.Clear()
}
