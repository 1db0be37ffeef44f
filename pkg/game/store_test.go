package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// createTestGdataStore 创建用于测试的 gdata 存储，HOME 指向临时目录
func createTestGdataStore(t *testing.T, testName string) *GdataStore {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	appName := fmt.Sprintf("arcade_test_%s_%d", testName, time.Now().UnixNano())
	store, err := OpenGdataStore(appName)
	if err != nil {
		t.Skipf("Cannot create gdata store for testing: %v", err)
	}
	t.Cleanup(func() {
		if homeDir, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})
	return store
}

func testStoreContract(t *testing.T, store Store) {
	if store.Exists("bugblaster", "highScore") {
		t.Fatal("fresh store should be empty")
	}
	if _, err := store.Load("bugblaster", "highScore"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load on missing key: got %v, want ErrNotFound", err)
	}
	if err := store.Save("bugblaster", "highScore", []byte("120")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists("bugblaster", "highScore") {
		t.Error("Exists should be true after Save")
	}
	data, err := store.Load("bugblaster", "highScore")
	if err != nil || string(data) != "120" {
		t.Errorf("Load = %q, %v; want \"120\"", data, err)
	}
	if store.Exists("machine", "highScore") {
		t.Error("objects must not share properties")
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestMemoryStoreCopiesData(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte("abc")
	s.Save("o", "p", buf)
	buf[0] = 'x'
	got, _ := s.Load("o", "p")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}
}

func TestGdataStore(t *testing.T) {
	testStoreContract(t, createTestGdataStore(t, "contract"))
}
