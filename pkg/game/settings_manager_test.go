package game

import (
	"testing"
)

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.LastGame != "" {
		t.Errorf("LastGame: got %q, want empty", settings.LastGame)
	}
}

// TestNewSettingsManagerNilStore 测试无存储时使用默认设置
func TestNewSettingsManagerNilStore(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings().SoundVolume != 0.8 {
		t.Errorf("expected default volume, got %v", sm.GetSettings().SoundVolume)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save with nil store should return nil, got %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load with nil store should return nil, got %v", err)
	}
}

// TestSettingsLoadSave 测试设置的保存和加载（gdata 存储）
func TestSettingsLoadSave(t *testing.T) {
	store := createTestGdataStore(t, "settings")

	sm1 := NewSettingsManager(store)
	sm1.SetSoundVolume(0.3)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	sm1.SetLastGame("machine")
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	sm2 := NewSettingsManager(store)
	got := sm2.GetSettings()
	if got.SoundVolume != 0.3 {
		t.Errorf("SoundVolume: got %v, want 0.3", got.SoundVolume)
	}
	if got.SoundEnabled {
		t.Error("SoundEnabled: got true, want false")
	}
	if !got.Fullscreen {
		t.Error("Fullscreen: got false, want true")
	}
	if got.LastGame != "machine" {
		t.Errorf("LastGame: got %q, want machine", got.LastGame)
	}
}

// TestSettingsCorruptData 测试损坏的数据回退到默认设置
func TestSettingsCorruptData(t *testing.T) {
	store := NewMemoryStore()
	store.Save(settingsObject, settingsProperty, []byte("soundVolume: [oops"))

	sm := NewSettingsManager(store)
	if sm.GetSettings().SoundVolume != 0.8 {
		t.Errorf("corrupt settings should fall back to defaults, got %v", sm.GetSettings().SoundVolume)
	}
}

// TestSettingsLoadClampsVolume 测试加载时对越界音量的限制
func TestSettingsLoadClampsVolume(t *testing.T) {
	store := NewMemoryStore()
	store.Save(settingsObject, settingsProperty, []byte("soundVolume: 4\n"))

	sm := NewSettingsManager(store)
	if sm.GetSettings().SoundVolume != 1 {
		t.Errorf("SoundVolume: got %v, want 1", sm.GetSettings().SoundVolume)
	}
	if !sm.GetSettings().SoundEnabled {
		t.Error("missing fields should keep their defaults")
	}
}

// TestToggleSound 测试音效开关切换
func TestToggleSound(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.ToggleSound() {
		t.Error("first toggle should disable sound")
	}
	if !sm.ToggleSound() {
		t.Error("second toggle should enable sound")
	}
}

// TestClampVolume 测试音量限制函数
func TestClampVolume(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-1.0, 0.0},
		{-0.1, 0.0},
		{0.0, 0.0},
		{0.5, 0.5},
		{1.0, 1.0},
		{1.1, 1.0},
		{100.0, 1.0},
	}

	for _, tt := range tests {
		if result := clampVolume(tt.input); result != tt.expected {
			t.Errorf("clampVolume(%v): got %v, want %v", tt.input, result, tt.expected)
		}
	}
}
