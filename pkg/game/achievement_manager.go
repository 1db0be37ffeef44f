package game

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"gopkg.in/yaml.v3"
)

const achievementsProperty = "achievements"

// AchievementManager 成就管理器
// 已解锁的成就以 YAML 文档保存在存储中（id -> 是否解锁）
type AchievementManager struct {
	store    Store // 可为 nil（降级模式，仅内存）
	object   string
	unlocked map[string]bool
}

// NewAchievementManager 创建成就管理器并加载已解锁的成就
// 加载失败不是致命错误，从空白状态开始
func NewAchievementManager(store Store, object string) *AchievementManager {
	m := &AchievementManager{
		store:    store,
		object:   object,
		unlocked: make(map[string]bool),
	}
	if err := m.Load(); err != nil {
		log.Printf("[AchievementManager] Warning: %v (starting empty)", err)
	}
	return m
}

// Load 从存储加载成就
func (m *AchievementManager) Load() error {
	m.unlocked = make(map[string]bool)
	if m.store == nil {
		return nil
	}
	data, err := m.store.Load(m.object, achievementsProperty)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load achievements: %w", err)
	}
	var loaded map[string]bool
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal achievements: %w", err)
	}
	for id, ok := range loaded {
		if ok {
			m.unlocked[id] = true
		}
	}
	return nil
}

// Unlock 解锁成就，返回是否是新解锁
func (m *AchievementManager) Unlock(id string) bool {
	if m.unlocked[id] {
		return false
	}
	m.unlocked[id] = true
	log.Printf("[AchievementManager] Achievement unlocked: %s", id)
	if err := m.save(); err != nil {
		log.Printf("[AchievementManager] Warning: %v", err)
	}
	return true
}

// IsUnlocked 成就是否已解锁
func (m *AchievementManager) IsUnlocked(id string) bool {
	return m.unlocked[id]
}

// Unlocked 已解锁的成就（按 ID 排序）
func (m *AchievementManager) Unlocked() []string {
	ids := make([]string, 0, len(m.unlocked))
	for id := range m.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *AchievementManager) save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.unlocked)
	if err != nil {
		return fmt.Errorf("failed to marshal achievements: %w", err)
	}
	if err := m.store.Save(m.object, achievementsProperty, data); err != nil {
		return fmt.Errorf("failed to save achievements: %w", err)
	}
	return nil
}
