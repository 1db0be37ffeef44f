package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	snapshotProperty = "session"
	// SnapshotVersion 快照格式版本，不一致时丢弃
	SnapshotVersion = 1
)

// SessionSnapshot 会话快照
// 只保存计分相关字段，实体与粒子不保存（继续游戏时从快照中的波次重新生成）
type SessionSnapshot struct {
	Version        int `msgpack:"v"`
	Score          int `msgpack:"score"`
	Wave           int `msgpack:"wave"`
	Lives          int `msgpack:"lives"`
	Combo          int `msgpack:"combo"`
	MaxCombo       int `msgpack:"maxCombo"`
	BossesDefeated int `msgpack:"bosses"`
}

// DefaultSnapshot 新会话对应的快照
func DefaultSnapshot(lives int) SessionSnapshot {
	return SessionSnapshot{Version: SnapshotVersion, Wave: 1, Lives: lives}
}

// Apply 把快照写回会话（不改变状态与最高分）
func (snap SessionSnapshot) Apply(s *Session) {
	s.Score = snap.Score
	s.Wave = snap.Wave
	s.Lives = snap.Lives
	s.Combo = snap.Combo
	s.MaxCombo = snap.MaxCombo
	s.BossesDefeated = snap.BossesDefeated
	s.ComboDeadline = 0
}

func (snap SessionSnapshot) validate() error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if snap.Wave < 1 || snap.Lives < 1 || snap.Combo < 0 || snap.MaxCombo < snap.Combo || snap.BossesDefeated < 0 {
		return fmt.Errorf("snapshot out of range: %+v", snap)
	}
	return nil
}

// SessionSerializer 会话快照的 msgpack 编解码与存取
type SessionSerializer struct {
	store  Store
	object string
	lives  int // 快照损坏时默认会话的生命数
}

// NewSessionSerializer 创建序列化器，store 可为 nil（所有操作变为空操作）
func NewSessionSerializer(store Store, object string, lives int) *SessionSerializer {
	return &SessionSerializer{store: store, object: object, lives: lives}
}

// Encode 编码快照
func (s *SessionSerializer) Encode(session *Session) ([]byte, error) {
	snap := SessionSnapshot{
		Version:        SnapshotVersion,
		Score:          session.Score,
		Wave:           session.Wave,
		Lives:          session.Lives,
		Combo:          session.Combo,
		MaxCombo:       session.MaxCombo,
		BossesDefeated: session.BossesDefeated,
	}
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	return data, nil
}

// Decode 解码快照
// 数据损坏或字段越界时返回默认快照和错误，不会 panic
func (s *SessionSerializer) Decode(data []byte) (SessionSnapshot, error) {
	var snap SessionSnapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return DefaultSnapshot(s.lives), fmt.Errorf("failed to decode session snapshot: %w", err)
	}
	if err := snap.validate(); err != nil {
		return DefaultSnapshot(s.lives), err
	}
	return snap, nil
}

// Save 保存会话快照
func (s *SessionSerializer) Save(session *Session) error {
	if s.store == nil {
		return nil
	}
	data, err := s.Encode(session)
	if err != nil {
		return err
	}
	return s.store.Save(s.object, snapshotProperty, data)
}

// Load 读取会话快照
// 不存在时返回 ErrNotFound；损坏时返回默认快照和错误
func (s *SessionSerializer) Load() (SessionSnapshot, error) {
	if s.store == nil {
		return DefaultSnapshot(s.lives), ErrNotFound
	}
	data, err := s.store.Load(s.object, snapshotProperty)
	if err != nil {
		return DefaultSnapshot(s.lives), err
	}
	// 空数据表示快照已被清除
	if len(data) == 0 {
		return DefaultSnapshot(s.lives), ErrNotFound
	}
	return s.Decode(data)
}

// HasSnapshot 是否存在可用的快照
func (s *SessionSerializer) HasSnapshot() bool {
	_, err := s.Load()
	return err == nil
}

// Clear 清除快照（写入空数据）
func (s *SessionSerializer) Clear() {
	if s.store == nil || !s.store.Exists(s.object, snapshotProperty) {
		return
	}
	if err := s.store.Save(s.object, snapshotProperty, nil); err != nil && !errors.Is(err, ErrNotFound) {
		log.Printf("[SessionSerializer] Warning: failed to clear snapshot: %v", err)
	}
}
