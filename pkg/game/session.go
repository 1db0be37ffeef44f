package game

import (
	"errors"
	"fmt"
)

// SessionState 会话状态
type SessionState int

const (
	// StateIdle 未开始（初始化或重置后）
	StateIdle SessionState = iota
	// StateRunning 运行中
	StateRunning
	// StatePaused 已暂停
	StatePaused
	// StateEnded 已结束（生命耗尽或主动结束）
	StateEnded
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition 状态转换不合法
var ErrInvalidTransition = errors.New("invalid session transition")

// Session 当前对局的状态
// 每个引擎实例只有一个 Session；HighScore 是唯一跨会话保留的字段
type Session struct {
	Score     int
	HighScore int
	Lives     int
	Wave      int
	Combo     int
	MaxCombo  int
	// ComboDeadline 连击失效的时刻（会话时钟，秒），Combo 为 0 时无意义
	ComboDeadline float64
	// BossesDefeated 本局击败的 Boss 数
	BossesDefeated int
	State          SessionState
}

// NewSession 创建处于 idle 状态的会话
func NewSession(lives int) *Session {
	s := &Session{}
	s.Reset(lives)
	return s
}

// Reset 清空本局数据，保留最高分
func (s *Session) Reset(lives int) {
	high := s.HighScore
	*s = Session{
		HighScore: high,
		Lives:     lives,
		Wave:      1,
		State:     StateIdle,
	}
}

// Start 开始新的一局（idle 或 ended → running）
func (s *Session) Start(lives int) error {
	if s.State != StateIdle && s.State != StateEnded {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.State)
	}
	s.Reset(lives)
	s.State = StateRunning
	return nil
}

// Pause running → paused
func (s *Session) Pause() error {
	if s.State != StateRunning {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, s.State)
	}
	s.State = StatePaused
	return nil
}

// Resume paused → running
func (s *Session) Resume() error {
	if s.State != StatePaused {
		return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, s.State)
	}
	s.State = StateRunning
	return nil
}

// End running/paused → ended
func (s *Session) End() error {
	if s.State != StateRunning && s.State != StatePaused {
		return fmt.Errorf("%w: end from %s", ErrInvalidTransition, s.State)
	}
	s.State = StateEnded
	return nil
}

// Running 是否处于运行状态
func (s *Session) Running() bool {
	return s.State == StateRunning
}

// LoseLife 扣除一条命，返回是否已经没有剩余生命
func (s *Session) LoseLife() bool {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives <= 0
}
