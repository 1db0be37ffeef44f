package scenes

import "fmt"

// StatusLine 窗口底部的分数/状态栏，实现 engine.StatusSink
type StatusLine struct {
	score     int
	highScore int
	status    string
}

// SetScore 实现 engine.StatusSink
func (s *StatusLine) SetScore(score int) {
	s.score = score
}

// SetHighScore 实现 engine.StatusSink
func (s *StatusLine) SetHighScore(score int) {
	s.highScore = score
}

// SetStatus 实现 engine.StatusSink
func (s *StatusLine) SetStatus(text string) {
	s.status = text
}

// Status 最近一次状态文字
func (s *StatusLine) Status() string {
	return s.status
}

// String 状态栏左侧文字
func (s *StatusLine) String() string {
	return fmt.Sprintf("Score %d   Best %d   %s", s.score, s.highScore, s.status)
}
