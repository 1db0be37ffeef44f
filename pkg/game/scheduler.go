package game

import "sort"

// TaskID 延迟任务标识，0 表示无效
type TaskID uint64

type scheduledTask struct {
	id         TaskID
	due        float64 // 到期时刻（调度器时钟，秒）
	generation uint64
	fn         func()
}

// Scheduler 一次性延迟任务调度器
//
// 代替宿主定时器：时间只在 Advance 中推进（由引擎在每帧固定步骤调用），
// 因此暂停时任务不会触发。每个任务记录调度时的代数，
// 重置或销毁会推进代数，旧代数的任务被静默丢弃。
type Scheduler struct {
	now        float64
	generation uint64
	nextID     TaskID
	tasks      []*scheduledTask
	closed     bool
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After 在 delay 秒后执行 fn
// 在 Advance 执行任务期间调度的任务最早在下一次 Advance 中执行
func (s *Scheduler) After(delay float64, fn func()) TaskID {
	if s.closed || fn == nil {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.tasks = append(s.tasks, &scheduledTask{
		id:         s.nextID,
		due:        s.now + delay,
		generation: s.generation,
		fn:         fn,
	})
	return s.nextID
}

// Repeat 调度 count 次任务，第 i 次（从 0 开始）在 i*interval 秒后执行
func (s *Scheduler) Repeat(count int, interval float64, fn func(i int)) {
	for i := 0; i < count; i++ {
		step := i
		s.After(float64(i)*interval, func() { fn(step) })
	}
}

// Cancel 取消尚未执行的任务
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Advance 推进时钟并执行到期任务（按到期时间、调度顺序）
func (s *Scheduler) Advance(dt float64) {
	if s.closed {
		return
	}
	s.now += dt

	var due, pending []*scheduledTask
	for _, t := range s.tasks {
		if t.due <= s.now+1e-9 {
			due = append(due, t)
		} else {
			pending = append(pending, t)
		}
	}
	if len(due) == 0 {
		return
	}
	s.tasks = pending

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})

	for _, t := range due {
		// 前一个任务可能触发了重置或销毁
		if s.closed || t.generation != s.generation {
			return
		}
		t.fn()
	}
}

// Bump 推进代数并丢弃所有待执行任务（会话重置时调用）
func (s *Scheduler) Bump() {
	s.generation++
	s.tasks = nil
}

// Close 销毁调度器，之后的调度与推进都是空操作
func (s *Scheduler) Close() {
	s.Bump()
	s.closed = true
}

// Generation 当前代数
func (s *Scheduler) Generation() uint64 {
	return s.generation
}

// Pending 待执行任务数
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Now 调度器时钟（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}
