package components

// TimerComponent 通用计时器组件
// 用于处理需要时间延迟的行为（如动作冷却、想法气泡显示时间）
type TimerComponent struct {
	Name        string  // 计时器名称，如 "action_cooldown"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
}

// Advance 推进计时器，到期时置 IsReady
func (t *TimerComponent) Advance(dt float64) {
	if t.IsReady {
		return
	}
	t.CurrentTime += dt
	if t.CurrentTime >= t.TargetTime {
		t.IsReady = true
	}
}

// Restart 以新的目标时间重新开始计时
func (t *TimerComponent) Restart(target float64) {
	t.TargetTime = target
	t.CurrentTime = 0
	t.IsReady = target <= 0
}
