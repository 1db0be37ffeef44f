package game

import "sort"

// EffectTimers 限时效果（道具）的剩余时间表
// 同一效果再次激活时刷新剩余时间而不是叠加
type EffectTimers struct {
	remaining map[string]float64
}

// NewEffectTimers 创建空的效果表
func NewEffectTimers() *EffectTimers {
	return &EffectTimers{remaining: make(map[string]float64)}
}

// Activate 激活效果，duration <= 0 时忽略
func (e *EffectTimers) Activate(name string, duration float64) {
	if duration <= 0 {
		return
	}
	e.remaining[name] = duration
}

// Active 效果是否生效中
func (e *EffectTimers) Active(name string) bool {
	_, ok := e.remaining[name]
	return ok
}

// Remaining 剩余秒数，未激活时为 0
func (e *EffectTimers) Remaining(name string) float64 {
	return e.remaining[name]
}

// Advance 推进时间，返回本次到期的效果（按名称排序）
func (e *EffectTimers) Advance(dt float64) []string {
	var expired []string
	for name, left := range e.remaining {
		left -= dt
		if left <= 0 {
			expired = append(expired, name)
			delete(e.remaining, name)
			continue
		}
		e.remaining[name] = left
	}
	sort.Strings(expired)
	return expired
}

// Names 所有生效中的效果（按名称排序）
func (e *EffectTimers) Names() []string {
	names := make([]string, 0, len(e.remaining))
	for name := range e.remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear 清除所有效果
func (e *EffectTimers) Clear() {
	e.remaining = make(map[string]float64)
}
