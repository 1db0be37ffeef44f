package components

import "image/color"

// BossComponent Boss 状态
// Phase 1 → 2 在生命值低于一半时发生（狂暴：移动更快、攻击更频繁）
type BossComponent struct {
	Size        float64
	Phase       int
	Angry       bool
	Color       color.RGBA
	MoveTimer   float64 // 距上次改变方向的时间（秒）
	AttackTimer float64 // 距上次攻击的时间（秒）
}
