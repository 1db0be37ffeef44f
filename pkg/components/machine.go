package components

import "image/color"

// MachineComponent "无用机器"的状态
type MachineComponent struct {
	Size     float64 // 边长（像素）
	On       bool    // 开关状态
	Mood     string
	Energy   float64 // 0-100
	Rotation float64 // 弧度
	Scale    float64 // 呼吸缩放
	Thought  string  // 当前想法，配合 "thought" 计时器显示
	Color    color.RGBA
	// LastAction 上次执行动作的时间（会话时钟，秒）
	LastAction float64
	// PointerNear 指针是否在逃跑半径内
	PointerNear bool
}
