package components

import "image/color"

// Particle 纯视觉粒子
// 粒子不是 ECS 实体：数量多、寿命短，由 ParticleSystem 以切片池管理，
// 计分与点击检测永远不会读取粒子。
type Particle struct {
	X, Y    float64
	VX, VY  float64    // 像素/秒
	Life    float64    // 1 → 0，到 0 时移除
	Decay   float64    // 每秒寿命衰减
	Size    float64    // 半径（像素）
	Color   color.RGBA // 绘制时按 Life 淡出
	Gravity float64    // 像素/秒²
	Drag    float64    // 每参考帧水平速度保留系数，1 表示无阻力
	// Splat 为地面污渍：无速度、无重力，绘制在其他粒子之下
	Splat bool
}
