package vmath

import "math"

// Bounds 矩形运动区域（左上角为原点）
type Bounds struct {
	W, H float64
}

// Integrate 按速度推进位置：pos += vel * dt
func Integrate(pos, vel Vec2, dt float64) Vec2 {
	return Vec2{pos.X + vel.X*dt, pos.Y + vel.Y*dt}
}

// FrameFactor 把逐帧系数换算为 dt 对应的系数
// 例如 0.92/帧 的阻尼在 dt=1/30 时等效 0.92^2
func FrameFactor(perFrame, dt float64) float64 {
	if perFrame <= 0 {
		return 0
	}
	return math.Pow(perFrame, dt*ReferenceFPS)
}

// Damp 对速度施加阻尼
func Damp(vel Vec2, perFrame, dt float64) Vec2 {
	return vel.Scale(FrameFactor(perFrame, dt))
}

// ApplyGravity 施加竖直方向加速度（像素/秒²）
func ApplyGravity(vel Vec2, gravity, dt float64) Vec2 {
	return Vec2{vel.X, vel.Y + gravity*dt}
}

// Reflect 在边界内做反弹
//
// radius 为物体半径，restitution 为反弹后保留的速度比例（0.8 表示损失 20%）。
// 越界的位置会被夹回边界内。返回是否发生了反弹。
func Reflect(pos, vel Vec2, radius float64, b Bounds, restitution float64) (Vec2, Vec2, bool) {
	bounced := false
	if pos.X <= radius || pos.X >= b.W-radius {
		vel.X = -vel.X * restitution
		pos.X = Clamp(pos.X, radius, b.W-radius)
		bounced = true
	}
	if pos.Y <= radius || pos.Y >= b.H-radius {
		vel.Y = -vel.Y * restitution
		pos.Y = Clamp(pos.Y, radius, b.H-radius)
		bounced = true
	}
	return pos, vel, bounced
}

// ClampInside 把位置夹在 [radius, size-radius] 内，不改变速度
func ClampInside(pos Vec2, radius float64, b Bounds) Vec2 {
	return Vec2{
		Clamp(pos.X, radius, b.W-radius),
		Clamp(pos.Y, radius, b.H-radius),
	}
}

// OutOfBounds 检查位置是否离开边界超过 margin
func OutOfBounds(pos Vec2, b Bounds, margin float64) bool {
	return pos.X < -margin || pos.X > b.W+margin ||
		pos.Y < -margin || pos.Y > b.H+margin
}
