// Package vmath 提供 2D 向量与简单运动学工具
//
// 所有时间量以秒为单位，速度单位为 像素/秒。
// 逐帧系数（阻尼、衰减）按 60 FPS 的参考帧率换算，保证不同帧率下表现一致。
package vmath

import "math"

// ReferenceFPS 逐帧系数的参考帧率
const ReferenceFPS = 60.0

// Vec2 二维向量（值类型）
type Vec2 struct {
	X, Y float64
}

// V 构造向量的简写
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(u Vec2) Vec2        { return Vec2{v.X + u.X, v.Y + u.Y} }
func (v Vec2) Sub(u Vec2) Vec2        { return Vec2{v.X - u.X, v.Y - u.Y} }
func (v Vec2) Scale(s float64) Vec2   { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64           { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(u Vec2) float64    { return math.Hypot(v.X-u.X, v.Y-u.Y) }
func (v Vec2) IsZero() bool           { return v.X == 0 && v.Y == 0 }
func (v Vec2) Dot(u Vec2) float64     { return v.X*u.X + v.Y*u.Y }
func (v Vec2) Within(u Vec2, r float64) bool {
	dx, dy := v.X-u.X, v.Y-u.Y
	return dx*dx+dy*dy < r*r
}

// Norm 返回单位向量，零向量返回零向量
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Dist 计算两点距离
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
