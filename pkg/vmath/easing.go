package vmath

import "math"

// 缓动函数：输入进度 t ∈ [0, 1]，输出缓动后的值 ∈ [0, 1]
// 参考：https://easings.net/

// EaseOutCubic 三次方缓出，开始快结束慢
// f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-Clamp(t, 0, 1), 3)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
