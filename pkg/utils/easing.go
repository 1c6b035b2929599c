package utils

import "math"

// 缓动函数：输入进度 t ∈ [0, 1]，输出缓动后的进度 ∈ [0, 1]
// 转盘减速、图标散开和飞行、区域条平移都用它们控制速度曲线。

// EaseOutCubic 三次方缓出，f(t) = 1 - (1-t)³
// 开始快结束慢，用于转盘减速停下和图标飞向背包
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入，f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutQuad 二次方缓出，f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把进度限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
