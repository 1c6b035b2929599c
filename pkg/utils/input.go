// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置，触摸优先
func IsPointerJustPressed() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// Rect 屏幕上的矩形区域
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains 点是否在矩形内（含左上边界，不含右下边界）
func (r Rect) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.X && fx < r.X+r.Width && fy >= r.Y && fy < r.Y+r.Height
}

// InCircle 点是否在圆内（含边界）
func InCircle(x, y int, cx, cy, radius float64) bool {
	dx := float64(x) - cx
	dy := float64(y) - cy
	return dx*dx+dy*dy <= radius*radius
}
