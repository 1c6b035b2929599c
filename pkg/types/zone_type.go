// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// ZoneType 定义轮次所属的区域类型
type ZoneType int

const (
	// ZoneNormal 普通区域
	ZoneNormal ZoneType = iota
	// ZoneSafe 安全区域（每 safeInterval 轮出现一次）
	ZoneSafe
	// ZoneSuper 超级区域（每 superInterval 轮出现一次，优先级高于安全区域）
	ZoneSuper
)

// String 返回区域类型的字符串表示
func (z ZoneType) String() string {
	switch z {
	case ZoneSafe:
		return "Safe"
	case ZoneSuper:
		return "Super"
	default:
		return "Normal"
	}
}

// IsSpecial 安全区域和超级区域都属于特殊区域（允许退出）
func (z ZoneType) IsSpecial() bool {
	return z == ZoneSafe || z == ZoneSuper
}

// Point 屏幕坐标
type Point struct {
	X, Y float64
}
