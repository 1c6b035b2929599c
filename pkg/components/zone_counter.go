package components

import (
	"image/color"

	"github.com/decker502/wheel/pkg/types"
)

// ZoneCounter 区域计数器条上的一个槽位（对象池实体）
//
// 槽位绑定一个区域编号，显示状态（区域类型、是否当前、是否已通过、文字颜色）
// 每次窗口平移后由 ZoneManager 从头重新计算。
type ZoneCounter struct {
	Zone      int
	Type      types.ZoneType
	IsCurrent bool
	IsPassed  bool
	Color     color.RGBA
	active    bool
}

// Activate 实现 pool.Poolable
func (c *ZoneCounter) Activate() {
	c.active = true
}

// Deactivate 实现 pool.Poolable，清除绑定的区域
func (c *ZoneCounter) Deactivate() {
	c.active = false
	c.Zone = 0
	c.IsCurrent = false
	c.IsPassed = false
}

// Active 槽位是否在使用中
func (c *ZoneCounter) Active() bool {
	return c.active
}

// Setup 绑定区域编号和显示状态
func (c *ZoneCounter) Setup(zone int, zoneType types.ZoneType, isCurrent, isPassed bool, textColor color.RGBA) {
	c.Zone = zone
	c.Type = zoneType
	c.IsCurrent = isCurrent
	c.IsPassed = isPassed
	c.Color = textColor
}

// ZoneCounterState 计数器槽位的只读快照
type ZoneCounterState struct {
	Zone      int
	Type      types.ZoneType
	IsCurrent bool
	IsPassed  bool
	Color     color.RGBA
}

// State 返回当前显示状态的快照
func (c *ZoneCounter) State() ZoneCounterState {
	return ZoneCounterState{
		Zone:      c.Zone,
		Type:      c.Type,
		IsCurrent: c.IsCurrent,
		IsPassed:  c.IsPassed,
		Color:     c.Color,
	}
}
