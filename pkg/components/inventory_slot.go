package components

import "github.com/decker502/wheel/pkg/types"

// InventorySlot 背包中的一个槽位（对象池实体）
// 以奖励ID为键，一个会话内只增不删
type InventorySlot struct {
	id     string
	icon   string
	count  int
	anchor types.Point
	active bool
}

// Activate 实现 pool.Poolable
func (s *InventorySlot) Activate() {
	s.active = true
}

// Deactivate 实现 pool.Poolable
func (s *InventorySlot) Deactivate() {
	s.active = false
	s.id = ""
	s.icon = ""
	s.count = 0
}

// Setup 首次收集时用奖励初始化槽位，数量即奖励数量
func (s *InventorySlot) Setup(slice *types.RewardSlice, anchor types.Point) {
	s.id = slice.ID
	s.icon = slice.Icon
	s.count = slice.Count
	s.anchor = anchor
}

// AddCount 增加数量，非正数忽略
func (s *InventorySlot) AddCount(amount int) {
	if amount <= 0 {
		return
	}
	s.count += amount
}

// ID 奖励ID
func (s *InventorySlot) ID() string { return s.id }

// Icon 图标资源ID
func (s *InventorySlot) Icon() string { return s.icon }

// Count 当前数量
func (s *InventorySlot) Count() int { return s.count }

// Anchor 图标在屏幕上的锚点（飞行图标的目标）
func (s *InventorySlot) Anchor() types.Point { return s.anchor }

// Active 槽位是否在使用中
func (s *InventorySlot) Active() bool { return s.active }
