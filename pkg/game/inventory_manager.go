package game

import (
	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/components"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/pool"
	"github.com/decker502/wheel/pkg/types"
)

// InventoryService 发放流程使用的背包接口
type InventoryService interface {
	// AddOrUpdate 按奖励ID取得槽位，首次出现时创建（wasNew=true）
	// 奖励无效时返回 nil
	AddOrUpdate(slice *types.RewardSlice) (slot *components.InventorySlot, wasNew bool)
}

// InventoryManager 会话背包
// 槽位以奖励ID为键，一个会话内只增不删，来自对象池。
type InventoryManager struct {
	slots  map[string]*components.InventorySlot
	order  []*components.InventorySlot
	pool   *pool.Pool[*components.InventorySlot]
	layout SlotLayout
	logger *zap.Logger
}

// NewInventoryManager 创建背包，warm 为槽位池预热数量
func NewInventoryManager(warm int, layout SlotLayout, logger *zap.Logger) *InventoryManager {
	if layout == nil {
		layout = DefaultSlotLayout()
	}
	logger = logging.OrGlobal(logger).Named("InventoryManager")

	return &InventoryManager{
		slots:  make(map[string]*components.InventorySlot),
		pool:   pool.New(func() *components.InventorySlot { return &components.InventorySlot{} }, warm, logger),
		layout: layout,
		logger: logger,
	}
}

// AddOrUpdate 实现 InventoryService
// 同一ID多次调用返回同一个槽位，且不修改数量。
func (im *InventoryManager) AddOrUpdate(slice *types.RewardSlice) (*components.InventorySlot, bool) {
	if slice == nil || slice.ID == "" {
		im.logger.Error("[InventoryManager] 无效的奖励数据")
		return nil, false
	}

	if slot, ok := im.slots[slice.ID]; ok {
		return slot, false
	}

	slot := im.pool.Get()
	slot.Setup(slice, im.layout.SlotAnchor(len(im.order)))
	im.slots[slice.ID] = slot
	im.order = append(im.order, slot)

	im.logger.Debug("[InventoryManager] 新增槽位", zap.String("id", slice.ID), zap.Int("count", slice.Count))
	return slot, true
}

// Get 按ID查找槽位
func (im *InventoryManager) Get(id string) (*components.InventorySlot, bool) {
	slot, ok := im.slots[id]
	return slot, ok
}

// Entries 按创建顺序返回所有槽位
func (im *InventoryManager) Entries() []*components.InventorySlot {
	entries := make([]*components.InventorySlot, len(im.order))
	copy(entries, im.order)
	return entries
}

// Len 槽位数量
func (im *InventoryManager) Len() int {
	return len(im.order)
}

// Reset 清空背包，槽位归还对象池
func (im *InventoryManager) Reset() {
	for _, slot := range im.order {
		im.pool.Put(slot)
	}
	im.order = im.order[:0]
	clear(im.slots)
}
