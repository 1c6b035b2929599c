package game

import (
	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/components"
	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/pool"
	"github.com/decker502/wheel/pkg/types"
)

// DeliveryState 奖励发放流程的阶段
type DeliveryState int

const (
	DeliveryIdle       DeliveryState = iota // 空闲
	DeliveryShowing                         // 显示奖励弹窗
	DeliveryPreparing                       // 写入背包、生成飞行图标
	DeliveryFlying                          // 图标飞向背包槽位
	DeliveryCompleting                      // 结算
)

func (s DeliveryState) String() string {
	switch s {
	case DeliveryShowing:
		return "showing"
	case DeliveryPreparing:
		return "preparing"
	case DeliveryFlying:
		return "flying"
	case DeliveryCompleting:
		return "completing"
	default:
		return "idle"
	}
}

// delivery 一次进行中的发放
type delivery struct {
	slice   *types.RewardSlice
	slot    *components.InventorySlot
	wasNew  bool
	icons   []*components.FlyingIcon
	barrier *Countdown
}

// RewardManager 奖励发放流程
//
// Idle → Showing → Preparing → Flying → Completing → Idle
//
// 同一时间只有一次发放在进行，其余按到达顺序排队，
// 因此同一奖励ID的数量增加不会交错或重复。
// 首次获得的奖励直接出现在背包中，不生成飞行图标；
// 已有的奖励生成 iconCount 个图标，全部到达后才增加数量并发布 RewardCollected。
type RewardManager struct {
	bus       *event.Bus
	inventory InventoryService
	icons     IconAnimator
	presenter RewardPresenter
	iconPool  *pool.Pool[*components.FlyingIcon]
	iconCount int

	state   DeliveryState
	current *delivery
	queue   []*types.RewardSlice

	subs   []event.Subscription
	logger *zap.Logger
}

// NewRewardManager 创建发放流程
// presenter 可为 nil，此时跳过弹窗，图标从原点出发。
func NewRewardManager(bus *event.Bus, inventory InventoryService, icons IconAnimator, presenter RewardPresenter, iconCount, iconPoolSize int, logger *zap.Logger) *RewardManager {
	logger = logging.OrGlobal(logger).Named("RewardManager")

	rm := &RewardManager{
		bus:       bus,
		inventory: inventory,
		icons:     icons,
		presenter: presenter,
		iconPool:  pool.New(func() *components.FlyingIcon { return &components.FlyingIcon{} }, iconPoolSize, logger),
		iconCount: max(0, iconCount),
		logger:    logger,
	}

	rm.subs = append(rm.subs, event.Subscribe(bus, rm.onSpinStopped))
	return rm
}

func (rm *RewardManager) onSpinStopped(e event.WheelSpinStopped) {
	slice := e.Result.Slice
	if slice == nil {
		rm.logger.Warn("[RewardManager] 转动结果没有奖励格子")
		return
	}

	if slice.Bomb {
		rm.logger.Info("[RewardManager] 转到炸弹", zap.String("slice", slice.ID))
		event.Publish(rm.bus, event.BombTriggered{Slice: slice})
		return
	}

	rm.Deliver(slice)
}

// Deliver 发放奖励，有发放在进行时排队
func (rm *RewardManager) Deliver(slice *types.RewardSlice) {
	if slice == nil {
		return
	}
	if rm.state != DeliveryIdle {
		rm.queue = append(rm.queue, slice)
		rm.logger.Debug("[RewardManager] 发放进行中，加入队列",
			zap.String("slice", slice.ID), zap.Int("pending", len(rm.queue)))
		return
	}
	rm.start(slice)
}

func (rm *RewardManager) start(slice *types.RewardSlice) {
	d := &delivery{slice: slice}
	rm.current = d
	rm.state = DeliveryShowing

	if rm.presenter == nil {
		rm.prepare(d, types.Point{})
		return
	}

	rm.presenter.ShowReward(slice, func(from types.Point) {
		if rm.current != d || rm.state != DeliveryShowing {
			return
		}
		rm.prepare(d, from)
	})
}

func (rm *RewardManager) prepare(d *delivery, from types.Point) {
	rm.state = DeliveryPreparing

	slot, wasNew := rm.inventory.AddOrUpdate(d.slice)
	if slot == nil {
		rm.logger.Error("[RewardManager] 背包无法接收奖励，放弃本次发放", zap.String("slice", d.slice.ID))
		rm.finish(d)
		return
	}
	d.slot = slot
	d.wasNew = wasNew

	if wasNew {
		rm.complete(d)
		return
	}

	for i := 0; i < rm.iconCount; i++ {
		icon := rm.iconPool.Get()
		icon.Setup(d.slice.Icon, from)
		d.icons = append(d.icons, icon)
		rm.icons.PlayScatter(icon, from)
	}

	rm.fly(d)
}

func (rm *RewardManager) fly(d *delivery) {
	rm.state = DeliveryFlying

	icons := d.icons
	d.barrier = NewCountdown(len(icons), func() { rm.complete(d) })

	target := d.slot.Anchor()
	for _, icon := range icons {
		// 动画实现可能同步回调，屏障触发后不再继续派发
		if rm.current != d {
			return
		}
		rm.icons.PlayFlyTo(icon, target, func() {
			if rm.current != d {
				return
			}
			d.barrier.Signal()
		})
	}
}

func (rm *RewardManager) complete(d *delivery) {
	rm.state = DeliveryCompleting

	if !d.wasNew {
		d.slot.AddCount(d.slice.Count)
	}

	rm.logger.Info("[RewardManager] 奖励已收入背包",
		zap.String("slice", d.slice.ID), zap.Int("count", d.slot.Count()), zap.Bool("new", d.wasNew))

	rm.finish(d)
	event.Publish(rm.bus, event.RewardCollected{Slice: d.slice})

	rm.startNext()
}

// finish 回收图标并回到空闲状态
func (rm *RewardManager) finish(d *delivery) {
	rm.releaseIcons(d)
	if rm.presenter != nil {
		rm.presenter.HideReward()
	}
	rm.current = nil
	rm.state = DeliveryIdle
}

func (rm *RewardManager) startNext() {
	if rm.state != DeliveryIdle || len(rm.queue) == 0 {
		return
	}
	next := rm.queue[0]
	rm.queue = rm.queue[1:]
	rm.start(next)
}

func (rm *RewardManager) releaseIcons(d *delivery) {
	for _, icon := range d.icons {
		rm.iconPool.Put(icon)
	}
	d.icons = nil
}

// Abort 中止进行中的发放并清空队列
// 已派发的动画回调之后到达时被忽略，不发布 RewardCollected，也不增加数量。
func (rm *RewardManager) Abort() {
	if d := rm.current; d != nil {
		if d.barrier != nil {
			d.barrier.Cancel()
		}
		if len(d.icons) > 0 {
			rm.icons.StopAll()
		}
		rm.logger.Info("[RewardManager] 中止进行中的发放",
			zap.String("slice", d.slice.ID), zap.Stringer("state", rm.state))
		rm.finish(d)
	}
	rm.queue = nil
}

// Close 中止发放并退订事件
func (rm *RewardManager) Close() {
	rm.Abort()
	event.UnsubscribeAll(rm.bus, rm.subs)
	rm.subs = nil
}

// State 当前阶段
func (rm *RewardManager) State() DeliveryState {
	return rm.state
}

// Pending 排队中的发放数量
func (rm *RewardManager) Pending() int {
	return len(rm.queue)
}

// ActiveIcons 当前发放持有的飞行图标数量
func (rm *RewardManager) ActiveIcons() int {
	if rm.current == nil {
		return 0
	}
	return len(rm.current.icons)
}

// IconPool 飞行图标对象池
func (rm *RewardManager) IconPool() *pool.Pool[*components.FlyingIcon] {
	return rm.iconPool
}
