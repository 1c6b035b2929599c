package game

import (
	"math/rand/v2"
	"testing"

	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/components"
	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/types"
)

type rewardFixture struct {
	bus       *event.Bus
	inventory *InventoryManager
	icons     *fakeIconAnimator
	rewards   *RewardManager
	collected *[]event.RewardCollected
}

func newRewardFixture(t *testing.T, iconCount int) *rewardFixture {
	t.Helper()
	f := &rewardFixture{
		bus:       newTestBus(),
		inventory: NewInventoryManager(4, nil, zap.NewNop()),
		icons:     &fakeIconAnimator{},
	}
	f.rewards = NewRewardManager(f.bus, f.inventory, f.icons, nil, iconCount, 20, zap.NewNop())
	f.collected = capture[event.RewardCollected](f.bus)
	return f
}

func stopped(s *types.RewardSlice) event.WheelSpinStopped {
	return event.WheelSpinStopped{Result: types.SpinResult{Slice: s, TargetRotationDegrees: 2520}}
}

func TestDeliverNewRewardMaterializesDirectly(t *testing.T) {
	f := newRewardFixture(t, 10)

	event.Publish(f.bus, stopped(slice("gold", 100)))

	if len(f.icons.scattered) != 0 || len(f.icons.flights) != 0 {
		t.Error("首次获得的奖励不应生成飞行图标")
	}
	slot, ok := f.inventory.Get("gold")
	if !ok || slot.Count() != 100 {
		t.Fatalf("新槽位数量应为奖励数量 100，got %v", slot)
	}
	if len(*f.collected) != 1 {
		t.Errorf("RewardCollected 次数 = %d, want 1", len(*f.collected))
	}
	if f.rewards.State() != DeliveryIdle {
		t.Errorf("State = %v, want idle", f.rewards.State())
	}
}

// TestDeliverJoinsAllIcons 10 个图标以任意顺序到达，只在第 10 个到达后结算一次
func TestDeliverJoinsAllIcons(t *testing.T) {
	f := newRewardFixture(t, 10)
	gold := slice("gold", 100)
	f.inventory.AddOrUpdate(gold)

	event.Publish(f.bus, stopped(gold))

	if len(f.icons.scattered) != 10 || len(f.icons.flights) != 10 {
		t.Fatalf("应生成 10 个图标，scattered=%d flights=%d", len(f.icons.scattered), len(f.icons.flights))
	}
	if f.rewards.State() != DeliveryFlying || f.rewards.ActiveIcons() != 10 {
		t.Fatalf("State=%v ActiveIcons=%d", f.rewards.State(), f.rewards.ActiveIcons())
	}

	slot, _ := f.inventory.Get("gold")
	for _, flight := range f.icons.flights {
		if flight.to != slot.Anchor() {
			t.Fatalf("图标目标 = %+v, want 槽位锚点 %+v", flight.to, slot.Anchor())
		}
	}

	order := rand.New(rand.NewPCG(1, 2)).Perm(10)
	for i, idx := range order {
		f.icons.flights[idx].done()
		if i < 9 {
			if slot.Count() != 100 || len(*f.collected) != 0 {
				t.Fatalf("第 %d 个图标到达后不应结算", i+1)
			}
		}
	}

	if slot.Count() != 200 {
		t.Errorf("Count = %d, want 200", slot.Count())
	}
	if len(*f.collected) != 1 {
		t.Errorf("RewardCollected 次数 = %d, want 1", len(*f.collected))
	}

	// 重复回调不产生影响
	f.icons.flights[order[0]].done()
	if slot.Count() != 200 || len(*f.collected) != 1 {
		t.Error("重复的到达回调不应再次结算")
	}

	pool := f.rewards.IconPool()
	if pool.Outstanding() != 0 || f.rewards.ActiveIcons() != 0 {
		t.Errorf("图标应全部归还，outstanding=%d", pool.Outstanding())
	}
	for _, icon := range f.icons.scattered {
		if icon.Active() {
			t.Error("归还的图标应处于未激活状态")
		}
	}
}

func TestDeliverZeroIcons(t *testing.T) {
	f := newRewardFixture(t, 0)
	gold := slice("gold", 3)
	f.inventory.AddOrUpdate(gold)

	event.Publish(f.bus, stopped(gold))

	slot, _ := f.inventory.Get("gold")
	if slot.Count() != 6 || len(*f.collected) != 1 {
		t.Errorf("没有图标时应立即结算，count=%d collected=%d", slot.Count(), len(*f.collected))
	}
}

func TestDeliverSynchronousAnimator(t *testing.T) {
	bus := newTestBus()
	inventory := NewInventoryManager(1, nil, zap.NewNop())
	icons := &syncIconAnimator{}
	rm := NewRewardManager(bus, inventory, icons, nil, 10, 5, zap.NewNop())
	collected := capture[event.RewardCollected](bus)

	gold := slice("gold", 1)
	inventory.AddOrUpdate(gold)
	rm.Deliver(gold)

	if icons.flights != 10 || len(*collected) != 1 {
		t.Errorf("flights=%d collected=%d", icons.flights, len(*collected))
	}
	slot, _ := inventory.Get("gold")
	if slot.Count() != 2 {
		t.Errorf("Count = %d, want 2", slot.Count())
	}
}

func TestBombSkipsDelivery(t *testing.T) {
	f := newRewardFixture(t, 10)
	bombs := capture[event.BombTriggered](f.bus)

	event.Publish(f.bus, stopped(bomb()))

	if len(*bombs) != 1 || (*bombs)[0].Slice.ID != "bomb" {
		t.Errorf("BombTriggered = %+v", *bombs)
	}
	if f.inventory.Len() != 0 || len(*f.collected) != 0 {
		t.Error("炸弹不应进入背包")
	}
}

func TestDeliveriesAreSerialized(t *testing.T) {
	f := newRewardFixture(t, 2)
	gold := slice("gold", 10)
	f.inventory.AddOrUpdate(gold)

	f.rewards.Deliver(gold)
	f.rewards.Deliver(gold)
	f.rewards.Deliver(slice("gem", 1))

	if f.rewards.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", f.rewards.Pending())
	}
	if len(f.icons.flights) != 2 {
		t.Fatalf("同一时间只应有一次发放的图标在飞行，got %d", len(f.icons.flights))
	}

	slot, _ := f.inventory.Get("gold")

	// 第一次发放完成后自动开始第二次
	f.icons.flights[1].done()
	f.icons.flights[0].done()
	if slot.Count() != 20 || len(f.icons.flights) != 4 {
		t.Fatalf("count=%d flights=%d", slot.Count(), len(f.icons.flights))
	}

	f.icons.flights[2].done()
	f.icons.flights[3].done()
	if slot.Count() != 30 {
		t.Errorf("Count = %d, want 30", slot.Count())
	}

	// 第三次是新ID，直接完成
	if _, ok := f.inventory.Get("gem"); !ok {
		t.Error("队列中的新奖励应被发放")
	}
	if len(*f.collected) != 3 || f.rewards.Pending() != 0 || f.rewards.State() != DeliveryIdle {
		t.Errorf("collected=%d pending=%d state=%v", len(*f.collected), f.rewards.Pending(), f.rewards.State())
	}
}

func TestAbortIgnoresLateCallbacks(t *testing.T) {
	f := newRewardFixture(t, 3)
	gold := slice("gold", 10)
	f.inventory.AddOrUpdate(gold)

	f.rewards.Deliver(gold)
	f.rewards.Deliver(gold)
	f.icons.flights[0].done()

	f.rewards.Abort()
	if f.rewards.State() != DeliveryIdle || f.rewards.Pending() != 0 {
		t.Fatalf("Abort 后 state=%v pending=%d", f.rewards.State(), f.rewards.Pending())
	}
	if f.icons.stops != 1 {
		t.Error("Abort 应停止图标动画")
	}
	if f.rewards.IconPool().Outstanding() != 0 {
		t.Error("Abort 应归还所有图标")
	}

	f.icons.flights[1].done()
	f.icons.flights[2].done()

	slot, _ := f.inventory.Get("gold")
	if slot.Count() != 10 || len(*f.collected) != 0 {
		t.Errorf("中止后的回调不应结算，count=%d collected=%d", slot.Count(), len(*f.collected))
	}

	// 中止后可以正常发放
	f.rewards.Deliver(gold)
	for _, flight := range f.icons.flights[3:] {
		flight.done()
	}
	if slot.Count() != 20 || len(*f.collected) != 1 {
		t.Errorf("count=%d collected=%d", slot.Count(), len(*f.collected))
	}
}

// fakePresenter 记录弹窗，由测试决定何时就绪
type fakePresenter struct {
	shown  []*types.RewardSlice
	ready  []func(types.Point)
	hidden int
}

func (p *fakePresenter) ShowReward(s *types.RewardSlice, onShown func(types.Point)) {
	p.shown = append(p.shown, s)
	p.ready = append(p.ready, onShown)
}
func (p *fakePresenter) HideReward() { p.hidden++ }

func TestPresenterDrivesShowingStage(t *testing.T) {
	bus := newTestBus()
	inventory := NewInventoryManager(1, nil, zap.NewNop())
	icons := &fakeIconAnimator{}
	presenter := &fakePresenter{}
	rm := NewRewardManager(bus, inventory, icons, presenter, 1, 1, zap.NewNop())

	gold := slice("gold", 1)
	inventory.AddOrUpdate(gold)
	rm.Deliver(gold)

	if rm.State() != DeliveryShowing || len(icons.scattered) != 0 {
		t.Fatalf("弹窗就绪前应停在 showing，state=%v", rm.State())
	}

	from := types.Point{X: 300, Y: 320}
	presenter.ready[0](from)
	presenter.ready[0](from) // 重复就绪被忽略

	if len(icons.scattered) != 1 {
		t.Fatalf("scattered = %d, want 1", len(icons.scattered))
	}
	if icons.scattered[0].Position != from || icons.scattered[0].Icon != "ui_icon_gold" {
		t.Errorf("图标应从弹窗位置出发: %+v", icons.scattered[0])
	}

	icons.flights[0].done()
	if presenter.hidden != 1 {
		t.Errorf("结算后应隐藏弹窗，hidden=%d", presenter.hidden)
	}
}

// nilInventory 总是拒绝奖励
type nilInventory struct{}

func (nilInventory) AddOrUpdate(*types.RewardSlice) (*components.InventorySlot, bool) {
	return nil, false
}

func TestDeliverAbandonedWhenInventoryRejects(t *testing.T) {
	bus := newTestBus()
	rm := NewRewardManager(bus, nilInventory{}, &fakeIconAnimator{}, nil, 10, 1, zap.NewNop())
	collected := capture[event.RewardCollected](bus)

	rm.Deliver(slice("gold", 1))
	if rm.State() != DeliveryIdle || len(*collected) != 0 {
		t.Errorf("背包拒绝时应放弃发放，state=%v collected=%d", rm.State(), len(*collected))
	}
}
