package game

import (
	"github.com/decker502/wheel/pkg/components"
	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/types"
)

// 会话核心消费的外部协作者
//
// 核心只决定"发生什么"，渲染、动画播放和输入控件都通过这些接口注入。
// Animator 和 IconAnimator 是必需的，其余可省略（使用空实现）。
// 所有回调都必须在会话所在的逻辑线程上调用。

// Animator 转盘动画
type Animator interface {
	// AnimateSpin 用 duration 秒转到 targetAngle（度），结束后调用 onComplete
	AnimateSpin(duration, targetAngle float64, onComplete func())
	// ResetWheel 转盘回到初始角度
	ResetWheel()
	// StopAll 强制停止动画，未完成的回调不再触发
	StopAll()
}

// IconAnimator 飞行图标动画
type IconAnimator interface {
	// PlayScatter 图标从 from 散开
	PlayScatter(icon *components.FlyingIcon, from types.Point)
	// PlayFlyTo 图标飞向 to，到达后调用 onComplete（每个图标恰好一次）
	PlayFlyTo(icon *components.FlyingIcon, to types.Point, onComplete func())
	// StopAll 停止所有图标动画，未完成的回调不再触发
	StopAll()
}

// Renderer 转盘渲染
type Renderer interface {
	DisplaySlices(slices []*types.RewardSlice)
	UpdateWheelView(tier types.WheelTier, visuals config.WheelVisuals)
	HighlightIndicator()
}

// ZoneView 区域指示器、进度文字和计数器条
type ZoneView interface {
	UpdateZone(round int, zone types.ZoneType, background string)
	UpdateProgress(nextSafe, nextSuper int)
	UpdateWindow(firstShown int, slots []components.ZoneCounterState)
}

// ZoneShiftAnimator 计数器条平移动画
type ZoneShiftAnimator interface {
	PlayShift(onDone func())
}

// RewardPresenter 奖励弹窗
type RewardPresenter interface {
	// ShowReward 显示奖励，弹窗就绪后以图标位置调用 onShown
	ShowReward(slice *types.RewardSlice, onShown func(from types.Point))
	HideReward()
}

// BombPresenter 炸弹弹窗
type BombPresenter interface {
	ShowBomb(slice *types.RewardSlice)
	HideBomb()
}

// ExitPresenter 退出确认弹窗
type ExitPresenter interface {
	ShowExitPopup()
	HideExitPopup()
}

// SpinButtonView 转动按钮
type SpinButtonView interface {
	SetSpinEnabled(enabled bool)
}

// SlotLayout 背包槽位布局
type SlotLayout interface {
	// SlotAnchor 第 index 个槽位（按创建顺序，从 0 开始）的图标锚点
	SlotAnchor(index int) types.Point
}

// ========== 空实现 ==========

type nopRenderer struct{}

func (nopRenderer) DisplaySlices([]*types.RewardSlice)                   {}
func (nopRenderer) UpdateWheelView(types.WheelTier, config.WheelVisuals) {}
func (nopRenderer) HighlightIndicator()                                  {}

type nopZoneView struct{}

func (nopZoneView) UpdateZone(int, types.ZoneType, string)          {}
func (nopZoneView) UpdateProgress(int, int)                         {}
func (nopZoneView) UpdateWindow(int, []components.ZoneCounterState) {}

type nopBombPresenter struct{}

func (nopBombPresenter) ShowBomb(*types.RewardSlice) {}
func (nopBombPresenter) HideBomb()                   {}

type nopExitPresenter struct{}

func (nopExitPresenter) ShowExitPopup() {}
func (nopExitPresenter) HideExitPopup() {}

type nopSpinButton struct{}

func (nopSpinButton) SetSpinEnabled(bool) {}

// GridSlotLayout 按行列排布的背包布局
type GridSlotLayout struct {
	Origin     types.Point
	Columns    int
	CellWidth  float64
	CellHeight float64
}

// DefaultSlotLayout 桌面演示程序使用的背包布局
func DefaultSlotLayout() GridSlotLayout {
	return GridSlotLayout{
		Origin:     types.Point{X: config.InventoryOriginX, Y: config.InventoryOriginY},
		Columns:    config.InventoryColumns,
		CellWidth:  config.InventoryCellWidth,
		CellHeight: config.InventoryCellHeight,
	}
}

// SlotAnchor 实现 SlotLayout
func (g GridSlotLayout) SlotAnchor(index int) types.Point {
	columns := g.Columns
	if columns < 1 {
		columns = 1
	}
	return types.Point{
		X: g.Origin.X + float64(index%columns)*g.CellWidth,
		Y: g.Origin.Y + float64(index/columns)*g.CellHeight,
	}
}
