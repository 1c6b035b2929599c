package app

import (
	"github.com/decker502/wheel/pkg/components"
	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/types"
)

// rewardPopupDelay 奖励弹窗出现到图标开始散开的时间（秒）
const rewardPopupDelay = 0.35

// sessionView 会话的屏幕状态
//
// 实现 game 包中除动画以外的所有协作者接口，只记录要画什么，
// 真正的绘制在 Draw 中完成。
type sessionView struct {
	slices    []*types.RewardSlice
	tier      types.WheelTier
	visuals   config.WheelVisuals
	highlight float64 // 指示器高亮剩余时间（秒）

	round      int
	zone       types.ZoneType
	background string
	nextSafe   int
	nextSuper  int
	firstShown int
	window     []components.ZoneCounterState

	reward        *types.RewardSlice
	rewardPending func(types.Point)
	rewardTimer   float64

	bomb        *types.RewardSlice
	exitOpen    bool
	spinEnabled bool
}

func newSessionView() *sessionView {
	return &sessionView{round: 1, spinEnabled: true}
}

// ========== Renderer ==========

func (v *sessionView) DisplaySlices(slices []*types.RewardSlice) {
	v.slices = slices
}

func (v *sessionView) UpdateWheelView(tier types.WheelTier, visuals config.WheelVisuals) {
	v.tier = tier
	v.visuals = visuals
}

func (v *sessionView) HighlightIndicator() {
	v.highlight = 0.6
}

// ========== ZoneView ==========

func (v *sessionView) UpdateZone(round int, zone types.ZoneType, background string) {
	v.round = round
	v.zone = zone
	v.background = background
}

func (v *sessionView) UpdateProgress(nextSafe, nextSuper int) {
	v.nextSafe = nextSafe
	v.nextSuper = nextSuper
}

func (v *sessionView) UpdateWindow(firstShown int, slots []components.ZoneCounterState) {
	v.firstShown = firstShown
	v.window = slots
}

// ========== RewardPresenter ==========

// ShowReward 显示奖励弹窗，弹窗停留 rewardPopupDelay 秒后通知图标从弹窗位置出发
func (v *sessionView) ShowReward(slice *types.RewardSlice, onShown func(from types.Point)) {
	v.reward = slice
	v.rewardPending = onShown
	v.rewardTimer = rewardPopupDelay
}

func (v *sessionView) HideReward() {
	v.reward = nil
	v.rewardPending = nil
	v.rewardTimer = 0
}

// ========== BombPresenter / ExitPresenter / SpinButtonView ==========

func (v *sessionView) ShowBomb(slice *types.RewardSlice) { v.bomb = slice }
func (v *sessionView) HideBomb()                         { v.bomb = nil }

func (v *sessionView) ShowExitPopup() { v.exitOpen = true }
func (v *sessionView) HideExitPopup() { v.exitOpen = false }

func (v *sessionView) SetSpinEnabled(enabled bool) { v.spinEnabled = enabled }

// Update 推进弹窗计时
func (v *sessionView) Update(dt float64) {
	if v.highlight > 0 {
		v.highlight = max(0, v.highlight-dt)
	}

	if v.rewardPending == nil {
		return
	}
	v.rewardTimer -= dt
	if v.rewardTimer > 0 {
		return
	}
	// 回调可能同步结束整个发放并再次调用 ShowReward，先清空再调用
	onShown := v.rewardPending
	v.rewardPending = nil
	onShown(types.Point{X: config.PopupIconX, Y: config.PopupIconY})
}

// reset 清除所有弹窗
func (v *sessionView) reset() {
	v.HideReward()
	v.bomb = nil
	v.exitOpen = false
	v.highlight = 0
}
