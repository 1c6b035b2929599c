package game

import (
	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/logging"
)

// SpinController 转动按钮
// 点击后禁用，新一轮开始或复活后重新启用。
type SpinController struct {
	bus     *event.Bus
	view    SpinButtonView
	enabled bool
	started bool // 本次请求分发期间是否收到 WheelSpinStarted
	subs    []event.Subscription
	logger  *zap.Logger
}

// NewSpinController 创建转动按钮控制器，view 可为 nil
func NewSpinController(bus *event.Bus, view SpinButtonView, logger *zap.Logger) *SpinController {
	if view == nil {
		view = nopSpinButton{}
	}

	sc := &SpinController{
		bus:    bus,
		view:   view,
		logger: logging.OrGlobal(logger).Named("SpinController"),
	}
	sc.setEnabled(true)

	sc.subs = append(sc.subs,
		event.Subscribe(bus, func(event.RoundAdvanced) { sc.setEnabled(true) }),
		event.Subscribe(bus, func(event.ReviveButtonClicked) { sc.setEnabled(true) }),
		event.Subscribe(bus, func(event.WheelSpinStarted) { sc.started = true }),
	)
	return sc
}

// RequestSpin 点击转动按钮
// 转动没有开始（例如没有格子数据）时按钮恢复可用并返回 false。
// 动画可能同步完成，是否开始以 WheelSpinStarted 为准，而不是请求返回后转盘的状态。
func (sc *SpinController) RequestSpin() bool {
	if !sc.enabled {
		return false
	}

	sc.setEnabled(false)
	sc.started = false
	event.Publish(sc.bus, event.WheelSpinStartRequested{})

	if !sc.started {
		sc.logger.Warn("[SpinController] 转动请求未被执行")
		sc.setEnabled(true)
		return false
	}
	return true
}

// Enabled 按钮是否可用
func (sc *SpinController) Enabled() bool {
	return sc.enabled
}

// Reset 恢复可用
func (sc *SpinController) Reset() {
	sc.setEnabled(true)
}

// Close 退订事件
func (sc *SpinController) Close() {
	event.UnsubscribeAll(sc.bus, sc.subs)
	sc.subs = nil
}

func (sc *SpinController) setEnabled(enabled bool) {
	sc.enabled = enabled
	sc.view.SetSpinEnabled(enabled)
}

// ExitController 退出按钮和退出确认弹窗
// 只有在安全/超级区域且转盘静止时才能退出。
type ExitController struct {
	bus       *event.Bus
	presenter ExitPresenter
	state     *GameStateProvider
	open      bool
	subs      []event.Subscription
	logger    *zap.Logger
}

// NewExitController 创建退出控制器，presenter 可为 nil
func NewExitController(bus *event.Bus, presenter ExitPresenter, state *GameStateProvider, logger *zap.Logger) *ExitController {
	if presenter == nil {
		presenter = nopExitPresenter{}
	}

	ec := &ExitController{
		bus:       bus,
		presenter: presenter,
		state:     state,
		logger:    logging.OrGlobal(logger).Named("ExitController"),
	}
	ec.subs = append(ec.subs, event.Subscribe(bus, func(event.ExitButtonClicked) { ec.close() }))
	return ec
}

// CanExit 当前是否允许退出
func (ec *ExitController) CanExit() bool {
	return (ec.state.IsSafeZone() || ec.state.IsSuperZone()) && !ec.state.IsWheelSpinning()
}

// RequestExit 点击退出按钮，允许时打开确认弹窗
func (ec *ExitController) RequestExit() bool {
	if !ec.CanExit() {
		ec.logger.Debug("[ExitController] 当前不允许退出")
		return false
	}
	if !ec.open {
		ec.open = true
		ec.presenter.ShowExitPopup()
	}
	return true
}

// Collect 在确认弹窗中领取奖励
func (ec *ExitController) Collect() {
	if !ec.open {
		return
	}
	event.Publish(ec.bus, event.CollectRewardsButtonClicked{})
}

// GoBack 在确认弹窗中返回游戏
func (ec *ExitController) GoBack() {
	if !ec.open {
		return
	}
	event.Publish(ec.bus, event.ExitButtonClicked{})
}

// IsOpen 确认弹窗是否打开
func (ec *ExitController) IsOpen() bool {
	return ec.open
}

// Reset 关闭弹窗
func (ec *ExitController) Reset() {
	ec.close()
}

// Close 退订事件
func (ec *ExitController) Close() {
	event.UnsubscribeAll(ec.bus, ec.subs)
	ec.subs = nil
}

func (ec *ExitController) close() {
	if !ec.open {
		return
	}
	ec.open = false
	ec.presenter.HideExitPopup()
}
