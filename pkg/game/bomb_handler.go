package game

import (
	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/types"
)

// BombHandler 炸弹事件处理：显示炸弹弹窗，等待玩家选择复活或放弃
type BombHandler struct {
	bus       *event.Bus
	presenter BombPresenter
	awaiting  bool
	last      *types.RewardSlice
	subs      []event.Subscription
	logger    *zap.Logger
}

// NewBombHandler 创建炸弹处理器，presenter 可为 nil
func NewBombHandler(bus *event.Bus, presenter BombPresenter, logger *zap.Logger) *BombHandler {
	if presenter == nil {
		presenter = nopBombPresenter{}
	}

	bh := &BombHandler{
		bus:       bus,
		presenter: presenter,
		logger:    logging.OrGlobal(logger).Named("BombHandler"),
	}

	bh.subs = append(bh.subs,
		event.Subscribe(bus, bh.onBombTriggered),
		event.Subscribe(bus, func(event.ReviveButtonClicked) { bh.dismiss("revive") }),
		event.Subscribe(bus, func(event.GiveUpButtonClicked) { bh.dismiss("give up") }),
	)
	return bh
}

func (bh *BombHandler) onBombTriggered(e event.BombTriggered) {
	bh.awaiting = true
	bh.last = e.Slice
	bh.presenter.ShowBomb(e.Slice)
	bh.logger.Info("[BombHandler] 显示炸弹弹窗")
}

func (bh *BombHandler) dismiss(reason string) {
	if !bh.awaiting {
		return
	}
	bh.awaiting = false
	bh.presenter.HideBomb()
	bh.logger.Info("[BombHandler] 关闭炸弹弹窗", zap.String("reason", reason))
}

// AwaitingDecision 是否正在等待复活/放弃
func (bh *BombHandler) AwaitingDecision() bool {
	return bh.awaiting
}

// LastBomb 最近一次转到的炸弹格子
func (bh *BombHandler) LastBomb() *types.RewardSlice {
	return bh.last
}

// Reset 关闭弹窗
func (bh *BombHandler) Reset() {
	if bh.awaiting {
		bh.presenter.HideBomb()
	}
	bh.awaiting = false
	bh.last = nil
}

// Close 退订事件
func (bh *BombHandler) Close() {
	event.UnsubscribeAll(bh.bus, bh.subs)
	bh.subs = nil
}
