package game

import (
	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/systems"
	"github.com/decker502/wheel/pkg/types"
	"github.com/decker502/wheel/pkg/utils"
)

// zoneStatus 转盘档位重置时需要的区域状态
type zoneStatus interface {
	IsSafeZone() bool
	IsSuperZone() bool
}

// WheelManager 驱动转盘：档位切换、加载本轮格子、发起转动
//
// 事件：
//   - RoundAdvanced：不在安全/超级区域时回到青铜档位，然后加载本轮格子
//   - SafeZoneUpdated / SuperZoneUpdated：切换到白银 / 黄金档位
//   - WheelSpinStartRequested：未在转动时发起转动
//   - ReviveButtonClicked：转盘复位
type WheelManager struct {
	bus      *event.Bus
	cache    *RoundSliceCache
	cfg      *config.GameConfig
	renderer Renderer
	animator Animator
	zones    zoneStatus
	rng      utils.Rand

	params   systems.SpinParams
	tier     types.WheelTier
	strategy systems.WheelStrategy
	slices   []*types.RewardSlice

	spinning   bool
	generation uint64
	last       systems.SpinOutcome

	subs   []event.Subscription
	logger *zap.Logger
}

// NewWheelManager 创建转盘管理器，初始为青铜档位并加载第 1 轮
func NewWheelManager(bus *event.Bus, cache *RoundSliceCache, cfg *config.GameConfig, renderer Renderer, animator Animator, zones zoneStatus, rng utils.Rand, logger *zap.Logger) *WheelManager {
	if renderer == nil {
		renderer = nopRenderer{}
	}

	wm := &WheelManager{
		bus:      bus,
		cache:    cache,
		cfg:      cfg,
		renderer: renderer,
		animator: animator,
		zones:    zones,
		rng:      rng,
		params: systems.SpinParams{
			SpinRotations: cfg.Spin.SpinRotations,
			MinDuration:   cfg.Spin.MinDuration,
			MaxDuration:   cfg.Spin.MaxDuration,
		},
		logger: logging.OrGlobal(logger).Named("WheelManager"),
	}

	wm.applyTier(types.TierBronze)
	wm.LoadRoundSlices(1)

	wm.subs = append(wm.subs,
		event.Subscribe(bus, wm.onRoundAdvanced),
		event.Subscribe(bus, func(event.SafeZoneUpdated) { wm.SetTier(types.TierSilver) }),
		event.Subscribe(bus, func(event.SuperZoneUpdated) { wm.SetTier(types.TierGold) }),
		event.Subscribe(bus, func(event.WheelSpinStartRequested) { wm.Spin() }),
		event.Subscribe(bus, func(event.ReviveButtonClicked) { wm.ResetWheel() }),
	)

	return wm
}

func (wm *WheelManager) onRoundAdvanced(e event.RoundAdvanced) {
	if !wm.zones.IsSafeZone() && !wm.zones.IsSuperZone() {
		wm.SetTier(types.TierBronze)
	}
	wm.LoadRoundSlices(e.Round)
}

// SetTier 切换档位，档位未变化时不做任何事
func (wm *WheelManager) SetTier(tier types.WheelTier) {
	if tier == wm.tier && wm.strategy != nil {
		return
	}
	wm.applyTier(tier)
}

func (wm *WheelManager) applyTier(tier types.WheelTier) {
	wm.tier = tier
	wm.strategy = systems.NewWheelStrategy(tier)

	visuals, ok := wm.cfg.WheelVisualsFor(tier)
	if !ok {
		wm.logger.Warn("[WheelManager] 档位缺少外观配置", zap.Stringer("tier", tier))
	}
	wm.renderer.UpdateWheelView(tier, visuals)

	wm.logger.Info("[WheelManager] 切换转盘档位", zap.Stringer("tier", tier))
}

// LoadRoundSlices 加载指定轮次的格子
// 没有可用数据时保留上一轮的格子。
func (wm *WheelManager) LoadRoundSlices(round int) {
	slices := wm.cache.Slices(round)
	if len(slices) == 0 {
		wm.logger.Error("[WheelManager] 无法加载奖励格子，保留当前转盘", zap.Int("round", round))
		return
	}

	wm.slices = slices
	wm.renderer.DisplaySlices(slices)
}

// Spin 发起一次转动
// 已在转动或结算失败时返回 false。
func (wm *WheelManager) Spin() bool {
	if wm.spinning {
		wm.logger.Debug("[WheelManager] 转盘正在转动，忽略请求")
		return false
	}

	outcome, err := wm.strategy.Resolve(wm.slices, wm.params, wm.rng)
	if err != nil {
		wm.logger.Error("[WheelManager] 转动结算失败", zap.Stringer("tier", wm.tier), zap.Error(err))
		return false
	}

	wm.spinning = true
	wm.generation++
	generation := wm.generation
	wm.last = outcome

	wm.logger.Debug("[WheelManager] 开始转动",
		zap.String("slice", outcome.Slice.ID),
		zap.Int("index", outcome.CorrectedIndex),
		zap.Float64("angle", outcome.TargetAngle),
		zap.Float64("duration", outcome.Duration))

	event.Publish(wm.bus, event.WheelSpinStarted{Tier: wm.tier})
	wm.animator.AnimateSpin(outcome.Duration, outcome.TargetAngle, func() {
		wm.onSpinComplete(generation, outcome)
	})
	return true
}

func (wm *WheelManager) onSpinComplete(generation uint64, outcome systems.SpinOutcome) {
	if !wm.spinning || generation != wm.generation {
		wm.logger.Debug("[WheelManager] 忽略过期的转动回调")
		return
	}

	wm.spinning = false
	wm.renderer.HighlightIndicator()
	event.Publish(wm.bus, event.WheelSpinStopped{Result: outcome.Result()})
}

// ResetWheel 转盘复位，进行中的转动作废
func (wm *WheelManager) ResetWheel() {
	wm.animator.ResetWheel()
	wm.spinning = false
	wm.generation++
}

// Reset 回到青铜档位和第 1 轮
func (wm *WheelManager) Reset() {
	wm.ResetWheel()
	wm.applyTier(types.TierBronze)
	wm.LoadRoundSlices(1)
}

// Close 退订事件
func (wm *WheelManager) Close() {
	event.UnsubscribeAll(wm.bus, wm.subs)
	wm.subs = nil
}

// Tier 当前档位
func (wm *WheelManager) Tier() types.WheelTier {
	return wm.tier
}

// Strategy 当前档位的转动策略
func (wm *WheelManager) Strategy() systems.WheelStrategy {
	return wm.strategy
}

// Slices 当前转盘上的格子
func (wm *WheelManager) Slices() []*types.RewardSlice {
	return wm.slices
}

// IsSpinning 是否正在转动
func (wm *WheelManager) IsSpinning() bool {
	return wm.spinning
}

// LastOutcome 最近一次转动的结算结果
func (wm *WheelManager) LastOutcome() systems.SpinOutcome {
	return wm.last
}
