package game

import (
	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/components"
	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/pool"
	"github.com/decker502/wheel/pkg/types"
)

// Classify 计算轮次的区域类型，超级区域优先于安全区域
func Classify(round, safeInterval, superInterval int) types.ZoneType {
	if superInterval > 0 && round%superInterval == 0 {
		return types.ZoneSuper
	}
	if safeInterval > 0 && round%safeInterval == 0 {
		return types.ZoneSafe
	}
	return types.ZoneNormal
}

// NextMultiple 严格大于 round 的下一个 interval 倍数
func NextMultiple(round, interval int) int {
	if interval <= 0 {
		return 0
	}
	return (round/interval + 1) * interval
}

// ZoneManager 轮次推进、区域分类和计数器窗口
//
// 计数器窗口是对区域编号 [firstShown, firstShown+N) 的滑动视图，
// 槽位 i 总是显示区域 firstShown+i。每次推进平移一格：
// 轮次超过 maxActiveRounds 后回收最左侧槽位，然后在右侧追加新槽位。
type ZoneManager struct {
	bus     *event.Bus
	config  config.ZoneConfig
	visuals config.ZoneVisualsConfig
	view    ZoneView
	shift   ZoneShiftAnimator

	counters *pool.Pool[*components.ZoneCounter]
	active   []*components.ZoneCounter

	currentRound int
	currentZone  types.ZoneType
	firstShown   int
	centerIndex  int

	subs   []event.Subscription
	logger *zap.Logger
}

// NewZoneManager 创建区域管理器并初始化第 1 轮
// view 和 shift 可为 nil。
func NewZoneManager(bus *event.Bus, cfg config.ZoneConfig, visuals config.ZoneVisualsConfig, view ZoneView, shift ZoneShiftAnimator, logger *zap.Logger) *ZoneManager {
	if view == nil {
		view = nopZoneView{}
	}
	logger = logging.OrGlobal(logger).Named("ZoneManager")

	zm := &ZoneManager{
		bus:         bus,
		config:      cfg,
		visuals:     visuals,
		view:        view,
		shift:       shift,
		centerIndex: max(1, cfg.WindowSize/2),
		logger:      logger,
	}
	zm.counters = pool.New(func() *components.ZoneCounter { return &components.ZoneCounter{} }, cfg.MaxActiveRounds, logger)

	zm.initWindow()

	zm.subs = append(zm.subs, event.Subscribe(bus, func(event.RewardCollected) {
		zm.AdvanceRound()
	}))

	return zm
}

// initWindow 从第 1 轮开始重建窗口
func (zm *ZoneManager) initWindow() {
	zm.currentRound = 1
	zm.currentZone = zm.classify(zm.currentRound)
	zm.firstShown = max(1, zm.currentRound-zm.centerIndex)

	for i := 0; i < zm.config.MaxActiveRounds; i++ {
		zm.active = append(zm.active, zm.counters.Get())
	}
	zm.refreshWindow()

	zm.updateZoneView()
	zm.view.UpdateProgress(zm.NextSafeRound(), zm.NextSuperRound())
}

// AdvanceRound 推进到下一轮
// 顺序：更新区域 → 发布事件 → 平移窗口 → 更新进度显示
func (zm *ZoneManager) AdvanceRound() {
	zm.currentRound++
	zm.currentZone = zm.classify(zm.currentRound)
	zm.updateZoneView()

	zm.logger.Info("[ZoneManager] 进入新轮次",
		zap.Int("round", zm.currentRound), zap.Stringer("zone", zm.currentZone))

	event.Publish(zm.bus, event.RoundAdvanced{
		Round:     zm.currentRound,
		NextSafe:  zm.NextSafeRound(),
		NextSuper: zm.NextSuperRound(),
	})

	switch zm.currentZone {
	case types.ZoneSuper:
		event.Publish(zm.bus, event.SuperZoneUpdated{NextSuperRound: zm.NextSuperRound()})
	case types.ZoneSafe:
		event.Publish(zm.bus, event.SafeZoneUpdated{NextSafeRound: zm.NextSafeRound()})
	}

	zm.shiftWindow()
	zm.view.UpdateProgress(zm.NextSafeRound(), zm.NextSuperRound())
}

// shiftWindow 平移计数器窗口一格
// 窗口数据同步更新，平移动画只是视觉效果。
func (zm *ZoneManager) shiftWindow() {
	if zm.currentRound > zm.config.MaxActiveRounds && len(zm.active) > 0 {
		first := zm.active[0]
		zm.active = zm.active[1:]
		zm.counters.Put(first)
		zm.firstShown++
	}

	zm.active = append(zm.active, zm.counters.Get())
	zm.refreshWindow()

	if zm.shift != nil {
		zm.shift.PlayShift(nil)
	}
}

// refreshWindow 从头计算每个槽位的显示状态
func (zm *ZoneManager) refreshWindow() {
	for i, counter := range zm.active {
		zone := zm.firstShown + i
		zoneType := zm.classify(zone)
		isCurrent := zone == zm.currentRound
		isPassed := zone < zm.currentRound
		counter.Setup(zone, zoneType, isCurrent, isPassed, zm.visuals.TextColor(zoneType, isCurrent, isPassed))
	}
	zm.view.UpdateWindow(zm.firstShown, zm.VisibleWindow())
}

func (zm *ZoneManager) updateZoneView() {
	zm.view.UpdateZone(zm.currentRound, zm.currentZone, zm.visuals.Background(zm.currentZone))
}

func (zm *ZoneManager) classify(round int) types.ZoneType {
	return Classify(round, zm.config.SafeZoneInterval, zm.config.SuperZoneInterval)
}

// Reset 回收所有槽位并回到第 1 轮
func (zm *ZoneManager) Reset() {
	for _, counter := range zm.active {
		zm.counters.Put(counter)
	}
	zm.active = zm.active[:0]
	zm.initWindow()
	zm.logger.Debug("[ZoneManager] 已重置")
}

// Close 退订事件
func (zm *ZoneManager) Close() {
	event.UnsubscribeAll(zm.bus, zm.subs)
	zm.subs = nil
}

// CurrentRound 当前轮次（从 1 开始）
func (zm *ZoneManager) CurrentRound() int {
	return zm.currentRound
}

// CurrentZone 当前区域类型
func (zm *ZoneManager) CurrentZone() types.ZoneType {
	return zm.currentZone
}

// FirstShownZone 窗口最左侧槽位的区域编号
func (zm *ZoneManager) FirstShownZone() int {
	return zm.firstShown
}

// VisibleWindow 窗口中每个槽位的显示状态快照
func (zm *ZoneManager) VisibleWindow() []components.ZoneCounterState {
	states := make([]components.ZoneCounterState, len(zm.active))
	for i, counter := range zm.active {
		states[i] = counter.State()
	}
	return states
}

// NextSafeRound 基于当前轮次的下一个安全区域轮次
func (zm *ZoneManager) NextSafeRound() int {
	return NextMultiple(zm.currentRound, zm.config.SafeZoneInterval)
}

// NextSuperRound 基于当前轮次的下一个超级区域轮次
func (zm *ZoneManager) NextSuperRound() int {
	return NextMultiple(zm.currentRound, zm.config.SuperZoneInterval)
}

// Config 区域配置
func (zm *ZoneManager) Config() config.ZoneConfig {
	return zm.config
}
