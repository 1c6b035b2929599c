package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/utils"
)

// ErrMissingCollaborator 缺少必需的协作者
var ErrMissingCollaborator = errors.New("missing required collaborator")

// Collaborators 会话使用的外部协作者
// Animator 和 IconAnimator 必须提供，其余为 nil 时使用空实现。
type Collaborators struct {
	Animator        Animator
	IconAnimator    IconAnimator
	Renderer        Renderer
	ZoneView        ZoneView
	ZoneShift       ZoneShiftAnimator
	RewardPresenter RewardPresenter
	BombPresenter   BombPresenter
	ExitPresenter   ExitPresenter
	SpinButton      SpinButtonView
	SlotLayout      SlotLayout
}

// Option 会话选项
type Option func(*sessionOptions)

type sessionOptions struct {
	logger *zap.Logger
	rng    utils.Rand
	bus    *event.Bus
}

// WithLogger 指定日志器（默认使用全局日志器）
func WithLogger(logger *zap.Logger) Option {
	return func(o *sessionOptions) { o.logger = logger }
}

// WithRand 指定随机源（默认使用随机种子）
func WithRand(rng utils.Rand) Option {
	return func(o *sessionOptions) { o.rng = rng }
}

// WithBus 使用外部创建的事件总线（例如需要在会话创建前挂上记录器）
func WithBus(bus *event.Bus) Option {
	return func(o *sessionOptions) { o.bus = bus }
}

// Session 一局游戏的根对象
//
// 创建事件总线和全部管理器，并且只在这里完成一次订阅关系的装配。
// 领取奖励或放弃时会话重置回第 1 轮，背包清空。
type Session struct {
	id  string
	cfg *config.GameConfig
	bus *event.Bus

	cache     *RoundSliceCache
	zones     *ZoneManager
	state     *GameStateProvider
	wheel     *WheelManager
	inventory *InventoryManager
	rewards   *RewardManager
	bomb      *BombHandler
	spin      *SpinController
	exit      *ExitController

	deps      Collaborators
	resetting bool
	subs      []event.Subscription
	logger    *zap.Logger
}

// NewSession 创建会话
// 配置无效或缺少必需协作者时返回错误。
func NewSession(cfg *config.GameConfig, deps Collaborators, opts ...Option) (*Session, error) {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.OrGlobal(o.logger).Named("Session")

	if cfg == nil {
		return nil, fmt.Errorf("new session: %w", config.ErrInvalidConfig)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if err := deps.validate(); err != nil {
		logger.Error("[Session] 缺少协作者", zap.Error(err))
		return nil, fmt.Errorf("new session: %w", err)
	}

	if o.rng == nil {
		seed, err := utils.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("new session: %w", err)
		}
		o.rng = utils.NewRand(seed)
	}
	if o.bus == nil {
		o.bus = event.NewBus(o.logger)
	}

	s := &Session{
		id:     uuid.NewString(),
		cfg:    cfg,
		bus:    o.bus,
		deps:   deps,
		logger: logger,
	}

	s.cache = NewRoundSliceCache(o.logger)
	s.cache.Build(cfg.Rounds)

	s.zones = NewZoneManager(s.bus, cfg.Zone, cfg.ZoneVisuals, deps.ZoneView, deps.ZoneShift, o.logger)
	s.state = NewGameStateProvider(s.zones)
	s.wheel = NewWheelManager(s.bus, s.cache, cfg, deps.Renderer, deps.Animator, s.state, o.rng, o.logger)
	s.state.attachWheel(s.wheel)

	s.inventory = NewInventoryManager(cfg.Pools.Inventory, deps.SlotLayout, o.logger)
	s.rewards = NewRewardManager(s.bus, s.inventory, deps.IconAnimator, deps.RewardPresenter,
		cfg.Icons.IconCount, cfg.Pools.FlyingIcon, o.logger)
	s.bomb = NewBombHandler(s.bus, deps.BombPresenter, o.logger)
	s.spin = NewSpinController(s.bus, deps.SpinButton, o.logger)
	s.exit = NewExitController(s.bus, deps.ExitPresenter, s.state, o.logger)

	s.subs = append(s.subs,
		event.Subscribe(s.bus, func(event.CollectRewardsButtonClicked) { s.Reset() }),
		event.Subscribe(s.bus, func(event.GiveUpButtonClicked) { s.Reset() }),
	)

	s.logger.Info("[Session] 会话已创建",
		zap.String("id", s.id), zap.Int("rounds", s.cache.Len()))
	return s, nil
}

func (c Collaborators) validate() error {
	var errs []error
	if c.Animator == nil {
		errs = append(errs, fmt.Errorf("%w: Animator", ErrMissingCollaborator))
	}
	if c.IconAnimator == nil {
		errs = append(errs, fmt.Errorf("%w: IconAnimator", ErrMissingCollaborator))
	}
	return errors.Join(errs...)
}

// Reset 重置会话：停止所有动画，中止发放，清空背包，回到第 1 轮
// 重置过程中再次请求重置会被忽略。
func (s *Session) Reset() {
	if s.resetting {
		s.logger.Debug("[Session] 正在重置，忽略重复请求")
		return
	}
	s.resetting = true
	defer func() { s.resetting = false }()

	s.deps.Animator.StopAll()
	s.deps.IconAnimator.StopAll()

	s.rewards.Abort()
	s.inventory.Reset()
	s.bomb.Reset()
	s.exit.Reset()
	s.zones.Reset()
	s.wheel.Reset()
	s.spin.Reset()

	s.id = uuid.NewString()
	s.logger.Info("[Session] 会话已重置", zap.String("id", s.id))
	event.Publish(s.bus, event.SessionReset{SessionID: s.id})
}

// Close 退订所有事件并清空总线
func (s *Session) Close() {
	event.UnsubscribeAll(s.bus, s.subs)
	s.subs = nil
	s.exit.Close()
	s.spin.Close()
	s.bomb.Close()
	s.rewards.Close()
	s.wheel.Close()
	s.zones.Close()
	s.bus.Reset()
}

// ID 会话ID，每次重置后更新
func (s *Session) ID() string { return s.id }

// Bus 会话的事件总线
func (s *Session) Bus() *event.Bus { return s.bus }

// Config 会话配置
func (s *Session) Config() *config.GameConfig { return s.cfg }

// Cache 轮次格子缓存
func (s *Session) Cache() *RoundSliceCache { return s.cache }

// Zones 区域管理器
func (s *Session) Zones() *ZoneManager { return s.zones }

// Wheel 转盘管理器
func (s *Session) Wheel() *WheelManager { return s.wheel }

// Inventory 背包
func (s *Session) Inventory() *InventoryManager { return s.inventory }

// Rewards 奖励发放流程
func (s *Session) Rewards() *RewardManager { return s.rewards }

// Bomb 炸弹处理器
func (s *Session) Bomb() *BombHandler { return s.bomb }

// Spin 转动按钮控制器
func (s *Session) Spin() *SpinController { return s.spin }

// Exit 退出控制器
func (s *Session) Exit() *ExitController { return s.exit }

// State 会话状态查询
func (s *Session) State() *GameStateProvider { return s.state }
