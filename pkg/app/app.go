// Package app 提供转盘演示程序的 ebiten.Game 包装器
//
// App 持有一个游戏会话和驱动它的动画系统：会话核心只发布事件和调用协作者接口，
// 这里用 ECS 动画系统实现 Animator/IconAnimator，用 sessionView 记录屏幕状态。
// 桌面端通过 main.go 调用 NewApp()；无界面模式直接调用 Step()/AutoPlay()。
package app

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/ecs"
	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/game"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/systems"
	"github.com/decker502/wheel/pkg/utils"
)

// FrameTime 固定逻辑帧时长（秒）
const FrameTime = 1.0 / 60.0

// Config 定义应用启动配置
type Config struct {
	// Game 会话配置（必需）
	Game *config.GameConfig
	// Logger 日志器，为 nil 时使用全局日志器
	Logger *zap.Logger
	// Seed 随机种子，为 0 时使用随机种子
	Seed uint64
	// Headless 不创建音频上下文和字体，只推进逻辑
	Headless bool
	// Settings 设置管理器，为 nil 时使用仅内存的设置
	Settings *game.SettingsManager
	// Bus 外部创建的事件总线（例如已挂上事件记录器），可为 nil
	Bus *event.Bus
}

// App 是演示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	session *game.Session
	layout  game.GridSlotLayout

	entityManager *ecs.EntityManager
	wheelAnim     *systems.WheelAnimationSystem
	icons         *systems.FlyingIconSystem
	shift         *systems.ZoneShiftSystem
	view          *sessionView

	settings *game.SettingsManager
	audio    *AudioManager

	titleFace *text.GoTextFace
	labelFace *text.GoTextFace

	subs                     []event.Subscription
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	logger                   *zap.Logger
}

// NewApp 创建并初始化演示程序
func NewApp(cfg Config) (*App, error) {
	if cfg.Game == nil {
		return nil, errors.New("app: game config is required")
	}
	logger := logging.OrGlobal(cfg.Logger)

	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = utils.NewSeed(); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}

	settings := cfg.Settings
	if settings == nil {
		settings = game.NewSettingsManager(nil, logger)
	}

	// 图标散开使用独立的随机源，不影响转盘结果序列
	iconRand := utils.NewRand(seed + 1)

	em := ecs.NewEntityManager()
	a := &App{
		layout:        game.DefaultSlotLayout(),
		entityManager: em,
		wheelAnim:     systems.NewWheelAnimationSystem(em, cfg.Game.Animation, logger),
		icons:         systems.NewFlyingIconSystem(em, cfg.Game.Icons, iconRand, logger),
		shift:         systems.NewZoneShiftSystem(em, config.ZoneCellWidth+config.ZoneCellSpacing, cfg.Game.Animation.ShiftDuration),
		view:          newSessionView(),
		settings:      settings,
		logger:        logger.Named("App"),
	}

	opts := []game.Option{game.WithLogger(logger), game.WithRand(utils.NewRand(seed))}
	if cfg.Bus != nil {
		opts = append(opts, game.WithBus(cfg.Bus))
	}

	session, err := game.NewSession(cfg.Game, game.Collaborators{
		Animator:        a.wheelAnim,
		IconAnimator:    a.icons,
		Renderer:        a.view,
		ZoneView:        a.view,
		ZoneShift:       a.shift,
		RewardPresenter: a.view,
		BombPresenter:   a.view,
		ExitPresenter:   a.view,
		SpinButton:      a.view,
		SlotLayout:      a.layout,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.session = session

	settings.Attach(session.Bus())
	a.subs = append(a.subs, event.Subscribe(session.Bus(), func(event.SessionReset) { a.view.reset() }))

	if !cfg.Headless {
		a.audio = NewAudioManager(audio.NewContext(SampleRate), settings, logger)
		a.audio.Attach(session.Bus())
		a.audio.Preload()

		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("app: load font: %w", err)
		}
		a.titleFace = &text.GoTextFace{Source: source, Size: 28}
		a.labelFace = &text.GoTextFace{Source: source, Size: 14}
	}

	a.logger.Info("[App] 演示程序初始化完成",
		zap.String("session", session.ID()), zap.Uint64("seed", seed), zap.Bool("headless", cfg.Headless))
	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.handleInput()
	a.handlePointer()
	a.Step(FrameTime)
	return nil
}

// handleInput 键盘输入映射到会话操作
func (a *App) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.RequestSpin()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.Revive()
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		a.GiveUp()
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		a.session.Exit().RequestExit()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		a.session.Exit().Collect()
	case inpututil.IsKeyJustPressed(ebiten.KeyB), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		a.session.Exit().GoBack()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		a.settings.SetAutoSpin(!a.settings.GetSettings().AutoSpin)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		a.settings.SetSoundEnabled(!a.settings.GetSettings().SoundEnabled)
	}
}

// 弹窗按钮和退出按钮的点击区域
var (
	panelRect      = utils.Rect{X: config.WheelCenterX - panelWidth/2, Y: config.WheelCenterY - panelHeight/2, Width: panelWidth, Height: panelHeight}
	exitButtonRect = utils.Rect{X: 620, Y: 548, Width: 160, Height: 36}
)

// handlePointer 鼠标点击或触摸
// 弹窗打开时点击弹窗左半边确认（复活/收集），右半边取消（放弃/返回）；
// 否则点击转盘转动，点击退出按钮打开退出弹窗。
func (a *App) handlePointer() {
	pressed, x, y := utils.IsPointerJustPressed()
	if !pressed {
		return
	}
	a.Tap(x, y)
}

// Tap 处理屏幕坐标 (x, y) 处的一次点击
func (a *App) Tap(x, y int) {
	left := float64(x) < config.WheelCenterX

	switch {
	case a.session.Bomb().AwaitingDecision():
		if !panelRect.Contains(x, y) {
			return
		}
		if left {
			a.Revive()
		} else {
			a.GiveUp()
		}
	case a.session.Exit().IsOpen():
		if !panelRect.Contains(x, y) {
			return
		}
		if left {
			a.session.Exit().Collect()
		} else {
			a.session.Exit().GoBack()
		}
	case exitButtonRect.Contains(x, y):
		a.session.Exit().RequestExit()
	case utils.InCircle(x, y, config.WheelCenterX, config.WheelCenterY, config.WheelRadius):
		a.RequestSpin()
	}
}

// RequestSpin 点击转动按钮
// 炸弹或退出弹窗打开时忽略
func (a *App) RequestSpin() bool {
	if a.session.Bomb().AwaitingDecision() || a.session.Exit().IsOpen() {
		return false
	}
	return a.session.Spin().RequestSpin()
}

// Revive 炸弹弹窗中选择复活
func (a *App) Revive() bool {
	if !a.session.Bomb().AwaitingDecision() {
		return false
	}
	event.Publish(a.session.Bus(), event.ReviveButtonClicked{})
	return true
}

// GiveUp 炸弹弹窗中选择放弃
func (a *App) GiveUp() bool {
	if !a.session.Bomb().AwaitingDecision() {
		return false
	}
	event.Publish(a.session.Bus(), event.GiveUpButtonClicked{})
	return true
}

// Step 推进一帧逻辑：弹窗计时和所有动画系统
func (a *App) Step(dt float64) {
	dt *= a.settings.GetSettings().AnimationSpeed

	a.view.Update(dt)
	a.wheelAnim.Update(dt)
	a.icons.Update(dt)
	a.shift.Update(dt)
	a.entityManager.RemoveMarkedEntities()

	if a.settings.GetSettings().AutoSpin && a.view.spinEnabled {
		a.RequestSpin()
	}
}

// Session 当前会话
func (a *App) Session() *game.Session {
	return a.session
}

// Settings 设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// Close 释放会话和音频资源，并保存设置
func (a *App) Close() error {
	event.UnsubscribeAll(a.session.Bus(), a.subs)
	a.subs = nil
	if a.audio != nil {
		a.audio.Close()
	}
	a.settings.Detach()
	a.session.Close()
	return a.settings.Save()
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}
