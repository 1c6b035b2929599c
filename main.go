package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/app"
	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/embedded"
	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/game"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/utils"
)

// ticksPerRound 无界面模式下每轮最多推进的帧数
const ticksPerRound = 60 * 30

var (
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用内置的 data/wheel.yaml）")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	headless   = flag.Bool("headless", false, "无界面模式：自动游戏直到指定轮次或转到炸弹")
	rounds     = flag.Int("rounds", 10, "无界面模式的目标轮次")
	seed       = flag.Uint64("seed", 0, "随机种子（0 表示随机）")
	tracePath  = flag.String("trace", "", "把会话事件以 JSON Lines 写入该文件")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	embedded.Init(dataFS)

	overrides, err := config.ParseEnvOverrides(nil)
	if err != nil {
		return err
	}

	level := overrides.LogLevel
	if *verbose {
		level = "debug"
	}
	logger, err := logging.New(level, *verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	restore := logging.SetLogger(logger)
	defer restore()

	cfg, err := loadConfig(*configPath, logger)
	if err != nil {
		return err
	}
	if err := overrides.Apply(cfg); err != nil {
		return err
	}
	logger.Info("[Main] 配置加载完成",
		zap.Int("rounds", len(cfg.Rounds)),
		zap.Int("safeInterval", cfg.Zone.SafeZoneInterval),
		zap.Int("superInterval", cfg.Zone.SuperZoneInterval))

	bus := event.NewBus(logger)
	if *tracePath != "" {
		f, err := os.Create(*tracePath)
		if err != nil {
			return fmt.Errorf("create trace file: %w", err)
		}
		defer f.Close()

		recorder := event.NewRecorder(bus, f)
		defer func() {
			recorder.Close()
			if err := recorder.Err(); err != nil {
				logger.Error("[Main] 事件记录写入失败", zap.Error(err))
			}
		}()
	}

	settings := game.NewSettingsManager(openStorage(logger), logger)

	gameApp, err := app.NewApp(app.Config{
		Game:     cfg,
		Logger:   logger,
		Seed:     *seed,
		Headless: *headless,
		Settings: settings,
		Bus:      bus,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := gameApp.Close(); err != nil {
			logger.Warn("[Main] 保存设置失败", zap.Error(err))
		}
	}()

	if *headless {
		res := gameApp.AutoPlay(*rounds, *rounds*ticksPerRound)
		fmt.Printf("round=%d spins=%d bomb=%v collected=%d ticks=%d\n",
			res.Round, res.Spins, res.HitBomb, res.Collected, res.Ticks)
		return nil
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Wheel of Fortune")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// loadConfig 读取配置文件，未指定时使用嵌入的 data/wheel.yaml，
// 两者都没有时使用 config.Default()
func loadConfig(path string, logger *zap.Logger) (*config.GameConfig, error) {
	if path != "" {
		return config.LoadGameConfig(path)
	}
	if !embedded.Exists(embedded.DefaultConfigPath) {
		logger.Warn("[Main] 未找到内置配置，使用默认配置", zap.String("path", embedded.DefaultConfigPath))
		return config.Default(), nil
	}

	data, err := embedded.ReadFile(embedded.DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}
	cfg, err := config.ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", embedded.DefaultConfigPath, err)
	}
	return cfg, nil
}

// openStorage 打开 gdata 存储，失败时降级为仅内存设置
func openStorage(logger *zap.Logger) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		logger.Warn("[Main] 存储目录不可用", zap.String("path", utils.GetStoragePath()), zap.Error(err))
	}
	manager, err := gdata.Open(gdata.Config{AppName: "wheel"})
	if err != nil {
		logger.Warn("[Main] 无法打开存储，设置不会被保存", zap.Error(err))
		return nil
	}
	return manager
}
