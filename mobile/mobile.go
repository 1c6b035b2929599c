//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 移动端不读取配置文件，直接使用 config.Default() 的内置转盘配置。
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.wheel -o build/android/wheel.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Wheel.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/app"
	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/game"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/utils"
)

func init() {
	logger, err := logging.New("info", false)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	logging.SetLogger(logger)

	if err := utils.EnsureStorageDir(); err != nil {
		logger.Warn("[Mobile] 存储目录不可用", zap.String("path", utils.GetStoragePath()), zap.Error(err))
	}
	storage, err := gdata.Open(gdata.Config{AppName: "wheel"})
	if err != nil {
		logger.Warn("[Mobile] 无法打开存储，设置不会被保存", zap.Error(err))
		storage = nil
	}

	gameApp, err := app.NewApp(app.Config{
		Game:     config.Default(),
		Logger:   logger,
		Settings: game.NewSettingsManager(storage, logger),
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
