// Package logging 提供全局 zap 日志器
//
// 各组件在构造时接收 *zap.Logger，并用 Named 标注自己的组件名；
// 未显式传入时使用这里的进程级日志器。
package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

// New 创建日志器
// level: "debug", "info", "warn", "error"；无法解析时使用 info
// development: 开发模式使用彩色控制台输出
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// L 返回进程级日志器（默认是 Nop）
func L() *zap.Logger {
	return global.Load()
}

// SetLogger 替换进程级日志器，返回用于恢复的函数
func SetLogger(logger *zap.Logger) (restore func()) {
	if logger == nil {
		logger = zap.NewNop()
	}
	prev := global.Swap(logger)
	return func() { global.Store(prev) }
}

// OrGlobal nil 时回退到进程级日志器
func OrGlobal(logger *zap.Logger) *zap.Logger {
	if logger != nil {
		return logger
	}
	return L()
}
