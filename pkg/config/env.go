package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides 可通过环境变量覆盖的配置项（前缀 WHEEL_）
// 未设置的变量保持零值，不覆盖配置文件
type EnvOverrides struct {
	SafeInterval  int    `env:"SAFE_INTERVAL"`
	SuperInterval int    `env:"SUPER_INTERVAL"`
	SpinRotations int    `env:"SPIN_ROTATIONS"`
	IconCount     int    `env:"ICON_COUNT"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
}

// ParseEnvOverrides 从进程环境读取覆盖项
// environ 非 nil 时使用给定的变量表（测试用）
func ParseEnvOverrides(environ map[string]string) (EnvOverrides, error) {
	opts := env.Options{Prefix: "WHEEL_"}
	if environ != nil {
		opts.Environment = environ
	}

	var o EnvOverrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return o, fmt.Errorf("failed to parse WHEEL_* environment: %w", err)
	}
	return o, nil
}

// Apply 把覆盖项写入配置并重新校验
func (o EnvOverrides) Apply(cfg *GameConfig) error {
	if o.SafeInterval != 0 {
		cfg.Zone.SafeZoneInterval = o.SafeInterval
	}
	if o.SuperInterval != 0 {
		cfg.Zone.SuperZoneInterval = o.SuperInterval
	}
	if o.SpinRotations != 0 {
		cfg.Spin.SpinRotations = o.SpinRotations
	}
	if o.IconCount != 0 {
		cfg.Icons.IconCount = o.IconCount
	}
	return Validate(cfg)
}
