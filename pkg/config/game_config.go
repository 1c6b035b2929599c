package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/wheel/pkg/types"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid game config")

// GameConfig 游戏会话的完整配置
// 对应 data/wheel.yaml，加载后只读
type GameConfig struct {
	Zone        ZoneConfig              `yaml:"zone"`
	Spin        SpinConfig              `yaml:"spin"`
	Icons       FlyingIconConfig        `yaml:"icons"`
	Pools       PoolConfig              `yaml:"pools"`
	Wheels      map[string]WheelVisuals `yaml:"wheels"`      // 键为档位名：bronze / silver / gold
	ZoneVisuals ZoneVisualsConfig       `yaml:"zoneVisuals"` // 区域计数器文字颜色
	Rounds      []RoundSliceSet         `yaml:"rounds"`      // 每轮的奖励格子定义（1-based）
	Animation   WheelAnimationConfig    `yaml:"animation"`
}

// PoolConfig 各对象池的预热数量
type PoolConfig struct {
	Slice      int `yaml:"slice"`      // 转盘格子，默认 8
	Popup      int `yaml:"popup"`      // 奖励弹窗，默认 5
	FlyingIcon int `yaml:"flyingIcon"` // 飞行图标，默认 20
	Inventory  int `yaml:"inventory"`  // 背包槽位，默认 10
}

// LoadGameConfig 从YAML文件加载游戏配置
// 参数：
//
//	path - 配置文件路径
//
// 返回：
//
//	*GameConfig - 已应用默认值并通过校验的配置
//	error - 读取、解析或校验失败时返回
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", path, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析YAML数据并应用默认值、校验
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 返回只含默认值的配置（没有轮次数据）
func Default() *GameConfig {
	cfg := &GameConfig{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults 为缺失的可选字段设置默认值
func ApplyDefaults(cfg *GameConfig) {
	cfg.Zone.applyDefaults()
	cfg.Spin.applyDefaults()
	cfg.Icons.applyDefaults()
	cfg.Animation.applyDefaults()
	cfg.ZoneVisuals.applyDefaults()

	if cfg.Pools.Slice == 0 {
		cfg.Pools.Slice = 8
	}
	if cfg.Pools.Popup == 0 {
		cfg.Pools.Popup = 5
	}
	if cfg.Pools.FlyingIcon == 0 {
		cfg.Pools.FlyingIcon = 20
	}
	if cfg.Pools.Inventory == 0 {
		cfg.Pools.Inventory = 10
	}

	// 档位名统一为小写
	wheels := make(map[string]WheelVisuals, len(cfg.Wheels))
	for key, v := range cfg.Wheels {
		wheels[strings.ToLower(key)] = v
	}
	cfg.Wheels = wheels
	for _, tier := range []types.WheelTier{types.TierBronze, types.TierSilver, types.TierGold} {
		key := tierKey(tier)
		if _, ok := cfg.Wheels[key]; !ok {
			cfg.Wheels[key] = defaultWheelVisuals(tier)
		}
	}

	// 轮次编号最小为 1
	for i := range cfg.Rounds {
		if cfg.Rounds[i].Round < 1 {
			cfg.Rounds[i].Round = 1
		}
		for _, s := range cfg.Rounds[i].Slices {
			if s != nil && s.Count == 0 {
				s.Count = 1
			}
		}
	}
}

// Validate 校验配置的完整性和合法性
func Validate(cfg *GameConfig) error {
	if err := cfg.Zone.validate(); err != nil {
		return fmt.Errorf("%w: zone: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Spin.validate(); err != nil {
		return fmt.Errorf("%w: spin: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Icons.validate(); err != nil {
		return fmt.Errorf("%w: icons: %v", ErrInvalidConfig, err)
	}
	if cfg.Pools.Slice < 0 || cfg.Pools.Popup < 0 || cfg.Pools.FlyingIcon < 0 || cfg.Pools.Inventory < 0 {
		return fmt.Errorf("%w: pools: sizes cannot be negative", ErrInvalidConfig)
	}

	for key := range cfg.Wheels {
		if _, err := types.ParseWheelTier(key); err != nil {
			return fmt.Errorf("%w: wheels: %v", ErrInvalidConfig, err)
		}
	}

	for i, set := range cfg.Rounds {
		if set.Round > cfg.Zone.MaximumZoneCount {
			return fmt.Errorf("%w: rounds[%d]: round %d exceeds maximumZoneCount %d",
				ErrInvalidConfig, i, set.Round, cfg.Zone.MaximumZoneCount)
		}
		for j, s := range set.Slices {
			if s == nil {
				return fmt.Errorf("%w: rounds[%d].slices[%d]: empty slice entry", ErrInvalidConfig, i, j)
			}
			if s.ID == "" {
				return fmt.Errorf("%w: rounds[%d].slices[%d]: id is required", ErrInvalidConfig, i, j)
			}
			if s.Count < 1 {
				return fmt.Errorf("%w: rounds[%d].slices[%d]: count must be at least 1, got %d",
					ErrInvalidConfig, i, j, s.Count)
			}
		}
	}

	return nil
}

// WheelVisualsFor 返回指定档位的转盘外观
func (cfg *GameConfig) WheelVisualsFor(tier types.WheelTier) (WheelVisuals, bool) {
	v, ok := cfg.Wheels[tierKey(tier)]
	return v, ok
}

func tierKey(tier types.WheelTier) string {
	switch tier {
	case types.TierSilver:
		return "silver"
	case types.TierGold:
		return "gold"
	default:
		return "bronze"
	}
}
