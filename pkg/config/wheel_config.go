package config

import (
	"fmt"

	"github.com/decker502/wheel/pkg/types"
)

// SpinConfig 转动参数
type SpinConfig struct {
	SpinRotations int     `yaml:"spinRotations"` // 基础整圈数，默认 6，最小 1
	MinDuration   float64 `yaml:"minDuration"`   // 最短转动时长（秒），默认 2.5
	MaxDuration   float64 `yaml:"maxDuration"`   // 最长转动时长（秒），默认 3.5
}

func (s *SpinConfig) applyDefaults() {
	if s.SpinRotations == 0 {
		s.SpinRotations = 6
	}
	if s.MinDuration == 0 {
		s.MinDuration = 2.5
	}
	if s.MaxDuration == 0 {
		s.MaxDuration = 3.5
	}
}

func (s *SpinConfig) validate() error {
	if s.SpinRotations < 1 {
		return fmt.Errorf("spinRotations must be at least 1, got %d", s.SpinRotations)
	}
	if s.MinDuration <= 0 {
		return fmt.Errorf("minDuration must be positive, got %v", s.MinDuration)
	}
	if s.MaxDuration < s.MinDuration {
		return fmt.Errorf("maxDuration (%v) must not be less than minDuration (%v)", s.MaxDuration, s.MinDuration)
	}
	return nil
}

// WheelVisuals 某一档位转盘的外观
type WheelVisuals struct {
	Title           string `yaml:"title"`
	Info            string `yaml:"info"`
	TextColor       *Color `yaml:"textColor"`
	WheelSprite     string `yaml:"wheelSprite"`
	IndicatorSprite string `yaml:"indicatorSprite"`
}

func defaultWheelVisuals(tier types.WheelTier) WheelVisuals {
	switch tier {
	case types.TierSilver:
		return WheelVisuals{
			Title:           "SILVER SPIN",
			Info:            "Safe zone rewards",
			TextColor:       &Color{200, 200, 210, 255},
			WheelSprite:     "ui_spin_silver_base",
			IndicatorSprite: "ui_spin_silver_indicator",
		}
	case types.TierGold:
		return WheelVisuals{
			Title:           "GOLDEN SPIN",
			Info:            "Super zone rewards",
			TextColor:       &Color{255, 200, 0, 255},
			WheelSprite:     "ui_spin_golden_base",
			IndicatorSprite: "ui_spin_golden_indicator",
		}
	default:
		return WheelVisuals{
			Title:           "BRONZE SPIN",
			Info:            "Up to x1 rewards",
			TextColor:       &Color{205, 127, 50, 255},
			WheelSprite:     "ui_spin_bronze_base",
			IndicatorSprite: "ui_spin_bronze_indicator",
		}
	}
}

// FlyingIconConfig 飞行图标配置
type FlyingIconConfig struct {
	IconCount       int     `yaml:"iconCount"`       // 每次发放生成的图标数，默认 10
	ScatterRadius   float64 `yaml:"scatterRadius"`   // 散开半径（像素），默认 90
	ScatterDuration float64 `yaml:"scatterDuration"` // 散开时长（秒），默认 0.25
	GatherDelay     float64 `yaml:"gatherDelay"`     // 散开后停顿（秒），默认 0.15
	FlyDuration     float64 `yaml:"flyDuration"`     // 飞向背包时长（秒），默认 0.45
}

func (f *FlyingIconConfig) applyDefaults() {
	if f.IconCount == 0 {
		f.IconCount = 10
	}
	if f.ScatterRadius == 0 {
		f.ScatterRadius = 90
	}
	if f.ScatterDuration == 0 {
		f.ScatterDuration = 0.25
	}
	if f.GatherDelay == 0 {
		f.GatherDelay = 0.15
	}
	if f.FlyDuration == 0 {
		f.FlyDuration = 0.45
	}
}

func (f *FlyingIconConfig) validate() error {
	if f.IconCount < 0 {
		return fmt.Errorf("iconCount cannot be negative, got %d", f.IconCount)
	}
	if f.ScatterDuration < 0 || f.GatherDelay < 0 || f.FlyDuration < 0 {
		return fmt.Errorf("durations cannot be negative")
	}
	return nil
}

// WheelAnimationConfig 转盘动画参数（仅参考动画实现使用）
type WheelAnimationConfig struct {
	ResetDuration float64 `yaml:"resetDuration"` // 转盘归零时长（秒），默认 0.3
	ShiftDuration float64 `yaml:"shiftDuration"` // 区域计数器平移时长（秒），默认 0.25
}

func (a *WheelAnimationConfig) applyDefaults() {
	if a.ResetDuration == 0 {
		a.ResetDuration = 0.3
	}
	if a.ShiftDuration == 0 {
		a.ShiftDuration = 0.25
	}
}
