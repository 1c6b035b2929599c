package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/wheel/pkg/types"
)

// ZoneConfig 区域与计数器窗口配置
type ZoneConfig struct {
	MaximumZoneCount  int `yaml:"maximumZoneCount"`  // 最大轮次，默认 60
	SafeZoneInterval  int `yaml:"safeZoneInterval"`  // 安全区域间隔，默认 5
	SuperZoneInterval int `yaml:"superZoneInterval"` // 超级区域间隔，默认 30
	WindowSize        int `yaml:"windowSize"`        // 可见窗口格数，默认 9，最小 3
	MaxActiveRounds   int `yaml:"maxActiveRounds"`   // 计数器槽位容量，默认 13，最小 1
}

func (z *ZoneConfig) applyDefaults() {
	if z.MaximumZoneCount == 0 {
		z.MaximumZoneCount = 60
	}
	if z.SafeZoneInterval == 0 {
		z.SafeZoneInterval = 5
	}
	if z.SuperZoneInterval == 0 {
		z.SuperZoneInterval = 30
	}
	if z.WindowSize == 0 {
		z.WindowSize = 9
	}
	if z.MaxActiveRounds == 0 {
		z.MaxActiveRounds = 13
	}
}

func (z *ZoneConfig) validate() error {
	if z.SafeZoneInterval < 1 {
		return fmt.Errorf("safeZoneInterval must be at least 1, got %d", z.SafeZoneInterval)
	}
	if z.SuperZoneInterval < 1 {
		return fmt.Errorf("superZoneInterval must be at least 1, got %d", z.SuperZoneInterval)
	}
	if z.WindowSize < 3 {
		return fmt.Errorf("windowSize must be at least 3, got %d", z.WindowSize)
	}
	if z.MaxActiveRounds < 1 {
		return fmt.Errorf("maxActiveRounds must be at least 1, got %d", z.MaxActiveRounds)
	}
	if z.MaximumZoneCount < 1 {
		return fmt.Errorf("maximumZoneCount must be at least 1, got %d", z.MaximumZoneCount)
	}
	return nil
}

// Color 支持 "#RRGGBB" / "#RRGGBBAA" 格式的颜色
type Color color.RGBA

// RGBA 转换为 image/color 颜色
func (c Color) RGBA() color.RGBA {
	return color.RGBA(c)
}

// String 返回 "#RRGGBBAA" 格式
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseColor 解析十六进制颜色
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q: expected #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "FF"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// ZoneVisualsConfig 区域计数器的文字颜色配置
type ZoneVisualsConfig struct {
	NormalTextColor  *Color  `yaml:"normalTextColor"`
	SafeTextColor    *Color  `yaml:"safeTextColor"`
	SuperTextColor   *Color  `yaml:"superTextColor"`
	CurrentTextColor *Color  `yaml:"currentTextColor"`
	PassedAlpha      float64 `yaml:"passedAlpha"` // 已通过轮次的透明度系数 [0,1]，默认 1

	NormalBackground string `yaml:"normalBackground"`
	SafeBackground   string `yaml:"safeBackground"`
	SuperBackground  string `yaml:"superBackground"`
}

func (v *ZoneVisualsConfig) applyDefaults() {
	if v.NormalTextColor == nil {
		v.NormalTextColor = &Color{255, 255, 255, 255}
	}
	if v.SafeTextColor == nil {
		v.SafeTextColor = &Color{0, 0, 0, 255}
	}
	if v.SuperTextColor == nil {
		v.SuperTextColor = &Color{0, 0, 0, 255}
	}
	if v.CurrentTextColor == nil {
		v.CurrentTextColor = &Color{0, 0, 0, 255}
	}
	if v.PassedAlpha <= 0 || v.PassedAlpha > 1 {
		v.PassedAlpha = 1
	}
}

// TextColor 计算计数器文字颜色
// 当前轮次且为普通区域时使用当前色；已通过的轮次按 PassedAlpha 降低透明度
func (v *ZoneVisualsConfig) TextColor(zone types.ZoneType, isCurrent, isPassed bool) color.RGBA {
	if isCurrent && zone == types.ZoneNormal {
		return v.CurrentTextColor.RGBA()
	}

	var base color.RGBA
	switch zone {
	case types.ZoneSafe:
		base = v.SafeTextColor.RGBA()
	case types.ZoneSuper:
		base = v.SuperTextColor.RGBA()
	default:
		base = v.NormalTextColor.RGBA()
	}

	if isPassed {
		base.A = uint8(float64(base.A) * v.PassedAlpha)
	}
	return base
}

// Background 返回区域指示器背景资源ID
func (v *ZoneVisualsConfig) Background(zone types.ZoneType) string {
	switch zone {
	case types.ZoneSafe:
		return v.SafeBackground
	case types.ZoneSuper:
		return v.SuperBackground
	default:
		return v.NormalBackground
	}
}
