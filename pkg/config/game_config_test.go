package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/wheel/pkg/types"
)

// TestLoadGameConfig 测试游戏配置文件加载
func TestLoadGameConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "wheel.yaml")

		validYAML := `zone:
  safeZoneInterval: 5
  superZoneInterval: 30
spin:
  spinRotations: 4
  minDuration: 1.0
  maxDuration: 2.0
wheels:
  Gold:
    title: "GOLD"
    textColor: "#FFC800"
rounds:
  - round: 1
    slices:
      - {id: cash, count: 100}
      - {id: bomb, bomb: true}
  - round: 0
    slices:
      - {id: gold, count: 5}
`
		if err := os.WriteFile(testFile, []byte(validYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		cfg, err := LoadGameConfig(testFile)
		if err != nil {
			t.Fatalf("LoadGameConfig() failed: %v", err)
		}

		if cfg.Spin.SpinRotations != 4 {
			t.Errorf("Expected spinRotations 4, got %d", cfg.Spin.SpinRotations)
		}
		if cfg.Zone.WindowSize != 9 || cfg.Zone.MaxActiveRounds != 13 {
			t.Errorf("默认窗口配置错误: windowSize=%d maxActiveRounds=%d", cfg.Zone.WindowSize, cfg.Zone.MaxActiveRounds)
		}
		if cfg.Icons.IconCount != 10 {
			t.Errorf("Expected default iconCount 10, got %d", cfg.Icons.IconCount)
		}

		if len(cfg.Rounds) != 2 {
			t.Fatalf("Expected 2 round sets, got %d", len(cfg.Rounds))
		}
		bomb := cfg.Rounds[0].Slices[1]
		if !bomb.Bomb || bomb.Count != 1 {
			t.Errorf("炸弹格子应为 bomb=true 且默认 count=1，got %+v", bomb)
		}
		if cfg.Rounds[1].Round != 1 {
			t.Errorf("round 0 应被修正为 1，got %d", cfg.Rounds[1].Round)
		}

		gold, ok := cfg.WheelVisualsFor(types.TierGold)
		if !ok || gold.Title != "GOLD" {
			t.Errorf("档位名应大小写不敏感，got %+v ok=%v", gold, ok)
		}
		if gold.TextColor.RGBA() != (color.RGBA{255, 200, 0, 255}) {
			t.Errorf("unexpected gold text color %v", gold.TextColor)
		}

		bronze, ok := cfg.WheelVisualsFor(types.TierBronze)
		if !ok || bronze.Title == "" {
			t.Error("缺失的档位应使用默认外观")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil {
			t.Fatal("Expected error for missing file")
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("错误应包装 os.ErrNotExist: %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := ParseGameConfig([]byte("zone: [unclosed")); err == nil {
			t.Error("Expected parse error")
		}
	})
}

// TestValidate 测试配置校验
func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative safe interval", "zone: {safeZoneInterval: -1}"},
		{"window too small", "zone: {windowSize: 2}"},
		{"max below min duration", "spin: {minDuration: 3, maxDuration: 1}"},
		{"negative icon count", "icons: {iconCount: -2}"},
		{"unknown tier", "wheels: {platinum: {title: x}}"},
		{"missing slice id", "rounds: [{round: 1, slices: [{count: 1}]}]"},
		{"negative slice count", "rounds: [{round: 1, slices: [{id: a, count: -1}]}]"},
		{"round beyond maximum", "zone: {maximumZoneCount: 10}\nrounds: [{round: 11, slices: [{id: a}]}]"},
		{"bad color", "zoneVisuals: {safeTextColor: \"#12\"}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGameConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Expected error for %s", tt.name)
			}
		})
	}

	_, err := ParseGameConfig([]byte("zone: {superZoneInterval: 0, safeZoneInterval: -3}"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("校验错误应包装 ErrInvalidConfig: %v", err)
	}
}

// TestLoadShippedConfig 测试仓库自带的 data/wheel.yaml
func TestLoadShippedConfig(t *testing.T) {
	cfg, err := LoadGameConfig("../../data/wheel.yaml")
	if err != nil {
		t.Fatalf("LoadGameConfig(data/wheel.yaml) failed: %v", err)
	}

	if cfg.Zone.SafeZoneInterval != 5 || cfg.Zone.SuperZoneInterval != 30 {
		t.Errorf("unexpected intervals: %+v", cfg.Zone)
	}
	if len(cfg.Rounds) == 0 || cfg.Rounds[0].Round != 1 {
		t.Error("应至少定义第 1 轮")
	}
	if cfg.ZoneVisuals.PassedAlpha != 0.5 {
		t.Errorf("passedAlpha = %v", cfg.ZoneVisuals.PassedAlpha)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("默认配置应通过校验: %v", err)
	}
	if cfg.Pools.FlyingIcon != 20 || cfg.Pools.Inventory != 10 {
		t.Errorf("unexpected pool defaults: %+v", cfg.Pools)
	}
}
