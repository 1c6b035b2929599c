package config

import "testing"

func TestEnvOverrides(t *testing.T) {
	o, err := ParseEnvOverrides(map[string]string{
		"WHEEL_SAFE_INTERVAL":  "4",
		"WHEEL_ICON_COUNT":     "3",
		"WHEEL_SPIN_ROTATIONS": "2",
	})
	if err != nil {
		t.Fatalf("ParseEnvOverrides failed: %v", err)
	}
	if o.LogLevel != "info" {
		t.Errorf("LogLevel 默认应为 info，got %q", o.LogLevel)
	}

	cfg := Default()
	if err := o.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if cfg.Zone.SafeZoneInterval != 4 {
		t.Errorf("SafeZoneInterval = %d, want 4", cfg.Zone.SafeZoneInterval)
	}
	if cfg.Zone.SuperZoneInterval != 30 {
		t.Errorf("未设置的变量不应覆盖，SuperZoneInterval = %d", cfg.Zone.SuperZoneInterval)
	}
	if cfg.Icons.IconCount != 3 || cfg.Spin.SpinRotations != 2 {
		t.Errorf("unexpected overrides: icons=%d rotations=%d", cfg.Icons.IconCount, cfg.Spin.SpinRotations)
	}
}

func TestEnvOverridesInvalid(t *testing.T) {
	if _, err := ParseEnvOverrides(map[string]string{"WHEEL_ICON_COUNT": "many"}); err == nil {
		t.Error("非数字应返回解析错误")
	}

	o := EnvOverrides{SafeInterval: -5}
	if err := o.Apply(Default()); err == nil {
		t.Error("覆盖后的非法配置应校验失败")
	}
}
