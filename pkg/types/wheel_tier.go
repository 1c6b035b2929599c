package types

import (
	"fmt"
	"strings"
)

// WheelTier 定义转盘档位，同一时刻只有一个档位处于激活状态
type WheelTier int

const (
	// TierBronze 青铜转盘（默认）
	TierBronze WheelTier = iota
	// TierSilver 白银转盘（安全区域）
	TierSilver
	// TierGold 黄金转盘（超级区域）
	TierGold
)

// String 返回转盘档位的字符串表示
func (t WheelTier) String() string {
	switch t {
	case TierSilver:
		return "Silver"
	case TierGold:
		return "Gold"
	default:
		return "Bronze"
	}
}

// TierForZone 根据区域类型选择转盘档位
func TierForZone(z ZoneType) WheelTier {
	switch z {
	case ZoneSuper:
		return TierGold
	case ZoneSafe:
		return TierSilver
	default:
		return TierBronze
	}
}

// ParseWheelTier 解析配置文件中的档位名称（大小写不敏感）
func ParseWheelTier(s string) (WheelTier, error) {
	switch strings.ToLower(s) {
	case "bronze":
		return TierBronze, nil
	case "silver":
		return TierSilver, nil
	case "gold":
		return TierGold, nil
	}
	return TierBronze, fmt.Errorf("unknown wheel tier %q", s)
}
