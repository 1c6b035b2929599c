package systems

import (
	"errors"

	"github.com/decker502/wheel/pkg/types"
	"github.com/decker502/wheel/pkg/utils"
)

// ErrNoSlices 转盘上没有任何格子（配置错误）
var ErrNoSlices = errors.New("wheel has no slices")

// SpinParams 转动参数
type SpinParams struct {
	SpinRotations int     // 基础整圈数
	MinDuration   float64 // 时长下限（秒，档位系数之前）
	MaxDuration   float64 // 时长上限
}

// SpinOutcome 一次转动的结算结果，计算后不可修改
type SpinOutcome struct {
	Slice          *types.RewardSlice
	CorrectedIndex int
	TargetAngle    float64 // 目标角度（度）
	Duration       float64 // 转动时长（秒，已乘档位系数）
	Tier           types.WheelTier
}

// Result 转换为发放流程消费的 SpinResult
func (o SpinOutcome) Result() types.SpinResult {
	return types.SpinResult{Slice: o.Slice, TargetRotationDegrees: o.TargetAngle}
}

// WheelStrategy 档位对应的转动策略
type WheelStrategy interface {
	Tier() types.WheelTier
	// Resolve 随机选出格子并计算目标角度；slices 为空时返回 ErrNoSlices
	Resolve(slices []*types.RewardSlice, params SpinParams, rng utils.Rand) (SpinOutcome, error)
}

// tierStrategy 三个档位共用的结算逻辑，只在额外圈数和时长系数上不同
//
//	青铜：360 × spinRotations，时长 ×1.0
//	白银：360 × (spinRotations + 1)，时长 ×1.2
//	黄金：360 × (spinRotations + 2)，时长 ×1.3
type tierStrategy struct {
	tier               types.WheelTier
	extraRotations     int
	durationMultiplier float64
}

// BronzeWheelStrategy 青铜转盘
var BronzeWheelStrategy WheelStrategy = tierStrategy{tier: types.TierBronze, extraRotations: 0, durationMultiplier: 1.0}

// SilverWheelStrategy 白银转盘
var SilverWheelStrategy WheelStrategy = tierStrategy{tier: types.TierSilver, extraRotations: 1, durationMultiplier: 1.2}

// GoldWheelStrategy 黄金转盘
var GoldWheelStrategy WheelStrategy = tierStrategy{tier: types.TierGold, extraRotations: 2, durationMultiplier: 1.3}

func (s tierStrategy) Tier() types.WheelTier {
	return s.tier
}

func (s tierStrategy) Resolve(slices []*types.RewardSlice, params SpinParams, rng utils.Rand) (SpinOutcome, error) {
	n := len(slices)
	if n == 0 {
		return SpinOutcome{}, ErrNoSlices
	}

	// 格子列表与转盘视觉方向相反，随机结果需要反转才能让指针下的格子与结果一致
	sliceIndex := rng.IntN(n)
	corrected := CorrectedIndex(n, sliceIndex)

	duration := utils.RangeFloat(rng, params.MinDuration, params.MaxDuration) * s.durationMultiplier

	return SpinOutcome{
		Slice:          slices[corrected],
		CorrectedIndex: corrected,
		TargetAngle:    TargetAngle(n, corrected, params.SpinRotations+s.extraRotations),
		Duration:       duration,
		Tier:           s.tier,
	}, nil
}

// CorrectedIndex 把随机索引转换为视觉上指针所指的格子索引
func CorrectedIndex(n, sliceIndex int) int {
	return n - 1 - sliceIndex
}

// TargetAngle 计算转盘目标角度
// targetAngle = 360 × rotations + (360 − correctedIndex × 360/n)
func TargetAngle(n, correctedIndex, rotations int) float64 {
	perSlice := 360.0 / float64(n)
	return 360.0*float64(rotations) + (360.0 - float64(correctedIndex)*perSlice)
}

// NewWheelStrategy 按档位创建策略，未知档位回退为青铜
func NewWheelStrategy(tier types.WheelTier) WheelStrategy {
	switch tier {
	case types.TierSilver:
		return SilverWheelStrategy
	case types.TierGold:
		return GoldWheelStrategy
	default:
		return BronzeWheelStrategy
	}
}
