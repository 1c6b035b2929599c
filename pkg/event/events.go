package event

import "github.com/decker502/wheel/pkg/types"

// ========== 输入事件（按钮/外部请求） ==========

// WheelSpinStartRequested 请求开始转动转盘
type WheelSpinStartRequested struct{}

// ReviveButtonClicked 炸弹弹窗中点击复活
type ReviveButtonClicked struct{}

// GiveUpButtonClicked 炸弹弹窗中点击放弃
type GiveUpButtonClicked struct{}

// CollectRewardsButtonClicked 退出弹窗中点击领取奖励
type CollectRewardsButtonClicked struct{}

// ExitButtonClicked 退出弹窗中点击返回
type ExitButtonClicked struct{}

// ========== 输出事件 ==========

// RoundAdvanced 轮次推进
type RoundAdvanced struct {
	Round     int
	NextSafe  int // 下一个安全区域轮次（基于当前轮次计算）
	NextSuper int // 下一个超级区域轮次
}

// SafeZoneUpdated 进入安全区域
type SafeZoneUpdated struct {
	NextSafeRound int
}

// SuperZoneUpdated 进入超级区域
type SuperZoneUpdated struct {
	NextSuperRound int
}

// WheelSpinStarted 转盘开始转动
type WheelSpinStarted struct {
	Tier types.WheelTier
}

// WheelSpinStopped 转盘停止，携带本次结果
type WheelSpinStopped struct {
	Result types.SpinResult
}

// BombTriggered 转到炸弹格子
type BombTriggered struct {
	Slice *types.RewardSlice
}

// RewardCollected 奖励已收入背包（轮次推进的触发源）
type RewardCollected struct {
	Slice *types.RewardSlice
}

// SessionReset 会话已重置
type SessionReset struct {
	SessionID string
}
