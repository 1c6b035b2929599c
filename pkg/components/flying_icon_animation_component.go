package components

import "github.com/decker502/wheel/pkg/types"

// 飞行图标动画阶段
const (
	FlyingIconPhaseScatter = "scatter" // 从弹窗位置散开
	FlyingIconPhaseIdle    = "idle"    // 散开完成，等待飞行指令
	FlyingIconPhaseGather  = "gather"  // 散开后的停顿
	FlyingIconPhaseFlying  = "flying"  // 飞向背包槽位
)

// FlyingIconAnimationComponent 存储飞行图标的动画状态
//
// 阶段：scatter → idle →（收到 PlayFlyTo）→ gather → flying → 完成
type FlyingIconAnimationComponent struct {
	// Icon 被驱动的池实体
	Icon *FlyingIcon

	// Phase 当前阶段
	Phase string

	// ElapsedTime 当前阶段已用时间（秒）
	ElapsedTime float64

	// Start 当前阶段起点
	Start types.Point

	// Target 当前阶段终点
	Target types.Point

	// FlyRequested 散开阶段中已收到飞行指令
	FlyRequested bool

	// FlyTarget 飞行目标（背包槽位锚点）
	FlyTarget types.Point

	// OnComplete 到达目标后的回调
	OnComplete func()
}

// ZoneShiftComponent 区域计数器条的平移动画
type ZoneShiftComponent struct {
	Offset   float64 // 当前偏移（像素，向左为负）
	Distance float64 // 总平移距离
	Elapsed  float64
	Duration float64
	OnDone   func()
}
