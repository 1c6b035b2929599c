package components

// WheelSpinComponent 存储转盘旋转动画的状态
//
// 工作流程：
//  1. WheelAnimationSystem.AnimateSpin 添加此组件，记录起止角度和时长
//  2. 每帧根据 Elapsed/Duration 计算缓动后的角度
//  3. 到达终点后调用 OnComplete 并移除组件
type WheelSpinComponent struct {
	// StartAngle / TargetAngle 起止角度（度）
	StartAngle  float64
	TargetAngle float64

	// Elapsed 已用时间（秒）
	Elapsed float64

	// Duration 动画总时长（秒）
	Duration float64

	// Resetting 归零动画（不触发 OnComplete）
	Resetting bool

	// OnComplete 转动结束回调
	OnComplete func()
}

// RotationComponent 实体当前的旋转角度（度）
type RotationComponent struct {
	Angle float64
}
