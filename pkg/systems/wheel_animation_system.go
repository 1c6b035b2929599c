package systems

import (
	"math"

	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/components"
	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/ecs"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/utils"
)

// WheelAnimationSystem 转盘旋转动画
//
// 持有一个转盘实体（RotationComponent），AnimateSpin 为其添加 WheelSpinComponent，
// Update 按缓动曲线推进角度，结束后调用完成回调。
type WheelAnimationSystem struct {
	entityManager *ecs.EntityManager
	wheelEntity   ecs.EntityID
	config        config.WheelAnimationConfig
	logger        *zap.Logger
}

// NewWheelAnimationSystem 创建转盘动画系统
func NewWheelAnimationSystem(em *ecs.EntityManager, cfg config.WheelAnimationConfig, logger *zap.Logger) *WheelAnimationSystem {
	s := &WheelAnimationSystem{
		entityManager: em,
		config:        cfg,
		logger:        logging.OrGlobal(logger).Named("WheelAnimationSystem"),
	}
	s.wheelEntity = em.CreateEntity()
	ecs.AddComponent(em, s.wheelEntity, &components.RotationComponent{})
	return s
}

// AnimateSpin 从当前角度（归一到 [0,360)）转到 targetAngle，用时 duration 秒
// 正在进行的动画会被替换，其回调不再触发。
func (s *WheelAnimationSystem) AnimateSpin(duration, targetAngle float64, onComplete func()) {
	rot := s.rotation()
	if rot == nil {
		return
	}

	start := math.Mod(rot.Angle, 360)
	s.logger.Debug("[WheelAnimationSystem] 开始转动",
		zap.Float64("from", start), zap.Float64("to", targetAngle), zap.Float64("duration", duration))

	ecs.AddComponent(s.entityManager, s.wheelEntity, &components.WheelSpinComponent{
		StartAngle:  start,
		TargetAngle: targetAngle,
		Duration:    duration,
		OnComplete:  onComplete,
	})
	rot.Angle = start
}

// ResetWheel 把转盘转回 0 度，不触发任何回调
func (s *WheelAnimationSystem) ResetWheel() {
	rot := s.rotation()
	if rot == nil {
		return
	}

	start := math.Mod(rot.Angle, 360)
	if start == 0 || s.config.ResetDuration <= 0 {
		ecs.RemoveComponentOf[*components.WheelSpinComponent](s.entityManager, s.wheelEntity)
		rot.Angle = 0
		return
	}

	ecs.AddComponent(s.entityManager, s.wheelEntity, &components.WheelSpinComponent{
		StartAngle:  start,
		TargetAngle: 0,
		Duration:    s.config.ResetDuration,
		Resetting:   true,
	})
	rot.Angle = start
}

// StopAll 立即停止转动，丢弃完成回调，角度保持在当前位置
func (s *WheelAnimationSystem) StopAll() {
	if ecs.HasComponent[*components.WheelSpinComponent](s.entityManager, s.wheelEntity) {
		s.logger.Debug("[WheelAnimationSystem] 强制停止转动")
	}
	ecs.RemoveComponentOf[*components.WheelSpinComponent](s.entityManager, s.wheelEntity)
}

// Rotation 当前转盘角度（度）
func (s *WheelAnimationSystem) Rotation() float64 {
	if rot := s.rotation(); rot != nil {
		return rot.Angle
	}
	return 0
}

// Spinning 是否有转动（或归零）动画在进行
func (s *WheelAnimationSystem) Spinning() bool {
	return ecs.HasComponent[*components.WheelSpinComponent](s.entityManager, s.wheelEntity)
}

// Update 推进转动动画
func (s *WheelAnimationSystem) Update(dt float64) {
	var callbacks []func()

	for _, id := range ecs.GetEntitiesWith2[*components.RotationComponent, *components.WheelSpinComponent](s.entityManager) {
		rot, _ := ecs.GetComponent[*components.RotationComponent](s.entityManager, id)
		spin, _ := ecs.GetComponent[*components.WheelSpinComponent](s.entityManager, id)

		spin.Elapsed += dt
		progress := 1.0
		if spin.Duration > 0 {
			progress = utils.Clamp01(spin.Elapsed / spin.Duration)
		}

		rot.Angle = utils.Lerp(spin.StartAngle, spin.TargetAngle, utils.EaseOutCubic(progress))

		if progress >= 1 {
			rot.Angle = spin.TargetAngle
			ecs.RemoveComponentOf[*components.WheelSpinComponent](s.entityManager, id)
			if !spin.Resetting && spin.OnComplete != nil {
				callbacks = append(callbacks, spin.OnComplete)
			}
		}
	}

	// 回调可能发起新的动画，放到遍历结束后执行
	for _, cb := range callbacks {
		cb()
	}
}

func (s *WheelAnimationSystem) rotation() *components.RotationComponent {
	rot, ok := ecs.GetComponent[*components.RotationComponent](s.entityManager, s.wheelEntity)
	if !ok {
		s.logger.Error("[WheelAnimationSystem] 转盘实体缺少 RotationComponent")
		return nil
	}
	return rot
}
