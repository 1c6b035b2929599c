package systems

import (
	"github.com/decker502/wheel/pkg/components"
	"github.com/decker502/wheel/pkg/ecs"
	"github.com/decker502/wheel/pkg/utils"
)

// ZoneShiftSystem 区域计数器条的平移动画
//
// 窗口数据已经同步平移，动画只负责视觉偏移：新窗口先整体右移一格，再滑回原位。
type ZoneShiftSystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
	distance      float64
	duration      float64
}

// NewZoneShiftSystem 创建平移动画系统
// distance 为一格的宽度（像素），duration 为平移时长（秒）
func NewZoneShiftSystem(em *ecs.EntityManager, distance, duration float64) *ZoneShiftSystem {
	return &ZoneShiftSystem{
		entityManager: em,
		distance:      distance,
		duration:      duration,
	}
}

// PlayShift 开始一次平移，结束后调用 onDone
// 上一次平移未结束时立即完成它。
func (s *ZoneShiftSystem) PlayShift(onDone func()) {
	if prev := s.current(); prev != nil {
		s.finish()
		if prev.OnDone != nil {
			prev.OnDone()
		}
	}

	if s.duration <= 0 {
		if onDone != nil {
			onDone()
		}
		return
	}

	s.entity = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.entity, &components.ZoneShiftComponent{
		Offset:   s.distance,
		Distance: s.distance,
		Duration: s.duration,
		OnDone:   onDone,
	})
}

// Offset 当前视觉偏移（像素），没有动画时为 0
func (s *ZoneShiftSystem) Offset() float64 {
	if shift := s.current(); shift != nil {
		return shift.Offset
	}
	return 0
}

// StopAll 停止平移，不触发回调
func (s *ZoneShiftSystem) StopAll() {
	s.finish()
}

// Update 推进平移动画
func (s *ZoneShiftSystem) Update(dt float64) {
	shift := s.current()
	if shift == nil {
		return
	}

	shift.Elapsed += dt
	progress := utils.Clamp01(shift.Elapsed / shift.Duration)
	shift.Offset = shift.Distance * (1 - utils.EaseOutQuad(progress))

	if progress >= 1 {
		s.finish()
		if shift.OnDone != nil {
			shift.OnDone()
		}
	}
}

func (s *ZoneShiftSystem) current() *components.ZoneShiftComponent {
	if s.entity == 0 {
		return nil
	}
	shift, ok := ecs.GetComponent[*components.ZoneShiftComponent](s.entityManager, s.entity)
	if !ok {
		return nil
	}
	return shift
}

func (s *ZoneShiftSystem) finish() {
	if s.entity == 0 {
		return
	}
	s.entityManager.DestroyEntity(s.entity)
	s.entityManager.RemoveMarkedEntities()
	s.entity = 0
}
