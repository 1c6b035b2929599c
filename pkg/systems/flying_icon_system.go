package systems

import (
	"maps"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/components"
	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/ecs"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/types"
	"github.com/decker502/wheel/pkg/utils"
)

// FlyingIconSystem 奖励图标散开并飞向背包的动画
//
// 每个图标对应一个带 FlyingIconAnimationComponent 的实体：
//
//	PlayScatter: scatter（从弹窗位置散开到随机点）→ idle
//	PlayFlyTo:   gather（短暂停顿）→ flying（飞向目标）→ 回调
//
// PlayFlyTo 在散开未结束时调用也可以，散开结束后直接进入 gather。
type FlyingIconSystem struct {
	entityManager *ecs.EntityManager
	config        config.FlyingIconConfig
	rng           utils.Rand
	entities      map[*components.FlyingIcon]ecs.EntityID
	logger        *zap.Logger
}

// NewFlyingIconSystem 创建飞行图标动画系统
func NewFlyingIconSystem(em *ecs.EntityManager, cfg config.FlyingIconConfig, rng utils.Rand, logger *zap.Logger) *FlyingIconSystem {
	return &FlyingIconSystem{
		entityManager: em,
		config:        cfg,
		rng:           rng,
		entities:      make(map[*components.FlyingIcon]ecs.EntityID),
		logger:        logging.OrGlobal(logger).Named("FlyingIconSystem"),
	}
}

// PlayScatter 图标从 from 向随机方向散开
func (s *FlyingIconSystem) PlayScatter(icon *components.FlyingIcon, from types.Point) {
	if icon == nil {
		return
	}

	angle := s.rng.Float64() * 2 * math.Pi
	radius := s.config.ScatterRadius * (0.5 + 0.5*s.rng.Float64())
	target := types.Point{
		X: from.X + math.Cos(angle)*radius,
		Y: from.Y + math.Sin(angle)*radius,
	}

	icon.Position = from
	anim := s.animationFor(icon)
	*anim = components.FlyingIconAnimationComponent{
		Icon:   icon,
		Phase:  components.FlyingIconPhaseScatter,
		Start:  from,
		Target: target,
	}
}

// PlayFlyTo 图标飞向 to，到达后调用 onComplete
func (s *FlyingIconSystem) PlayFlyTo(icon *components.FlyingIcon, to types.Point, onComplete func()) {
	if icon == nil {
		return
	}

	anim := s.animationFor(icon)
	if anim.Icon == nil {
		// 没有散开过，直接从当前位置开始
		anim.Icon = icon
		anim.Phase = components.FlyingIconPhaseIdle
		anim.Start = icon.Position
		anim.Target = icon.Position
	}

	anim.FlyRequested = true
	anim.FlyTarget = to
	anim.OnComplete = onComplete

	if anim.Phase == components.FlyingIconPhaseIdle {
		s.enterGather(anim)
	}
}

// StopAll 停止所有图标动画，未完成的回调不再触发
func (s *FlyingIconSystem) StopAll() {
	if len(s.entities) > 0 {
		s.logger.Debug("[FlyingIconSystem] 停止所有图标动画", zap.Int("count", len(s.entities)))
	}
	for icon, id := range s.entities {
		ecs.RemoveComponentOf[*components.FlyingIconAnimationComponent](s.entityManager, id)
		s.entityManager.DestroyEntity(id)
		delete(s.entities, icon)
	}
	s.entityManager.RemoveMarkedEntities()
}

// Active 正在播放动画的图标数量
func (s *FlyingIconSystem) Active() int {
	return len(s.entities)
}

// Icons 正在播放动画的图标（无序）
func (s *FlyingIconSystem) Icons() []*components.FlyingIcon {
	return slices.Collect(maps.Keys(s.entities))
}

// Update 推进所有图标动画
func (s *FlyingIconSystem) Update(dt float64) {
	var callbacks []func()

	for _, id := range ecs.GetEntitiesWith1[*components.FlyingIconAnimationComponent](s.entityManager) {
		anim, _ := ecs.GetComponent[*components.FlyingIconAnimationComponent](s.entityManager, id)
		anim.ElapsedTime += dt

		switch anim.Phase {
		case components.FlyingIconPhaseScatter:
			progress := s.progress(anim.ElapsedTime, s.config.ScatterDuration)
			anim.Icon.Position = lerpPoint(anim.Start, anim.Target, utils.EaseOutCubic(progress))
			if progress >= 1 {
				if anim.FlyRequested {
					s.enterGather(anim)
				} else {
					anim.Phase = components.FlyingIconPhaseIdle
				}
			}

		case components.FlyingIconPhaseGather:
			if anim.ElapsedTime >= s.config.GatherDelay {
				anim.Phase = components.FlyingIconPhaseFlying
				anim.ElapsedTime = 0
				anim.Start = anim.Icon.Position
				anim.Target = anim.FlyTarget
			}

		case components.FlyingIconPhaseFlying:
			progress := s.progress(anim.ElapsedTime, s.config.FlyDuration)
			anim.Icon.Position = lerpPoint(anim.Start, anim.Target, utils.EaseInCubic(progress))
			if progress >= 1 {
				anim.Icon.Position = anim.Target
				if anim.OnComplete != nil {
					callbacks = append(callbacks, anim.OnComplete)
				}
				s.release(anim.Icon, id)
			}
		}
	}

	s.entityManager.RemoveMarkedEntities()

	// 回调会把图标还回对象池，必须在遍历结束后执行
	for _, cb := range callbacks {
		cb()
	}
}

func (s *FlyingIconSystem) enterGather(anim *components.FlyingIconAnimationComponent) {
	anim.Phase = components.FlyingIconPhaseGather
	anim.ElapsedTime = 0
}

func (s *FlyingIconSystem) progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return utils.Clamp01(elapsed / duration)
}

// animationFor 返回图标的动画组件，不存在时创建实体
func (s *FlyingIconSystem) animationFor(icon *components.FlyingIcon) *components.FlyingIconAnimationComponent {
	if id, ok := s.entities[icon]; ok {
		if anim, ok := ecs.GetComponent[*components.FlyingIconAnimationComponent](s.entityManager, id); ok {
			return anim
		}
	}

	id := s.entityManager.CreateEntity()
	anim := &components.FlyingIconAnimationComponent{}
	ecs.AddComponent(s.entityManager, id, anim)
	s.entities[icon] = id
	return anim
}

func (s *FlyingIconSystem) release(icon *components.FlyingIcon, id ecs.EntityID) {
	ecs.RemoveComponentOf[*components.FlyingIconAnimationComponent](s.entityManager, id)
	s.entityManager.DestroyEntity(id)
	delete(s.entities, icon)
}

func lerpPoint(a, b types.Point, t float64) types.Point {
	return types.Point{
		X: utils.Lerp(a.X, b.X, t),
		Y: utils.Lerp(a.Y, b.Y, t),
	}
}
