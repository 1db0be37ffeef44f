package systems

import (
	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
)

// FlashEffectSystem 受击闪烁效果系统
// 闪烁由组件自身计时，实体被删除时效果随之消失，不依赖延迟回调
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlashEffectSystem 创建闪烁效果系统
func NewFlashEffectSystem(em *ecs.EntityManager) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
	}
}

// Trigger 为实体开始（或重新开始）一次闪烁
func (s *FlashEffectSystem) Trigger(id ecs.EntityID, duration, intensity float64) {
	if !s.entityManager.IsAlive(id) {
		return
	}
	if flash, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id); ok {
		flash.Duration = duration
		flash.Elapsed = 0
		flash.Intensity = intensity
		flash.IsActive = true
		return
	}
	ecs.AddComponent(s.entityManager, id, &components.FlashEffectComponent{
		Duration:  duration,
		Intensity: intensity,
		IsActive:  true,
	})
}

// Update 更新所有闪烁效果
func (s *FlashEffectSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager)

	for _, entity := range entities {
		flashComp, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, entity)
		if !ok || !flashComp.IsActive {
			continue
		}

		flashComp.Elapsed += dt
		if flashComp.Elapsed >= flashComp.Duration {
			// 闪烁结束，移除组件
			ecs.RemoveComponent[*components.FlashEffectComponent](s.entityManager, entity)
		}
	}
}

// Alpha 实体当前的绘制不透明度（没有闪烁时为 1）
func (s *FlashEffectSystem) Alpha(id ecs.EntityID) float64 {
	flash, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id)
	if !ok || !flash.IsActive {
		return 1
	}
	return 1 - flash.Intensity/2
}
