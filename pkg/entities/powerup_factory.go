package entities

import (
	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/types"
)

// NewPowerUpEntity 创建掉落的道具
// 道具以 FallSpeed 下落，Lifetime 秒内未被拾取则消失
func NewPowerUpEntity(em *ecs.EntityManager, cfg config.PowerUpConfig, kind types.PowerUpKind, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VY: cfg.FallSpeed})
	ecs.AddComponent(em, id, &components.PowerUpComponent{Kind: kind})
	ecs.AddComponent(em, id, &components.LifetimeComponent{MaxLifetime: cfg.Lifetime})
	ecs.AddComponent(em, id, &components.LifeStateComponent{State: components.LifeAlive})
	ecs.AddComponent(em, id, &components.ClickableComponent{
		Radius:    cfg.Radius,
		Layer:     components.LayerPowerUp,
		IsEnabled: true,
	})
	return id
}
