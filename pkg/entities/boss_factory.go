package entities

import (
	"fmt"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/types"
)

// NewBossEntity 创建 Boss 实体
// Boss 初始静止，由 Boss 逻辑每隔 MoveInterval 秒随机改变方向
func NewBossEntity(em *ecs.EntityManager, cfg config.BossConfig, x, y float64, health int) (ecs.EntityID, error) {
	col, err := types.ParseHexColor(cfg.Color)
	if err != nil {
		return 0, fmt.Errorf("boss: %w", err)
	}
	if health < 1 {
		return 0, fmt.Errorf("boss health must be >= 1, got %d", health)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{})
	ecs.AddComponent(em, id, &components.BossComponent{
		Size:  cfg.Size,
		Phase: 1,
		Color: col,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: health,
		MaxHealth:     health,
	})
	ecs.AddComponent(em, id, &components.LifeStateComponent{State: components.LifeAlive})
	ecs.AddComponent(em, id, &components.ClickableComponent{
		Radius:    cfg.Size,
		Layer:     components.LayerBoss,
		IsEnabled: true,
	})
	return id, nil
}
