package entities

import (
	"fmt"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/types"
)

// BugSpawn 虫子的生成参数
type BugSpawn struct {
	X, Y   float64
	VX, VY float64 // 像素/秒
	// Scale 尺寸缩放（分裂出的子虫为 0.5），0 视为 1
	Scale float64
}

// NewBugEntity 按类别配置创建虫子实体
//
// 组件：Position、Velocity、Bug、Health、LifeState、Clickable（命中半径等于尺寸）
// 返回: 创建的实体ID；类别名、颜色或特殊行为配置无效时返回错误且不创建实体
func NewBugEntity(em *ecs.EntityManager, cat config.CategoryConfig, spawn BugSpawn) (ecs.EntityID, error) {
	category, err := types.ParseBugCategory(cat.Name)
	if err != nil {
		return 0, err
	}
	col, err := types.ParseHexColor(cat.Color)
	if err != nil {
		return 0, fmt.Errorf("category %q: %w", cat.Name, err)
	}
	trait, err := NewTrait(cat.Trait)
	if err != nil {
		return 0, fmt.Errorf("category %q: %w", cat.Name, err)
	}

	scale := spawn.Scale
	if scale <= 0 {
		scale = 1
	}
	size := cat.Size * scale

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: spawn.X, Y: spawn.Y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: spawn.VX, VY: spawn.VY})
	ecs.AddComponent(em, id, &components.BugComponent{
		Category:   category,
		Size:       size,
		Color:      col,
		ScoreValue: cat.Points,
		Trait:      trait,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: cat.Health,
		MaxHealth:     cat.Health,
	})
	ecs.AddComponent(em, id, &components.LifeStateComponent{State: components.LifeAlive})
	ecs.AddComponent(em, id, &components.ClickableComponent{
		Radius:    size,
		Layer:     components.LayerEntity,
		IsEnabled: true,
	})
	return id, nil
}

// NewTrait 把配置转换为特殊行为变体，nil 配置表示没有特殊行为
func NewTrait(cfg *config.TraitConfig) (components.Trait, error) {
	if cfg == nil {
		return nil, nil
	}
	switch cfg.Kind {
	case "split":
		scale := cfg.ChildScale
		if scale <= 0 {
			scale = 0.5
		}
		children := cfg.Children
		if children <= 0 {
			children = 2
		}
		return &components.SplitTrait{ChildScale: scale, Children: children}, nil
	case "explode":
		if cfg.Radius <= 0 {
			return nil, fmt.Errorf("explode trait needs a positive radius")
		}
		damage := cfg.Damage
		if damage <= 0 {
			damage = 1
		}
		return &components.ExplodeTrait{Radius: cfg.Radius, Damage: damage}, nil
	case "teleport":
		if cfg.Interval <= 0 {
			return nil, fmt.Errorf("teleport trait needs a positive interval")
		}
		return &components.TeleportTrait{Interval: cfg.Interval}, nil
	case "golden":
		return &components.GoldenTrait{Bonus: cfg.Bonus}, nil
	case "trap":
		return &components.TrapTrait{Penalty: cfg.Penalty}, nil
	default:
		return nil, fmt.Errorf("unknown trait kind %q", cfg.Kind)
	}
}
