package entities

import (
	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/types"
)

// ThoughtTimerName 想法气泡计时器的名称
const ThoughtTimerName = "thought"

// NewMachineEntity 在 (x, y) 创建处于关闭状态的机器
// 点击画布任意位置都会打扰机器，因此不添加 ClickableComponent
func NewMachineEntity(em *ecs.EntityManager, cfg *config.MachineConfig, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.VelocityComponent{})

	neutral, _ := cfg.Mood("neutral")
	col, err := types.ParseHexColor(neutral.Color)
	if err != nil {
		col = types.MustHexColor("#d3d3d3")
	}
	ecs.AddComponent(em, id, &components.MachineComponent{
		Size:   cfg.Size,
		Mood:   "neutral",
		Energy: cfg.MaxEnergy,
		Scale:  1,
		Color:  col,
	})
	ecs.AddComponent(em, id, &components.TimerComponent{
		Name:    ThoughtTimerName,
		IsReady: true,
	})
	return id
}
