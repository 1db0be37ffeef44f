package systems

import (
	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/vmath"
)

// MovementSystem 按速度推进实体位置
type MovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager) *MovementSystem {
	return &MovementSystem{entityManager: em}
}

// Update 推进所有拥有位置和速度的实体
// speedScale 为全局时间缩放（慢动作 0.3，冻结 0）
func (s *MovementSystem) Update(dt, speedScale float64) {
	move(s.entityManager, ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.entityManager), dt, speedScale)
}

// MoveWith 只推进同时拥有组件 T 的实体（如只让虫子受慢动作影响）
func MoveWith[T any](em *ecs.EntityManager, dt, speedScale float64) {
	move(em, ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.VelocityComponent,
		T,
	](em), dt, speedScale)
}

func move(em *ecs.EntityManager, entities []ecs.EntityID, dt, speedScale float64) {
	if speedScale <= 0 {
		return
	}
	step := dt * speedScale
	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		pos.X += vel.VX * step
		pos.Y += vel.VY * step
	}
}

// Escaped 返回离开边界超过 margin 的实体（需同时拥有组件 T，如 *BugComponent）
func Escaped[T any](em *ecs.EntityManager, bounds vmath.Bounds, margin float64) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, T](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if vmath.OutOfBounds(vmath.Vec2{X: pos.X, Y: pos.Y}, bounds, margin) {
			out = append(out, id)
		}
	}
	return out
}
