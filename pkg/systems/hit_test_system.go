package systems

import (
	"sort"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/vmath"
)

// Hit 点击检测结果
type Hit struct {
	Entity ecs.EntityID
	Layer  components.HitLayer
	Found  bool
}

// HitTestSystem 把指针坐标解析为被点中的实体
//
// 检测顺序：按 HitLayer 升序（道具 → Boss → 普通实体），
// 同一层内最近创建的实体优先（画在最上面的先被点中）。
// 只返回第一个命中的实体，一次点击最多影响一个目标。
type HitTestSystem struct {
	entityManager *ecs.EntityManager
}

// NewHitTestSystem 创建点击检测系统
func NewHitTestSystem(em *ecs.EntityManager) *HitTestSystem {
	return &HitTestSystem{entityManager: em}
}

// Resolve 返回 (x, y) 处优先级最高的可点击实体
// 命中条件为距离严格小于 ClickableComponent.Radius
func (s *HitTestSystem) Resolve(x, y float64) Hit {
	ids := ecs.NewestFirst(ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.ClickableComponent,
	](s.entityManager))

	type candidate struct {
		id    ecs.EntityID
		layer components.HitLayer
	}
	candidates := make([]candidate, 0, len(ids))
	for _, id := range ids {
		click, _ := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id)
		if !click.IsEnabled {
			continue
		}
		if life, ok := ecs.GetComponent[*components.LifeStateComponent](s.entityManager, id); ok && life.State != components.LifeAlive {
			continue
		}
		candidates = append(candidates, candidate{id, click.Layer})
	}
	// 稳定排序保持同层内的倒序
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].layer < candidates[j].layer
	})

	for _, c := range candidates {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, c.id)
		click, _ := ecs.GetComponent[*components.ClickableComponent](s.entityManager, c.id)
		if vmath.Dist(x, y, pos.X, pos.Y) < click.Radius {
			return Hit{Entity: c.id, Layer: c.layer, Found: true}
		}
	}
	return Hit{}
}

// Within 返回圆心 (x, y)、半径 radius 内的存活实体（不含 exclude），按创建顺序
// 用于爆炸等范围效果
func (s *HitTestSystem) Within(x, y, radius float64, exclude ecs.EntityID) []ecs.EntityID {
	var out []ecs.EntityID
	ids := ecs.GetEntitiesWith2[
		*components.PositionComponent,
		*components.BugComponent,
	](s.entityManager)
	for _, id := range ids {
		if id == exclude {
			continue
		}
		if life, ok := ecs.GetComponent[*components.LifeStateComponent](s.entityManager, id); ok && life.State != components.LifeAlive {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if vmath.Dist(x, y, pos.X, pos.Y) < radius {
			out = append(out, id)
		}
	}
	return out
}
