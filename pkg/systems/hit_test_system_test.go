package systems

import (
	"testing"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
)

func addClickable(em *ecs.EntityManager, x, y, radius float64, layer components.HitLayer) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.ClickableComponent{Radius: radius, Layer: layer, IsEnabled: true})
	ecs.AddComponent(em, id, &components.LifeStateComponent{State: components.LifeAlive})
	return id
}

func TestHitTestSystem_Priority(t *testing.T) {
	em := ecs.NewEntityManager()
	older := addClickable(em, 100, 100, 20, components.LayerEntity)
	newer := addClickable(em, 105, 100, 20, components.LayerEntity)
	hs := NewHitTestSystem(em)

	if hit := hs.Resolve(102, 100); !hit.Found || hit.Entity != newer {
		t.Errorf("overlapping bugs: got %+v, want newest %d", hit, newer)
	}

	boss := addClickable(em, 100, 100, 60, components.LayerBoss)
	if hit := hs.Resolve(102, 100); hit.Entity != boss {
		t.Errorf("boss should beat bugs: got %+v", hit)
	}

	powerUp := addClickable(em, 110, 100, 20, components.LayerPowerUp)
	if hit := hs.Resolve(102, 100); hit.Entity != powerUp || hit.Layer != components.LayerPowerUp {
		t.Errorf("power-up should beat boss: got %+v", hit)
	}

	_ = older
}

func TestHitTestSystem_StrictRadius(t *testing.T) {
	em := ecs.NewEntityManager()
	addClickable(em, 0, 0, 10, components.LayerEntity)
	hs := NewHitTestSystem(em)

	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{9.99, 0, true},
		{10, 0, false}, // 边界上不算命中
		{6, 8, false},
		{5, 8, true},
		{100, 100, false},
	}
	for _, tt := range tests {
		if got := hs.Resolve(tt.x, tt.y).Found; got != tt.want {
			t.Errorf("Resolve(%v, %v).Found = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitTestSystem_SkipsDisabledAndDying(t *testing.T) {
	em := ecs.NewEntityManager()
	hs := NewHitTestSystem(em)

	disabled := addClickable(em, 0, 0, 10, components.LayerEntity)
	click, _ := ecs.GetComponent[*components.ClickableComponent](em, disabled)
	click.IsEnabled = false

	dying := addClickable(em, 0, 0, 10, components.LayerEntity)
	life, _ := ecs.GetComponent[*components.LifeStateComponent](em, dying)
	life.State = components.LifeDying

	destroyed := addClickable(em, 0, 0, 10, components.LayerEntity)
	em.DestroyEntity(destroyed)

	if hit := hs.Resolve(0, 0); hit.Found {
		t.Errorf("expected no hit, got %+v", hit)
	}
}

func TestHitTestSystem_Within(t *testing.T) {
	em := ecs.NewEntityManager()
	hs := NewHitTestSystem(em)

	mk := func(x, y float64) ecs.EntityID {
		id := addClickable(em, x, y, 10, components.LayerEntity)
		ecs.AddComponent(em, id, &components.BugComponent{Size: 10})
		return id
	}
	center := mk(0, 0)
	near := mk(50, 0)
	mk(150, 0)

	got := hs.Within(0, 0, 100, center)
	if len(got) != 1 || got[0] != near {
		t.Errorf("Within = %v, want [%d]", got, near)
	}
}
