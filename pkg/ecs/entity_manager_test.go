package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

type testHealthComponent struct {
	Current int
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID从1开始并递增
	if id1 != 1 || id2 != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", id1, id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestGenericAndReflectionAPIsAgree(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 反射版本添加，泛型版本读取
	em.AddComponent(id, &testVelocityComponent{VX: 3})
	vel, ok := GetComponent[*testVelocityComponent](em, id)
	if !ok || vel.VX != 3 {
		t.Fatalf("GetComponent[T] = %v, %v; want VX=3", vel, ok)
	}

	// 泛型版本添加，反射版本读取
	AddComponent(em, id, &testHealthComponent{Current: 7})
	if !em.HasComponent(id, reflect.TypeOf(&testHealthComponent{})) {
		t.Error("component added through AddComponent[T] should be visible to HasComponent")
	}

	RemoveComponent[*testHealthComponent](em, id)
	if HasComponent[*testHealthComponent](em, id) {
		t.Error("component should be removed")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)
	em.DestroyEntity(id) // 重复标记不应产生问题

	// 清理前组件仍可读取，但实体已不再存活，也不会出现在查询结果中
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Components should still exist before cleanup")
	}
	if em.IsAlive(id) {
		t.Error("Marked entity should not be alive")
	}
	if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 0 {
		t.Errorf("Marked entity should be skipped by queries, got %v", got)
	}

	em.RemoveMarkedEntities()
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.Count() != 0 {
		t.Errorf("Count() = %d, want 0", em.Count())
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected only id1, got %v", both)
	}

	// 结果按创建顺序排列
	posEntities := GetEntitiesWith1[*testPositionComponent](em)
	if len(posEntities) != 2 || posEntities[0] != id1 || posEntities[1] != id2 {
		t.Errorf("Expected [id1 id2] in creation order, got %v", posEntities)
	}
}

func TestNewestFirst(t *testing.T) {
	ids := []EntityID{1, 5, 3}
	got := NewestFirst(ids)
	want := []EntityID{5, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NewestFirst(%v) = %v, want %v", ids, got, want)
		}
	}
	// 原切片不应被修改
	if ids[0] != 1 || ids[1] != 5 {
		t.Errorf("input slice was modified: %v", ids)
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 3; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{})
	}
	em.DestroyEntity(1)

	em.Clear()

	if em.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", em.Count())
	}
	// ID 不回退
	if next := em.CreateEntity(); next != 4 {
		t.Errorf("first ID after Clear = %d, want 4", next)
	}
}
