package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testCellComponent struct {
	X, Z int
}

type testLabelComponent struct {
	Text string
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// ID从1开始且唯一
	if id1 != 1 || id2 != 2 {
		t.Errorf("Entity IDs should be 1 and 2, got %d and %d", id1, id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount should be 2, got %d", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testCellComponent{X: 3, Z: 4})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testCellComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	cell := comp.(*testCellComponent)
	if cell.X != 3 || cell.Z != 4 {
		t.Errorf("Component data mismatch, expected (3, 4), got (%d, %d)", cell.X, cell.Z)
	}
}

func TestGenericComponentHelpers(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testLabelComponent](em, id) {
		t.Error("Should not have label before adding")
	}

	AddComponent(em, id, &testLabelComponent{Text: "0, 0"})

	label, ok := GetComponent[*testLabelComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find label")
	}
	if label.Text != "0, 0" {
		t.Errorf("Label text mismatch: %q", label.Text)
	}

	RemoveComponent[*testLabelComponent](em, id)
	if _, ok := GetComponent[*testLabelComponent](em, id); ok {
		t.Error("Label should be removed")
	}
}

func TestDestroyEntityDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testCellComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}
	if em.PendingDestroyCount() != 1 {
		t.Errorf("PendingDestroyCount should be 1, got %d", em.PendingDestroyCount())
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.PendingDestroyCount() != 0 {
		t.Error("Pending list should be empty after cleanup")
	}
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testCellComponent{X: i})
		if i%2 == 0 {
			em.AddComponent(id, &testLabelComponent{})
			ids = append(ids, id)
		}
	}

	got := GetEntitiesWith2[*testCellComponent, *testLabelComponent](em)
	if len(got) != len(ids) {
		t.Fatalf("Expected %d entities, got %d", len(ids), len(got))
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Errorf("Result should be sorted: index %d got %d want %d", i, got[i], ids[i])
		}
	}

	if n := len(GetEntitiesWith1[*testCellComponent](em)); n != 20 {
		t.Errorf("Expected 20 cell entities, got %d", n)
	}
}

func TestParentChildHierarchy(t *testing.T) {
	em := NewEntityManager()
	root := em.CreateEntity()

	c1 := em.CreateChild(root)
	c2 := em.CreateChild(root)
	grandChild := em.CreateChild(c1)

	if em.ChildCount(root) != 2 {
		t.Fatalf("root should have 2 children, got %d", em.ChildCount(root))
	}
	children := em.Children(root)
	if children[0] != c1 || children[1] != c2 {
		t.Errorf("Children order mismatch: %v", children)
	}
	if p, ok := em.Parent(grandChild); !ok || p != c1 {
		t.Errorf("grandChild parent should be %d, got %d (%v)", c1, p, ok)
	}

	// 重新挂载
	em.SetParent(c2, c1)
	if em.ChildCount(root) != 1 || em.ChildCount(c1) != 2 {
		t.Errorf("Reparent failed: root=%d c1=%d", em.ChildCount(root), em.ChildCount(c1))
	}

	// 解除父子关系
	em.SetParent(c2, 0)
	if _, ok := em.Parent(c2); ok {
		t.Error("c2 should have no parent")
	}
}

func TestDestroyChildrenImmediate(t *testing.T) {
	em := NewEntityManager()
	root := em.CreateEntity()
	for i := 0; i < 5; i++ {
		child := em.CreateChild(root)
		em.CreateChild(child)
	}

	removed := em.DestroyChildren(root, true)
	if removed != 5 {
		t.Errorf("Expected 5 removed children, got %d", removed)
	}
	if em.ChildCount(root) != 0 {
		t.Errorf("root should have no children, got %d", em.ChildCount(root))
	}
	// 只剩 root 本身
	if em.EntityCount() != 1 {
		t.Errorf("Only root should remain, got %d entities", em.EntityCount())
	}
}

func TestDestroyChildrenDeferred(t *testing.T) {
	em := NewEntityManager()
	root := em.CreateEntity()
	for i := 0; i < 3; i++ {
		em.CreateChild(root)
	}

	em.DestroyChildren(root, false)
	if em.ChildCount(root) != 3 {
		t.Error("Deferred destroy should keep children until cleanup")
	}

	em.RemoveMarkedEntities()
	if em.ChildCount(root) != 0 {
		t.Errorf("Children should be removed after cleanup, got %d", em.ChildCount(root))
	}
}
