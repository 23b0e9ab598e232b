package entities

import (
	"testing"

	"github.com/decker502/gridlayout/pkg/components"
	"github.com/decker502/gridlayout/pkg/ecs"
	"github.com/decker502/gridlayout/pkg/grid"
)

// TestFormatCellLabel 测试格子标签格式
func TestFormatCellLabel(t *testing.T) {
	tests := []struct {
		name string
		idx  grid.CellIndex
		pos  grid.Vec3
		want string
	}{
		{"原点", grid.CellIndex{X: 0, Z: 0}, grid.Vec3{}, "0, 0\n(0.0, 0.0, 0.0)"},
		{"负坐标", grid.CellIndex{X: 2, Z: 5}, grid.Vec3{X: -1.5, Y: 0, Z: 3.75}, "2, 5\n(-1.5, 0.0, 3.8)"},
		{"大索引", grid.CellIndex{X: 998, Z: 12}, grid.Vec3{X: 100, Y: 2, Z: -7}, "998, 12\n(100.0, 2.0, -7.0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCellLabel(tt.idx, tt.pos); got != tt.want {
				t.Errorf("FormatCellLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestCellFactoryInstantiate 测试格子实体创建
func TestCellFactoryInstantiate(t *testing.T) {
	em := ecs.NewEntityManager()
	root := em.CreateEntity()
	factory := NewCellFactory(em)

	cell := grid.Cell{Index: grid.CellIndex{X: 1, Z: 2}, WorldPosition: grid.Vec3{X: 3, Z: 4}}
	id := factory.Instantiate(root, cell, "1, 2", 2)

	if parent, ok := em.Parent(id); !ok || parent != root {
		t.Errorf("cell entity should be a child of root, got parent=%d ok=%v", parent, ok)
	}

	cellComp, ok := ecs.GetComponent[*components.CellComponent](em, id)
	if !ok || cellComp.Index != cell.Index {
		t.Errorf("CellComponent mismatch: %+v", cellComp)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || pos.Position != cell.WorldPosition {
		t.Errorf("PositionComponent mismatch: %+v", pos)
	}

	label, ok := ecs.GetComponent[*components.LabelComponent](em, id)
	if !ok {
		t.Fatal("LabelComponent missing")
	}
	if label.Text != "1, 2" || label.CharacterSize != 2 || !label.Visible {
		t.Errorf("LabelComponent mismatch: %+v", label)
	}
}
