package entities

import (
	"fmt"

	"github.com/decker502/gridlayout/pkg/components"
	"github.com/decker502/gridlayout/pkg/ecs"
	"github.com/decker502/gridlayout/pkg/grid"
)

// Instantiator 格子预制体实例化接口
// 给定世界坐标和显示文本，创建一个可视对象；对象的生命周期由宿主管理
type Instantiator interface {
	Instantiate(parent ecs.EntityID, cell grid.Cell, label string, characterSize float64) ecs.EntityID
}

// CellFactory 基于 EntityManager 的格子实例化器
// 每个格子创建为网格根实体的子实体，带有 Cell、Position、Label 组件
type CellFactory struct {
	entityManager *ecs.EntityManager
}

// NewCellFactory 创建格子工厂
func NewCellFactory(em *ecs.EntityManager) *CellFactory {
	return &CellFactory{entityManager: em}
}

// Instantiate 在 parent 下创建一个格子实体
func (f *CellFactory) Instantiate(parent ecs.EntityID, cell grid.Cell, label string, characterSize float64) ecs.EntityID {
	id := f.entityManager.CreateChild(parent)
	ecs.AddComponent(f.entityManager, id, &components.CellComponent{Index: cell.Index})
	ecs.AddComponent(f.entityManager, id, &components.PositionComponent{Position: cell.WorldPosition})
	ecs.AddComponent(f.entityManager, id, &components.LabelComponent{
		Text:          label,
		CharacterSize: characterSize,
		Visible:       true,
	})
	return id
}

// FormatCellLabel 生成格子标签文本
// 格式: "x, z\n(wx, wy, wz)"，坐标保留一位小数
func FormatCellLabel(idx grid.CellIndex, pos grid.Vec3) string {
	return fmt.Sprintf("%d, %d\n%s", idx.X, idx.Z, FormatVec3(pos))
}

// FormatVec3 以 "(x, y, z)" 形式输出向量，保留一位小数
func FormatVec3(v grid.Vec3) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}
