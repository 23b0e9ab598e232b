package components

import "github.com/decker502/gridlayout/pkg/grid"

// CellComponent 由格子预制体实例化出的格子对象
type CellComponent struct {
	Index grid.CellIndex
}

// PositionComponent 实体的世界坐标
type PositionComponent struct {
	Position grid.Vec3
}

// LabelComponent 格子上的文字标签
type LabelComponent struct {
	Text string
	// CharacterSize 字符尺寸（世界单位），与格子尺寸一致
	CharacterSize float64
	// Visible 是否显示（由 DisplayCellInfo 控制）
	Visible bool
}
