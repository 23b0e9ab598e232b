package components

import (
	"github.com/decker502/gridlayout/pkg/config"
	"github.com/decker502/gridlayout/pkg/grid"
)

// GridComponent 标识网格根实体，保存网格的输入参数和最近一次计算结果
//
// Layout、SizeOptions 等都是派生数据，每次参数变化时整体重算，不做增量更新
type GridComponent struct {
	// ID 网格标识，用作选中尺寸持久化的键
	ID string

	// Spec 当前网格参数（CellSize 为当前生效的格子尺寸）
	Spec grid.Spec

	// BoundsMode 四角计算模式
	BoundsMode grid.BoundsMode

	// SizeOptions 能同时整除宽和深的候选尺寸
	SizeOptions []grid.SizeOption

	// LastSizedWidth/LastSizedDepth 上次生成候选列表时的网格尺寸
	// 尺寸不变时保留列表（以及其中的启用标记）
	LastSizedWidth float64
	LastSizedDepth float64
	SizesComputed  bool

	// Layout 最近一次计算的布局，生成前为 nil
	Layout *grid.GridLayout

	// Render 编辑器可视化选项
	Render config.RenderOptions

	// Hover 鼠标悬停的格子
	Hover    grid.CellIndex
	HasHover bool
}
