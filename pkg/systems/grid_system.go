package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/gridlayout/pkg/components"
	"github.com/decker502/gridlayout/pkg/config"
	"github.com/decker502/gridlayout/pkg/ecs"
	"github.com/decker502/gridlayout/pkg/entities"
	"github.com/decker502/gridlayout/pkg/game"
	"github.com/decker502/gridlayout/pkg/grid"
)

// GridSystem 管理网格根实体及其格子子实体
//
// 两条生成路径：
//   - 编辑模式：参数变化后调用 Invalidate，下一个 Update 才真正重建（避免在回调中途修改对象）
//   - 运行模式：EnterPlayMode 时立即按启用的候选尺寸重建，并持久化选择
//
// 每次重建都是整体重算：先清空子实体，再按新布局逐格实例化
type GridSystem struct {
	entityManager *ecs.EntityManager
	store         *game.SelectionStore
	instantiator  entities.Instantiator
	gridEntity    ecs.EntityID

	playing      bool
	pendingRegen bool
}

// NewGridSystem 创建网格系统并创建网格根实体
// 参数:
//   - em: EntityManager 实例
//   - cfg: 网格配置
//   - store: 选中尺寸存储，可为 nil（不持久化）
//   - instantiator: 格子实例化器，为 nil 时使用 entities.CellFactory
func NewGridSystem(em *ecs.EntityManager, cfg *config.GridConfig, store *game.SelectionStore, instantiator entities.Instantiator) *GridSystem {
	if store == nil {
		store = game.NewSelectionStore(nil)
	}
	if instantiator == nil {
		instantiator = entities.NewCellFactory(em)
	}

	gs := &GridSystem{
		entityManager: em,
		store:         store,
		instantiator:  instantiator,
	}

	gs.gridEntity = em.CreateEntity()
	ecs.AddComponent(em, gs.gridEntity, &components.PositionComponent{Position: cfg.AnchorVec()})
	ecs.AddComponent(em, gs.gridEntity, &components.GridComponent{
		ID:         cfg.ID,
		Spec:       cfg.Spec(),
		BoundsMode: cfg.Mode(),
		Render:     cfg.RenderOptions(),
	})

	return gs
}

// GridEntity 返回网格根实体ID
func (s *GridSystem) GridEntity() ecs.EntityID {
	return s.gridEntity
}

// Grid 返回网格组件
func (s *GridSystem) Grid() *components.GridComponent {
	g, _ := ecs.GetComponent[*components.GridComponent](s.entityManager, s.gridEntity)
	return g
}

// Anchor 返回网格中心的世界坐标
func (s *GridSystem) Anchor() grid.Vec3 {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.gridEntity); ok {
		return pos.Position
	}
	return grid.Vec3{}
}

// Layout 返回最近一次计算的布局（可能为 nil）
func (s *GridSystem) Layout() *grid.GridLayout {
	return s.Grid().Layout
}

// IsPlaying 是否处于运行模式
func (s *GridSystem) IsPlaying() bool {
	return s.playing
}

// HasPendingRegeneration 是否有待执行的编辑模式重建
func (s *GridSystem) HasPendingRegeneration() bool {
	return s.pendingRegen
}

// Invalidate 标记网格需要在下一帧重建
func (s *GridSystem) Invalidate() {
	s.pendingRegen = true
}

// Update 清理延迟删除的实体，并执行挂起的编辑模式重建
func (s *GridSystem) Update(deltaTime float64) {
	s.entityManager.RemoveMarkedEntities()

	if !s.pendingRegen {
		return
	}
	s.pendingRegen = false

	// 运行模式下不响应编辑器重建
	if s.playing {
		return
	}
	if err := s.GenerateEditor(); err != nil {
		log.Printf("[GridSystem] Editor regeneration failed: %v", err)
	}
}

// EnterPlayMode 进入运行模式并立即生成网格
func (s *GridSystem) EnterPlayMode() error {
	s.playing = true
	return s.GenerateOnPlay()
}

// ExitPlayMode 回到编辑模式，下一帧按持久化的选择重建
func (s *GridSystem) ExitPlayMode() {
	s.playing = false
	s.Invalidate()
}

// GenerateEditor 编辑模式下重建网格
//
// 流程:
//  1. 网格尺寸变化时重新枚举候选尺寸
//  2. 从存储恢复运行模式中选中的尺寸，确定当前格子尺寸
//  3. 立即删除全部格子子实体并按新布局重新实例化
//  4. 清除存储中的选择（已同步回候选列表）
func (s *GridSystem) GenerateEditor() error {
	g := s.Grid()

	s.entityManager.DestroyChildren(s.gridEntity, true)

	s.refreshSizeOptions(g)

	name, err := s.store.Load(g.ID)
	if err != nil {
		log.Printf("[GridSystem] Failed to restore size selection: %v", err)
	}
	g.SizeOptions = grid.RestoreSelection(g.SizeOptions, name)
	g.Spec.CellSize = grid.ActiveSize(g.SizeOptions, g.Spec.CellSize)

	spawnErr := s.spawnCells(g)

	if err := s.store.Clear(g.ID); err != nil {
		log.Printf("[GridSystem] Failed to clear size selection: %v", err)
	}
	return spawnErr
}

// GenerateOnPlay 运行模式下生成网格
// 按启用的候选尺寸确定格子尺寸，并保存选择以便回到编辑模式时恢复
func (s *GridSystem) GenerateOnPlay() error {
	g := s.Grid()

	s.entityManager.DestroyChildren(s.gridEntity, false)

	if opt, ok := grid.ActiveOption(g.SizeOptions); ok {
		g.Spec.CellSize = opt.CellSize
		if err := s.store.Save(g.ID, opt.Name, opt.CellSize); err != nil {
			log.Printf("[GridSystem] Failed to persist size selection: %v", err)
		}
	}

	return s.spawnCells(g)
}

// refreshSizeOptions 网格尺寸变化时重新枚举候选尺寸
func (s *GridSystem) refreshSizeOptions(g *components.GridComponent) {
	if g.SizesComputed && g.LastSizedWidth == g.Spec.Width && g.LastSizedDepth == g.Spec.Depth {
		return
	}
	g.SizeOptions = grid.EnumerateDivisorSizes(g.Spec.Width, g.Spec.Depth)
	g.LastSizedWidth = g.Spec.Width
	g.LastSizedDepth = g.Spec.Depth
	g.SizesComputed = true
	log.Printf("[GridSystem] %d size options for %vx%v", len(g.SizeOptions), g.Spec.Width, g.Spec.Depth)
}

// spawnCells 计算布局并为每个格子实例化一个子实体
// 计算失败时布局置空（零个格子），返回错误
func (s *GridSystem) spawnCells(g *components.GridComponent) error {
	layout, err := grid.LayoutWithMode(s.Anchor(), g.Spec, g.BoundsMode)
	if err != nil {
		g.Layout = nil
		return fmt.Errorf("failed to compute layout for grid %s: %w", g.ID, err)
	}
	g.Layout = layout
	g.HasHover = false

	layout.ForEach(func(cell grid.Cell) {
		label := entities.FormatCellLabel(cell.Index, cell.WorldPosition)
		s.instantiator.Instantiate(s.gridEntity, cell, label, g.Spec.CellSize)
	})
	s.ApplyCellInfoVisibility()

	log.Printf("[GridSystem] Generated %dx%d cells (cellSize=%v, origin=%v)",
		layout.CountX, layout.CountZ, g.Spec.CellSize, g.Spec.Origin)
	return nil
}

// ApplyCellInfoVisibility 按 DisplayCellInfo 显示或隐藏所有格子标签
func (s *GridSystem) ApplyCellInfoVisibility() {
	visible := s.Grid().Render.DisplayCellInfo
	children := s.entityManager.Children(s.gridEntity)
	for i := len(children) - 1; i >= 0; i-- {
		if label, ok := ecs.GetComponent[*components.LabelComponent](s.entityManager, children[i]); ok {
			label.Visible = visible
		}
	}
}

// SetDimensions 修改网格尺寸
func (s *GridSystem) SetDimensions(width, depth float64) error {
	if !(width >= 0) || !(depth >= 0) || math.IsInf(width, 0) || math.IsInf(depth, 0) {
		return fmt.Errorf("%w: width=%v depth=%v", grid.ErrInvalidDimension, width, depth)
	}
	g := s.Grid()
	g.Spec.Width = width
	g.Spec.Depth = depth
	s.Invalidate()
	return nil
}

// SetOrigin 修改起点角
func (s *GridSystem) SetOrigin(origin grid.Corner) {
	s.Grid().Spec.Origin = origin
	s.Invalidate()
}

// SetAnchor 移动网格中心
func (s *GridSystem) SetAnchor(anchor grid.Vec3) {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.gridEntity); ok {
		pos.Position = anchor
	}
	s.Invalidate()
}

// SetRenderOptions 替换可视化选项（不需要重建，仅刷新标签可见性）
func (s *GridSystem) SetRenderOptions(opts config.RenderOptions) {
	s.Grid().Render = opts
	s.ApplyCellInfoVisibility()
}

// SelectSize 启用指定名称的候选尺寸
func (s *GridSystem) SelectSize(name string) error {
	g := s.Grid()
	options, _, ok := grid.SelectSize(g.SizeOptions, name)
	if !ok {
		return fmt.Errorf("unknown size option %q for grid %s", name, g.ID)
	}
	g.SizeOptions = options
	s.regenerateForMode()
	return nil
}

// CycleSize 按 delta 切换启用的候选尺寸
func (s *GridSystem) CycleSize(delta int) (grid.SizeOption, bool) {
	g := s.Grid()
	options, _, ok := grid.CycleSelection(g.SizeOptions, delta)
	if !ok {
		return grid.SizeOption{}, false
	}
	g.SizeOptions = options
	s.regenerateForMode()
	return grid.ActiveOption(options)
}

// regenerateForMode 编辑模式下延迟重建，运行模式下立即重建
func (s *GridSystem) regenerateForMode() {
	if !s.playing {
		s.Invalidate()
		return
	}
	if err := s.GenerateOnPlay(); err != nil {
		log.Printf("[GridSystem] Play regeneration failed: %v", err)
	}
}

// UpdateHover 根据世界坐标更新悬停格子
func (s *GridSystem) UpdateHover(world grid.Vec3) {
	g := s.Grid()
	if g.Layout == nil {
		g.HasHover = false
		return
	}
	g.Hover, g.HasHover = grid.WorldToCell(world, g.Spec, g.Layout.Bounds)
}
