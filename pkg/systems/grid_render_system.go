package systems

import (
	"image/color"

	"github.com/decker502/gridlayout/pkg/components"
	"github.com/decker502/gridlayout/pkg/config"
	"github.com/decker502/gridlayout/pkg/ecs"
	"github.com/decker502/gridlayout/pkg/grid"
	"github.com/decker502/gridlayout/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 网格可视化颜色
var (
	boundsColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	cornerColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	cellColor   = color.RGBA{R: 255, G: 235, B: 4, A: 255}
	hoverColor  = color.RGBA{R: 255, G: 120, B: 0, A: 160}
)

// GridRenderSystem 绘制网格的编辑器可视化（边界、四角、格子线框、格子标签）
type GridRenderSystem struct {
	entityManager *ecs.EntityManager
	gridSystem    *GridSystem
}

// GizmoRect 屏幕空间矩形（左上角 + 宽高）
type GizmoRect struct {
	X, Y, W, H float32
}

// NewGridRenderSystem 创建网格渲染系统
func NewGridRenderSystem(em *ecs.EntityManager, gs *GridSystem) *GridRenderSystem {
	return &GridRenderSystem{
		entityManager: em,
		gridSystem:    gs,
	}
}

// Draw 按可视化选项绘制网格
func (s *GridRenderSystem) Draw(screen *ebiten.Image, cam *components.CameraComponent) {
	g := s.gridSystem.Grid()
	opts := g.Render

	if opts.DisplayCorners && g.Layout != nil {
		r := float32(config.CornerGizmoRadius * cam.PixelsPerUnit)
		for _, c := range grid.Corners {
			x, y := utils.WorldToScreen(cam, g.Layout.Bounds.Corner(c))
			vector.StrokeCircle(screen, float32(x), float32(y), r, 1, cornerColor, true)
		}
	}

	if opts.DisplayGridBounds {
		rect := BoundsRect(cam, s.gridSystem.Anchor(), g.Spec.Width, g.Spec.Depth)
		vector.StrokeRect(screen, rect.X, rect.Y, rect.W, rect.H, 1, boundsColor, true)
	}

	if opts.DisplayCells && g.Layout != nil {
		for _, rect := range CellRects(cam, g.Layout, opts.CellSpacing) {
			vector.StrokeRect(screen, rect.X, rect.Y, rect.W, rect.H, 1, cellColor, true)
		}
	}

	if g.HasHover && g.Layout != nil {
		if cell, ok := g.Layout.Cell(g.Hover); ok {
			rect := CellRect(cam, cell.WorldPosition, g.Spec.CellSize, opts.CellSpacing)
			vector.DrawFilledRect(screen, rect.X, rect.Y, rect.W, rect.H, hoverColor, true)
		}
	}

	s.drawLabels(screen, cam)
}

// drawLabels 绘制可见的格子标签
func (s *GridRenderSystem) drawLabels(screen *ebiten.Image, cam *components.CameraComponent) {
	for _, id := range s.entityManager.Children(s.gridSystem.GridEntity()) {
		label, ok := ecs.GetComponent[*components.LabelComponent](s.entityManager, id)
		if !ok || !label.Visible {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		// 标签太小时不绘制，避免文字重叠
		if label.CharacterSize*cam.PixelsPerUnit < config.MinLabelPixels {
			continue
		}
		x, y := utils.WorldToScreen(cam, pos.Position)
		ebitenutil.DebugPrintAt(screen, label.Text, int(x)-config.LabelOffsetX, int(y)-config.LabelOffsetY)
	}
}

// BoundsRect 以网格中心和完整（未限制）尺寸计算边界矩形
func BoundsRect(cam *components.CameraComponent, anchor grid.Vec3, width, depth float64) GizmoRect {
	topLeft := grid.Vec3{X: anchor.X - width/2, Z: anchor.Z + depth/2}
	x, y := utils.WorldToScreen(cam, topLeft)
	return GizmoRect{
		X: float32(x),
		Y: float32(y),
		W: float32(width * cam.PixelsPerUnit),
		H: float32(depth * cam.PixelsPerUnit),
	}
}

// CellRect 计算单个格子的线框矩形，边长为 cellSize - cellSpacing
func CellRect(cam *components.CameraComponent, center grid.Vec3, cellSize, cellSpacing float64) GizmoRect {
	side := cellSize - cellSpacing
	if side < 0 {
		side = 0
	}
	topLeft := grid.Vec3{X: center.X - side/2, Z: center.Z + side/2}
	x, y := utils.WorldToScreen(cam, topLeft)
	px := float32(side * cam.PixelsPerUnit)
	return GizmoRect{X: float32(x), Y: float32(y), W: px, H: px}
}

// CellRects 计算全部格子的线框矩形（x 优先顺序）
func CellRects(cam *components.CameraComponent, layout *grid.GridLayout, cellSpacing float64) []GizmoRect {
	rects := make([]GizmoRect, 0, layout.CellCount())
	layout.ForEach(func(c grid.Cell) {
		rects = append(rects, CellRect(cam, c.WorldPosition, layout.Spec.CellSize, cellSpacing))
	})
	return rects
}
