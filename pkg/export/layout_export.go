// Package export 将计算好的网格布局导出为 YAML 文档或 PNG 示意图
package export

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gopkg.in/yaml.v3"

	"github.com/decker502/gridlayout/pkg/config"
	"github.com/decker502/gridlayout/pkg/grid"
)

// Document 导出的布局文档
type Document struct {
	LayoutID    string            `yaml:"layoutId"`
	GridID      string            `yaml:"gridId"`
	GeneratedAt time.Time         `yaml:"generatedAt"`
	Width       float64           `yaml:"width"`
	Depth       float64           `yaml:"depth"`
	CellSize    float64           `yaml:"cellSize"`
	Origin      grid.Corner       `yaml:"origin"`
	BoundsMode  string            `yaml:"boundsMode"`
	CountX      int               `yaml:"countX"`
	CountZ      int               `yaml:"countZ"`
	Corners     CornerSet         `yaml:"corners"`
	SizeOptions []grid.SizeOption `yaml:"sizeOptions"`
	Cells       []CellRecord      `yaml:"cells"`
}

// Point 三维坐标
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// CornerSet 网格四角
type CornerSet struct {
	BottomLeft  Point `yaml:"bottomLeft"`
	BottomRight Point `yaml:"bottomRight"`
	TopLeft     Point `yaml:"topLeft"`
	TopRight    Point `yaml:"topRight"`
}

// CellRecord 单个格子
type CellRecord struct {
	X        int   `yaml:"x"`
	Z        int   `yaml:"z"`
	Position Point `yaml:"position"`
}

func toPoint(v grid.Vec3) Point {
	return Point{X: v.X, Y: v.Y, Z: v.Z}
}

// BuildDocument 按配置计算布局并生成文档
// sizeName 非空时先启用该候选尺寸
func BuildDocument(cfg *config.GridConfig, sizeName string, now time.Time) (*Document, *grid.GridLayout, error) {
	spec := cfg.Spec()
	options := grid.EnumerateDivisorSizes(spec.Width, spec.Depth)
	if sizeName != "" {
		selected, _, ok := grid.SelectSize(options, sizeName)
		if !ok {
			return nil, nil, fmt.Errorf("size %q is not a divisor of %vx%v", sizeName, spec.Width, spec.Depth)
		}
		options = selected
	}
	spec.CellSize = grid.ActiveSize(options, spec.CellSize)

	layout, err := grid.LayoutWithMode(cfg.AnchorVec(), spec, cfg.Mode())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute layout: %w", err)
	}

	doc := &Document{
		LayoutID:    uuid.NewString(),
		GridID:      cfg.ID,
		GeneratedAt: now.UTC(),
		Width:       spec.Width,
		Depth:       spec.Depth,
		CellSize:    spec.CellSize,
		Origin:      spec.Origin,
		BoundsMode:  cfg.Mode().String(),
		CountX:      layout.CountX,
		CountZ:      layout.CountZ,
		Corners: CornerSet{
			BottomLeft:  toPoint(layout.Bounds.BottomLeft),
			BottomRight: toPoint(layout.Bounds.BottomRight),
			TopLeft:     toPoint(layout.Bounds.TopLeft),
			TopRight:    toPoint(layout.Bounds.TopRight),
		},
		SizeOptions: options,
		Cells:       make([]CellRecord, 0, layout.CellCount()),
	}
	layout.ForEach(func(c grid.Cell) {
		doc.Cells = append(doc.Cells, CellRecord{X: c.Index.X, Z: c.Index.Z, Position: toPoint(c.WorldPosition)})
	})
	return doc, layout, nil
}

// WriteYAML 将文档写为 YAML
func WriteYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode layout document: %w", err)
	}
	return enc.Close()
}

// NewPlot 生成布局示意图：格子中心散点 + 网格边界
func NewPlot(layout *grid.GridLayout, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Z"

	b := layout.Bounds
	outline := plotter.XYs{
		{X: b.BottomLeft.X, Y: b.BottomLeft.Z},
		{X: b.BottomRight.X, Y: b.BottomRight.Z},
		{X: b.TopRight.X, Y: b.TopRight.Z},
		{X: b.TopLeft.X, Y: b.TopLeft.Z},
		{X: b.BottomLeft.X, Y: b.BottomLeft.Z},
	}
	boundsLine, err := plotter.NewLine(outline)
	if err != nil {
		return nil, fmt.Errorf("failed to create bounds line: %w", err)
	}
	boundsLine.Width = vg.Points(1)
	boundsLine.Color = color.RGBA{A: 255}
	p.Add(boundsLine)
	p.Legend.Add("bounds", boundsLine)

	if layout.CellCount() > 0 {
		centers := make(plotter.XYs, 0, layout.CellCount())
		layout.ForEach(func(c grid.Cell) {
			centers = append(centers, plotter.XY{X: c.WorldPosition.X, Y: c.WorldPosition.Z})
		})
		scatter, err := plotter.NewScatter(centers)
		if err != nil {
			return nil, fmt.Errorf("failed to create cell scatter: %w", err)
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(2)
		scatter.GlyphStyle.Color = color.RGBA{R: 220, G: 160, A: 255}
		p.Add(scatter)
		p.Legend.Add("cells", scatter)

		// 第一个格子单独标出，表示起点角
		first, err := plotter.NewScatter(centers[:1])
		if err != nil {
			return nil, fmt.Errorf("failed to create origin marker: %w", err)
		}
		first.GlyphStyle.Shape = draw.CrossGlyph{}
		first.GlyphStyle.Radius = vg.Points(4)
		first.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
		p.Add(first)
		p.Legend.Add("cell (0,0)", first)
	}

	return p, nil
}

// SavePlot 保存布局示意图，格式由扩展名决定（.png/.svg/.pdf）
func SavePlot(layout *grid.GridLayout, title, path string) error {
	p, err := NewPlot(layout, title)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}
