package config

import (
	"fmt"
	"math"
	"os"

	"github.com/decker502/gridlayout/pkg/grid"
	"gopkg.in/yaml.v3"
)

// GridConfig 网格配置数据结构
// 对应编辑器检视面板中的全部字段
type GridConfig struct {
	ID           string       `yaml:"id"`           // 网格ID，用作持久化选中尺寸的键，如 "lawn-front"
	Name         string       `yaml:"name"`         // 显示名称（可选）
	Width        float64      `yaml:"width"`        // 网格宽度（X 方向）
	Depth        float64      `yaml:"depth"`        // 网格深度（Z 方向）
	CellSize     float64      `yaml:"cellSize"`     // 初始格子尺寸，默认 1
	MaxDimension int          `yaml:"maxDimension"` // 单边最大尺寸，默认 999
	Origin       grid.Corner  `yaml:"origin"`       // 起点角，默认 bottomLeft
	CellSpacing  float64      `yaml:"cellSpacing"`  // 格子线框内缩量 [0, 0.99]，默认 0.5
	BoundsMode   string       `yaml:"boundsMode"`   // 四角计算模式："mirrored"（默认）或 "legacy"
	Anchor       AnchorConfig `yaml:"anchor"`       // 网格中心的世界坐标
	Render       *RenderFlags `yaml:"render"`       // 编辑器可视化开关（可选）
}

// AnchorConfig 网格中心（宿主变换位置）
type AnchorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// RenderFlags YAML 中的可视化开关，未填写的字段保持默认值 true
type RenderFlags struct {
	DisplayGridBounds *bool `yaml:"displayGridBounds"`
	DisplayCorners    *bool `yaml:"displayCorners"`
	DisplayCells      *bool `yaml:"displayCells"`
	DisplayCellInfo   *bool `yaml:"displayCellInfo"`
}

// RenderOptions 编辑器可视化选项（普通字段，运行时可直接切换）
type RenderOptions struct {
	DisplayGridBounds bool
	DisplayCorners    bool
	DisplayCells      bool
	DisplayCellInfo   bool
	CellSpacing       float64
}

// 默认值常量
const (
	DefaultCellSize    = 1.0
	DefaultCellSpacing = 0.5
	MaxCellSpacing     = 0.99
)

// DefaultGridConfig 返回默认网格配置（10x10，格子尺寸 1）
func DefaultGridConfig() *GridConfig {
	cfg := &GridConfig{
		ID:           "default",
		Name:         "Default Grid",
		Width:        10,
		Depth:        10,
		CellSize:     DefaultCellSize,
		MaxDimension: grid.DefaultMaxDimension,
		Origin:       grid.BottomLeft,
		CellSpacing:  DefaultCellSpacing,
	}
	applyGridDefaults(cfg)
	return cfg
}

// LoadGridConfig 从YAML文件加载网格配置
// 参数：
//
//	filepath - 配置文件路径（相对或绝对路径）
//
// 返回：
//
//	*GridConfig - 解析后的网格配置
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadGridConfig(filepath string) (*GridConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid config file %s: %w", filepath, err)
	}
	return ParseGridConfig(data, filepath)
}

// ParseGridConfig 解析 YAML 数据，source 仅用于错误信息
func ParseGridConfig(data []byte, source string) (*GridConfig, error) {
	// 预填默认值，YAML 中出现的字段会覆盖它们（允许显式写 cellSpacing: 0）
	cfg := GridConfig{
		CellSize:     DefaultCellSize,
		MaxDimension: grid.DefaultMaxDimension,
		CellSpacing:  DefaultCellSpacing,
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse grid config YAML from %s: %w", source, err)
	}

	applyGridDefaults(&cfg)

	if err := validateGridConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid grid config in %s: %w", source, err)
	}
	return &cfg, nil
}

// applyGridDefaults 为缺失的可选字段设置默认值
func applyGridDefaults(cfg *GridConfig) {
	if cfg.ID == "" {
		cfg.ID = "default"
	}
	if cfg.BoundsMode == "" {
		cfg.BoundsMode = grid.BoundsMirrored.String()
	}
	if cfg.Render == nil {
		cfg.Render = &RenderFlags{}
	}
}

// validateGridConfig 验证网格配置的合法性
func validateGridConfig(cfg *GridConfig) error {
	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative, got %v", cfg.Width)
	}
	if cfg.Depth < 0 {
		return fmt.Errorf("depth cannot be negative, got %v", cfg.Depth)
	}
	if !isFinite(cfg.Width) || !isFinite(cfg.Depth) {
		return fmt.Errorf("width and depth must be finite numbers, got %vx%v", cfg.Width, cfg.Depth)
	}
	if !isFinite(cfg.CellSize) || !isFinite(cfg.CellSpacing) {
		return fmt.Errorf("cellSize and cellSpacing must be finite numbers, got %v/%v", cfg.CellSize, cfg.CellSpacing)
	}
	if cfg.CellSize <= 0 {
		return fmt.Errorf("cellSize must be greater than zero, got %v", cfg.CellSize)
	}
	if cfg.MaxDimension <= 0 {
		return fmt.Errorf("maxDimension must be positive, got %d", cfg.MaxDimension)
	}
	if cfg.CellSpacing < 0 || cfg.CellSpacing > MaxCellSpacing {
		return fmt.Errorf("cellSpacing must be between 0 and %v, got %v", MaxCellSpacing, cfg.CellSpacing)
	}
	if _, err := grid.ParseBoundsMode(cfg.BoundsMode); err != nil {
		return err
	}
	return nil
}

// Spec 转换为计算核心使用的 grid.Spec
func (c *GridConfig) Spec() grid.Spec {
	return grid.Spec{
		Width:        c.Width,
		Depth:        c.Depth,
		CellSize:     c.CellSize,
		MaxDimension: c.MaxDimension,
		Origin:       c.Origin,
	}
}

// AnchorVec 返回网格中心的世界坐标
func (c *GridConfig) AnchorVec() grid.Vec3 {
	return grid.Vec3{X: c.Anchor.X, Y: c.Anchor.Y, Z: c.Anchor.Z}
}

// Mode 返回四角计算模式（校验后不会失败）
func (c *GridConfig) Mode() grid.BoundsMode {
	mode, _ := grid.ParseBoundsMode(c.BoundsMode)
	return mode
}

// RenderOptions 将 YAML 开关展开为运行时选项
func (c *GridConfig) RenderOptions() RenderOptions {
	flags := c.Render
	if flags == nil {
		flags = &RenderFlags{}
	}
	return RenderOptions{
		DisplayGridBounds: boolOr(flags.DisplayGridBounds, true),
		DisplayCorners:    boolOr(flags.DisplayCorners, true),
		DisplayCells:      boolOr(flags.DisplayCells, true),
		DisplayCellInfo:   boolOr(flags.DisplayCellInfo, true),
		CellSpacing:       c.CellSpacing,
	}
}

// isFinite YAML 中的 .nan / .inf 会被解码为对应的浮点值
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
