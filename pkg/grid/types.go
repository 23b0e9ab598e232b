// Package grid 提供网格布局计算核心
//
// 本包是纯函数模块：给定网格占地尺寸（宽 × 深）、期望的格子尺寸、起点角
// 以及最大维度限制，计算：
//   - 每个轴向上的格子数量
//   - 网格四个角的世界坐标
//   - 任意 (x, z) 格子中心的世界坐标
//   - 能同时整除宽和深的候选格子尺寸
//
// # 坐标系统
//
// 网格位于 XZ 平面（Y 轴向上），与关卡编辑器的世界坐标一致：
//   - Right   = (1, 0, 0)
//   - Forward = (0, 0, 1)
//
// 所有计算都不持有状态，同一输入总是得到逐位相同的输出。
package grid

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 是网格使用的三维向量类型
type Vec3 = r3.Vec

var (
	// Right 世界坐标右方向
	Right = Vec3{X: 1}
	// Forward 世界坐标前方向
	Forward = Vec3{Z: 1}
)

// DefaultMaxDimension 网格单边的默认最大尺寸（限制编辑器开销）
const DefaultMaxDimension = 999

// Corner 格子编号的起点角
type Corner int

const (
	BottomLeft Corner = iota
	BottomRight
	TopLeft
	TopRight
)

// Corners 按声明顺序返回全部起点角，便于循环切换
var Corners = []Corner{BottomLeft, BottomRight, TopLeft, TopRight}

var cornerNames = map[Corner]string{
	BottomLeft:  "bottomLeft",
	BottomRight: "bottomRight",
	TopLeft:     "topLeft",
	TopRight:    "topRight",
}

// String 返回起点角的配置名称
func (c Corner) String() string {
	if name, ok := cornerNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}

// Next 返回循环顺序中的下一个起点角
func (c Corner) Next() Corner {
	return Corners[(int(c)+1)%len(Corners)]
}

// ParseCorner 解析起点角名称
// 支持 "bottomLeft"、"bottom_left"、"BottomLeft" 以及旧版编辑器的 "WorldBottomLeft" 写法
func ParseCorner(s string) (Corner, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimPrefix(key, "world")
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)

	for c, name := range cornerNames {
		if strings.ToLower(name) == key {
			return c, nil
		}
	}
	return BottomLeft, fmt.Errorf("unknown origin corner %q (valid: bottomLeft, bottomRight, topLeft, topRight)", s)
}

// MarshalYAML 以名称形式序列化起点角
func (c Corner) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML 从名称解析起点角
func (c *Corner) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseCorner(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Spec 描述一个网格的全部参数
type Spec struct {
	Width        float64 // 网格宽度（X 方向，世界单位）
	Depth        float64 // 网格深度（Z 方向，世界单位）
	CellSize     float64 // 格子边长，必须 > 0
	MaxDimension int     // 单边最大尺寸（格子数和半宽都受其限制）
	Origin       Corner  // 格子编号起点角
}

// Validate 检查 Spec 是否满足不变式
func (s Spec) Validate() error {
	if !(s.CellSize > 0) || math.IsInf(s.CellSize, 0) {
		return fmt.Errorf("%w: cellSize=%v", ErrInvalidCellSize, s.CellSize)
	}
	if !validDimension(s.Width) || !validDimension(s.Depth) {
		return fmt.Errorf("%w: width=%v depth=%v", ErrInvalidDimension, s.Width, s.Depth)
	}
	if s.MaxDimension <= 0 {
		return fmt.Errorf("%w: maxDimension=%d", ErrInvalidDimension, s.MaxDimension)
	}
	return nil
}

// Bounds 网格的四个角（世界坐标）
type Bounds struct {
	BottomLeft  Vec3
	BottomRight Vec3
	TopLeft     Vec3
	TopRight    Vec3

	Anchor    Vec3    // 网格中心（宿主变换位置）
	HalfWidth float64 // 限制后的半宽
	HalfDepth float64 // 限制后的半深
}

// Corner 返回指定起点角的世界坐标
func (b Bounds) Corner(c Corner) Vec3 {
	switch c {
	case BottomRight:
		return b.BottomRight
	case TopLeft:
		return b.TopLeft
	case TopRight:
		return b.TopRight
	default:
		return b.BottomLeft
	}
}

// Contains 判断点是否位于网格矩形内（含边界，忽略 Y）
func (b Bounds) Contains(p Vec3) bool {
	dx := p.X - b.Anchor.X
	dz := p.Z - b.Anchor.Z
	return dx >= -b.HalfWidth-epsilon && dx <= b.HalfWidth+epsilon &&
		dz >= -b.HalfDepth-epsilon && dz <= b.HalfDepth+epsilon
}

// CellIndex 格子索引，0 ≤ X < countX，0 ≤ Z < countZ
type CellIndex struct {
	X, Z int
}

// Cell 一个格子（仅保存派生出的中心坐标）
type Cell struct {
	Index         CellIndex
	WorldPosition Vec3
}

// SizeOption 一个能同时整除宽和深的候选格子尺寸
type SizeOption struct {
	Name     string  `yaml:"name"`
	CellSize float64 `yaml:"cellSize"`
	Enabled  bool    `yaml:"enabled"`
}
