package grid

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon 浮点比较容差
const epsilon = 1e-9

// BoundsMode 决定右侧两个角的计算方式
type BoundsMode int

const (
	// BoundsMirrored 右侧角位于 anchor + right*halfWidth（真正的矩形）
	BoundsMirrored BoundsMode = iota
	// BoundsLegacy 右侧角与左侧角重合（四角公式逐字取 "anchor - right*halfWidth" 时的结果）
	BoundsLegacy
)

// String 返回模式的配置名称
func (m BoundsMode) String() string {
	if m == BoundsLegacy {
		return "legacy"
	}
	return "mirrored"
}

// ParseBoundsMode 解析配置中的模式名称，空字符串视为 mirrored
func ParseBoundsMode(s string) (BoundsMode, error) {
	switch s {
	case "", "mirrored":
		return BoundsMirrored, nil
	case "legacy":
		return BoundsLegacy, nil
	}
	return BoundsMirrored, fmt.Errorf("unknown bounds mode %q (valid: mirrored, legacy)", s)
}

// ComputeCellCounts 计算两个轴向上的格子数量
//
//	countX = min(round(width / cellSize), maxDimension)
//	countZ = min(round(depth / cellSize), maxDimension)
//
// 舍入规则为四舍五入（远离零）。cellSize ≤ 0 时不做除法，返回 (0, 0, ErrInvalidCellSize)。
func ComputeCellCounts(spec Spec) (countX, countZ int, err error) {
	if spec.CellSize <= 0 || math.IsNaN(spec.CellSize) {
		return 0, 0, fmt.Errorf("%w: cellSize=%v", ErrInvalidCellSize, spec.CellSize)
	}
	if !validDimension(spec.Width) || !validDimension(spec.Depth) {
		return 0, 0, fmt.Errorf("%w: width=%v depth=%v", ErrInvalidDimension, spec.Width, spec.Depth)
	}

	countX = clampCount(math.Round(spec.Width/spec.CellSize), spec.MaxDimension)
	countZ = clampCount(math.Round(spec.Depth/spec.CellSize), spec.MaxDimension)
	return countX, countZ, nil
}

// validDimension 宽、深必须是非负有限数（NaN 会绕过 < 0 判断）
func validDimension(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// clampCount 将格子数量限制在 [0, maxDimension]，超限不是错误
func clampCount(n float64, maxDimension int) int {
	if maxDimension < 0 {
		maxDimension = 0
	}
	if n > float64(maxDimension) {
		return maxDimension
	}
	return int(n)
}

// ComputeBounds 以 anchor 为中心计算网格四角（默认 BoundsMirrored）
func ComputeBounds(anchor Vec3, spec Spec) Bounds {
	return ComputeBoundsWithMode(anchor, spec, BoundsMirrored)
}

// ComputeBoundsWithMode 以指定模式计算网格四角
//
//	halfWidth = min(width, maxDimension) / 2
//	halfDepth = min(depth, maxDimension) / 2
//	BottomLeft = anchor - right*halfWidth - forward*halfDepth
//	TopLeft    = anchor - right*halfWidth + forward*halfDepth
//
// BoundsLegacy 下 BottomRight == BottomLeft、TopRight == TopLeft，
// 此时以右侧角为起点的格子会落到网格外侧。
//
// 注意：宽或深超过 maxDimension 且 cellSize > 1 时，格子数按 maxDimension 限制而半宽按
// 尺寸限制，两者不一致，远端格子会超出四角围成的矩形。
func ComputeBoundsWithMode(anchor Vec3, spec Spec, mode BoundsMode) Bounds {
	halfWidth := math.Min(spec.Width, float64(spec.MaxDimension)) / 2
	halfDepth := math.Min(spec.Depth, float64(spec.MaxDimension)) / 2

	left := r3.Scale(-halfWidth, Right)
	right := r3.Scale(halfWidth, Right)
	if mode == BoundsLegacy {
		right = left
	}
	back := r3.Scale(-halfDepth, Forward)
	front := r3.Scale(halfDepth, Forward)

	return Bounds{
		BottomLeft:  r3.Add(r3.Add(anchor, left), back),
		BottomRight: r3.Add(r3.Add(anchor, right), back),
		TopLeft:     r3.Add(r3.Add(anchor, left), front),
		TopRight:    r3.Add(r3.Add(anchor, right), front),
		Anchor:      anchor,
		HalfWidth:   halfWidth,
		HalfDepth:   halfDepth,
	}
}

// ComputeCellWorldPosition 计算格子中心的世界坐标
//
// 以 spec.Origin 对应的角为起点向网格内部展开，偏移半个格子使结果落在格子中心：
//
//	BottomLeft:  BL + right*(x*c + c/2) + forward*(z*c + c/2)
//	BottomRight: BR - right*(x*c + c/2) + forward*(z*c + c/2)
//	TopLeft:     TL + right*(x*c + c/2) - forward*(z*c + c/2)
//	TopRight:    TR - right*(x*c + c/2) - forward*(z*c + c/2)
func ComputeCellWorldPosition(idx CellIndex, spec Spec, bounds Bounds) (Vec3, error) {
	countX, countZ, err := ComputeCellCounts(spec)
	if err != nil {
		return Vec3{}, err
	}
	if idx.X < 0 || idx.X >= countX || idx.Z < 0 || idx.Z >= countZ {
		return Vec3{}, fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrCellOutOfRange, idx.X, idx.Z, countX, countZ)
	}
	return cellPosition(idx, spec.CellSize, spec.Origin, bounds), nil
}

// cellPosition 不做校验的格子中心计算，调用方保证参数合法
func cellPosition(idx CellIndex, cellSize float64, origin Corner, bounds Bounds) Vec3 {
	along := r3.Scale(float64(idx.X)*cellSize+cellSize/2, Right)
	across := r3.Scale(float64(idx.Z)*cellSize+cellSize/2, Forward)

	switch origin {
	case BottomRight:
		return r3.Add(r3.Sub(bounds.BottomRight, along), across)
	case TopLeft:
		return r3.Sub(r3.Add(bounds.TopLeft, along), across)
	case TopRight:
		return r3.Sub(r3.Sub(bounds.TopRight, along), across)
	default:
		return r3.Add(r3.Add(bounds.BottomLeft, along), across)
	}
}

// EnumerateDivisorSizes 枚举能同时整除 width 和 depth 的整数格子尺寸
//
// 从 1 遍历到 floor(width)（含），i = 0 跳过以避免对零取模。
// width 或 depth ≤ 0 时返回空列表。结果按尺寸升序排列，全部未启用。
func EnumerateDivisorSizes(width, depth float64) []SizeOption {
	options := make([]SizeOption, 0)
	if width <= 0 || depth <= 0 || !validDimension(width) || !validDimension(depth) {
		return options
	}

	limit := int(math.Floor(width))
	for i := 1; i <= limit; i++ {
		size := float64(i)
		if math.Mod(width, size) == 0 && math.Mod(depth, size) == 0 {
			options = append(options, SizeOption{
				Name:     strconv.Itoa(i),
				CellSize: size,
			})
		}
	}
	return options
}

// WorldToCell 将世界坐标转换为格子索引（计算 ComputeCellWorldPosition 的逆映射）
// 返回:
//   - CellIndex: 格子索引
//   - bool: 点是否落在某个格子内
func WorldToCell(p Vec3, spec Spec, bounds Bounds) (CellIndex, bool) {
	countX, countZ, err := ComputeCellCounts(spec)
	if err != nil || countX == 0 || countZ == 0 {
		return CellIndex{}, false
	}

	origin := bounds.Corner(spec.Origin)
	dx := p.X - origin.X
	dz := p.Z - origin.Z
	if spec.Origin == BottomRight || spec.Origin == TopRight {
		dx = -dx
	}
	if spec.Origin == TopLeft || spec.Origin == TopRight {
		dz = -dz
	}

	extentX := float64(countX) * spec.CellSize
	extentZ := float64(countZ) * spec.CellSize
	if dx < 0 || dx >= extentX || dz < 0 || dz >= extentZ {
		return CellIndex{}, false
	}

	x := int(dx / spec.CellSize)
	z := int(dz / spec.CellSize)

	// 防止浮点误差导致越界
	if x >= countX {
		x = countX - 1
	}
	if z >= countZ {
		z = countZ - 1
	}
	return CellIndex{X: x, Z: z}, true
}
