package grid

import "errors"

var (
	// ErrInvalidCellSize 格子尺寸 ≤ 0，无法计算格子数量
	ErrInvalidCellSize = errors.New("cell size must be greater than zero")

	// ErrInvalidDimension 网格宽、深为负数、NaN 或无穷大，或最大维度 ≤ 0
	ErrInvalidDimension = errors.New("invalid grid dimension")

	// ErrCellOutOfRange 格子索引超出当前网格
	ErrCellOutOfRange = errors.New("cell index out of range")
)
