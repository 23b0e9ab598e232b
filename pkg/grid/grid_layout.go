package grid

// GridLayout 一次完整计算的结果，完全由 Spec 和 anchor 派生
type GridLayout struct {
	Spec   Spec
	Bounds Bounds
	CountX int
	CountZ int
	Cells  [][]Cell // [x][z]
}

// Layout 计算格子数量、四角和全部格子中心
func Layout(anchor Vec3, spec Spec) (*GridLayout, error) {
	return LayoutWithMode(anchor, spec, BoundsMirrored)
}

// LayoutWithMode 与 Layout 相同，但可选择四角计算模式
func LayoutWithMode(anchor Vec3, spec Spec, mode BoundsMode) (*GridLayout, error) {
	countX, countZ, err := ComputeCellCounts(spec)
	if err != nil {
		return nil, err
	}

	bounds := ComputeBoundsWithMode(anchor, spec, mode)

	cells := make([][]Cell, countX)
	for x := 0; x < countX; x++ {
		cells[x] = make([]Cell, countZ)
		for z := 0; z < countZ; z++ {
			idx := CellIndex{X: x, Z: z}
			cells[x][z] = Cell{
				Index:         idx,
				WorldPosition: cellPosition(idx, spec.CellSize, spec.Origin, bounds),
			}
		}
	}

	return &GridLayout{
		Spec:   spec,
		Bounds: bounds,
		CountX: countX,
		CountZ: countZ,
		Cells:  cells,
	}, nil
}

// CellCount 返回格子总数
func (l *GridLayout) CellCount() int {
	return l.CountX * l.CountZ
}

// Cell 按索引获取格子
func (l *GridLayout) Cell(idx CellIndex) (Cell, bool) {
	if idx.X < 0 || idx.X >= l.CountX || idx.Z < 0 || idx.Z >= l.CountZ {
		return Cell{}, false
	}
	return l.Cells[idx.X][idx.Z], true
}

// ForEach 按 x 优先、z 次之的顺序遍历格子（与实例化顺序一致）
func (l *GridLayout) ForEach(fn func(Cell)) {
	for x := 0; x < l.CountX; x++ {
		for z := 0; z < l.CountZ; z++ {
			fn(l.Cells[x][z])
		}
	}
}
