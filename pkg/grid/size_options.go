package grid

// SelectSize 启用名称为 name 的候选尺寸，并禁用其他所有尺寸
// 返回:
//   - []SizeOption: 更新后的候选列表（新切片，不修改入参）
//   - float64: 选中的格子尺寸
//   - bool: 是否找到该名称；未找到时返回原列表的副本
func SelectSize(options []SizeOption, name string) ([]SizeOption, float64, bool) {
	result := make([]SizeOption, len(options))
	copy(result, options)

	found := -1
	for i := range result {
		if result[i].Name == name {
			found = i
			break
		}
	}
	if found < 0 {
		return result, 0, false
	}

	for i := range result {
		result[i].Enabled = i == found
	}
	return result, result[found].CellSize, true
}

// ActiveSize 返回当前生效的格子尺寸
// 多个候选同时启用时，列表中靠后的生效；没有启用项时返回 fallback
func ActiveSize(options []SizeOption, fallback float64) float64 {
	size := fallback
	for _, opt := range options {
		if opt.Enabled {
			size = opt.CellSize
		}
	}
	return size
}

// ActiveOption 返回最后一个启用的候选尺寸
func ActiveOption(options []SizeOption) (SizeOption, bool) {
	var active SizeOption
	ok := false
	for _, opt := range options {
		if opt.Enabled {
			active = opt
			ok = true
		}
	}
	return active, ok
}

// RestoreSelection 根据持久化的名称恢复启用标记
// persistedName 为空或不存在时列表保持不变
func RestoreSelection(options []SizeOption, persistedName string) []SizeOption {
	if persistedName == "" {
		return options
	}
	restored, _, ok := SelectSize(options, persistedName)
	if !ok {
		return options
	}
	return restored
}

// CycleSelection 将启用项按 delta 循环移动（用于键盘切换）
// 没有启用项时，delta > 0 选中第一个，delta < 0 选中最后一个
func CycleSelection(options []SizeOption, delta int) ([]SizeOption, float64, bool) {
	n := len(options)
	if n == 0 {
		return options, 0, false
	}

	current := -1
	for i, opt := range options {
		if opt.Enabled {
			current = i
		}
	}

	var next int
	switch {
	case current < 0 && delta >= 0:
		next = 0
	case current < 0:
		next = n - 1
	default:
		next = ((current+delta)%n + n) % n
	}
	return SelectSize(options, options[next].Name)
}
