package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SelectionRecord 持久化的尺寸选择
type SelectionRecord struct {
	GridID   string  `yaml:"gridId"`   // 网格ID
	SizeName string  `yaml:"sizeName"` // 选中的候选尺寸名称
	CellSize float64 `yaml:"cellSize"` // 选中的格子尺寸（仅供查看）
}

// SelectionStore 选中尺寸的持久化存储
// 负责在编辑/运行模式切换之间保留每个网格当前选中的候选尺寸
type SelectionStore struct {
	gdataManager *gdata.Manager             // gdata 跨平台存储管理器，可为 nil（降级模式）
	memory       map[string]SelectionRecord // 内存缓存，降级模式下唯一的存储
}

// 存储路径常量
const selectionObject = "grid_selection"

// NewSelectionStore 创建选择存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存存储）
func NewSelectionStore(gdataManager *gdata.Manager) *SelectionStore {
	if gdataManager == nil {
		log.Printf("[SelectionStore] No gdata manager, selections will not persist")
	}
	return &SelectionStore{
		gdataManager: gdataManager,
		memory:       make(map[string]SelectionRecord),
	}
}

// OpenSelectionStore 使用 appName 打开 gdata 存储
// 打开失败时返回降级模式的存储和错误（错误不影响使用）
func OpenSelectionStore(appName string) (*SelectionStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewSelectionStore(nil), fmt.Errorf("failed to open gdata storage %q: %w", appName, err)
	}
	return NewSelectionStore(manager), nil
}

// IsPersistent 返回是否具备持久化能力
func (s *SelectionStore) IsPersistent() bool {
	return s.gdataManager != nil
}

// Load 读取网格的选中尺寸名称
//
// 没有记录时返回空字符串和 nil
//
// 返回：
//   - string: 候选尺寸名称
//   - error: 如果读取或反序列化失败返回错误
func (s *SelectionStore) Load(gridID string) (string, error) {
	if rec, ok := s.memory[gridID]; ok {
		return rec.SizeName, nil
	}

	if s.gdataManager == nil {
		return "", nil
	}

	if !s.gdataManager.ObjectPropExists(selectionObject, gridID) {
		return "", nil
	}

	data, err := s.gdataManager.LoadObjectProp(selectionObject, gridID)
	if err != nil {
		return "", fmt.Errorf("failed to load selection for grid %s: %w", gridID, err)
	}

	var rec SelectionRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("failed to unmarshal selection for grid %s: %w", gridID, err)
	}

	s.memory[gridID] = rec
	log.Printf("[SelectionStore] Loaded selection %q for grid %s", rec.SizeName, gridID)
	return rec.SizeName, nil
}

// Save 保存网格的选中尺寸
//
// 如果 gdataManager 为 nil，仅更新内存（降级模式，不报错）
func (s *SelectionStore) Save(gridID, sizeName string, cellSize float64) error {
	rec := SelectionRecord{GridID: gridID, SizeName: sizeName, CellSize: cellSize}
	s.memory[gridID] = rec

	if s.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}

	if err := s.gdataManager.SaveObjectProp(selectionObject, gridID, data); err != nil {
		return fmt.Errorf("failed to save selection for grid %s: %w", gridID, err)
	}

	log.Printf("[SelectionStore] Saved selection %q for grid %s", sizeName, gridID)
	return nil
}

// Clear 删除网格的选中记录
func (s *SelectionStore) Clear(gridID string) error {
	delete(s.memory, gridID)

	if s.gdataManager == nil {
		return nil
	}
	if !s.gdataManager.ObjectPropExists(selectionObject, gridID) {
		return nil
	}
	if err := s.gdataManager.DeleteObjectProp(selectionObject, gridID); err != nil {
		return fmt.Errorf("failed to clear selection for grid %s: %w", gridID, err)
	}
	return nil
}
