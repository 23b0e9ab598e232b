package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// EntityManager 管理所有实体、组件以及实体间的父子关系
// 父子关系对应编辑器场景树中"网格对象下挂着格子对象"的结构
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 父实体 -> 子实体列表（保持创建顺序）
	children map[EntityID][]EntityID
	// 子实体 -> 父实体
	parents map[EntityID]EntityID
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1,
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		children:          make(map[EntityID][]EntityID),
		parents:           make(map[EntityID]EntityID),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// CreateChild 创建新实体并挂到 parent 下
func (em *EntityManager) CreateChild(parent EntityID) EntityID {
	id := em.CreateEntity()
	em.SetParent(id, parent)
	return id
}

// Exists 检查实体是否存在（已标记删除但未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// SetParent 设置实体的父实体，parent 为 0 表示解除父子关系
func (em *EntityManager) SetParent(child, parent EntityID) {
	if old, ok := em.parents[child]; ok {
		em.children[old] = removeID(em.children[old], child)
		delete(em.parents, child)
	}
	if parent == 0 {
		return
	}
	em.parents[child] = parent
	em.children[parent] = append(em.children[parent], child)
}

// Parent 返回实体的父实体
func (em *EntityManager) Parent(id EntityID) (EntityID, bool) {
	parent, ok := em.parents[id]
	return parent, ok
}

// Children 返回 parent 的子实体副本（按挂载顺序）
func (em *EntityManager) Children(parent EntityID) []EntityID {
	list := em.children[parent]
	result := make([]EntityID, len(list))
	copy(result, list)
	return result
}

// ChildCount 返回子实体数量
func (em *EntityManager) ChildCount(parent EntityID) int {
	return len(em.children[parent])
}

// DestroyEntity 标记实体待删除(不立即删除)
// 与编辑器中 Destroy 的语义一致：在 RemoveMarkedEntities 时才真正移除
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// DestroyImmediate 立即删除实体及其所有后代
func (em *EntityManager) DestroyImmediate(id EntityID) {
	for _, child := range em.Children(id) {
		em.DestroyImmediate(child)
	}
	em.SetParent(id, 0)
	delete(em.children, id)
	delete(em.components, id)
}

// DestroyChildren 删除 parent 的全部子实体
// immediate 为 true 时立即删除（编辑模式），否则标记后延迟删除（运行模式）
// 从最后一个子实体开始倒序处理
func (em *EntityManager) DestroyChildren(parent EntityID, immediate bool) int {
	list := em.Children(parent)
	for i := len(list) - 1; i >= 0; i-- {
		if immediate {
			em.DestroyImmediate(list[i])
		} else {
			em.DestroyEntity(list[i])
		}
	}
	return len(list)
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体（连同其后代）
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		em.DestroyImmediate(id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// PendingDestroyCount 返回等待清理的实体数量
func (em *EntityManager) PendingDestroyCount() int {
	return len(em.entitiesToDestroy)
}

// EntityCount 返回当前实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 返回的ID按升序排列，保证遍历顺序稳定
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func removeID(list []EntityID, id EntityID) []EntityID {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
