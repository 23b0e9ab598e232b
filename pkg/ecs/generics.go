package ecs

import "reflect"

// AddComponent 泛型版本：为实体添加组件
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.AddComponent(id, component)
}

// GetComponent 泛型版本：按类型参数获取组件
//
//	grid, ok := ecs.GetComponent[*components.GridComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 泛型版本：检查实体是否拥有组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, reflect.TypeOf((*T)(nil)).Elem())
}

// RemoveComponent 泛型版本：移除组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, reflect.TypeOf((*T)(nil)).Elem())
}

// GetEntitiesWith1 查询拥有 T 组件的实体
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(reflect.TypeOf((*T)(nil)).Elem())
}

// GetEntitiesWith2 查询同时拥有 T1、T2 组件的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(
		reflect.TypeOf((*T1)(nil)).Elem(),
		reflect.TypeOf((*T2)(nil)).Elem(),
	)
}
