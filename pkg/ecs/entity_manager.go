// Package ecs 最小的实体-组件存储
//
// 组件以其动态类型为键（通常是指向组件结构体的指针），
// 查询结果总是按实体创建顺序返回，依赖生成顺序的系统因此是确定的。
package ecs

import "reflect"

// EntityID 实体标识，0 表示"没有实体"
type EntityID uint64

type entity struct {
	components map[reflect.Type]any
	doomed     bool
}

// EntityManager 持有所有实体
// 删除分两步：DestroyEntity 只做标记，RemoveMarkedEntities 在帧末统一清理
type EntityManager struct {
	lastID   EntityID
	entities map[EntityID]*entity
	order    []EntityID
	doomed   []EntityID
}

// NewEntityManager 创建空的实体管理器
func NewEntityManager() *EntityManager {
	return &EntityManager{entities: make(map[EntityID]*entity)}
}

// CreateEntity 创建实体，ID 从 1 开始单调递增且不复用
func (em *EntityManager) CreateEntity() EntityID {
	em.lastID++
	id := em.lastID
	em.entities[id] = &entity{components: make(map[reflect.Type]any)}
	em.order = append(em.order, id)
	return id
}

// DestroyEntity 标记实体待删除，重复标记无副作用
func (em *EntityManager) DestroyEntity(id EntityID) {
	e, ok := em.entities[id]
	if !ok || e.doomed {
		return
	}
	e.doomed = true
	em.doomed = append(em.doomed, id)
}

// IsAlive 实体存在且没有被标记删除
func (em *EntityManager) IsAlive(id EntityID) bool {
	e, ok := em.entities[id]
	return ok && !e.doomed
}

// Exists 实体仍在管理器中（包括已标记、尚未清理的）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.entities[id]
	return ok
}

// RemoveMarkedEntities 清理本帧标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	if len(em.doomed) == 0 {
		return
	}
	for _, id := range em.doomed {
		delete(em.entities, id)
	}
	em.doomed = em.doomed[:0]

	kept := em.order[:0]
	for _, id := range em.order {
		if _, ok := em.entities[id]; ok {
			kept = append(kept, id)
		}
	}
	em.order = kept
}

// DestroyAll 立即删除全部实体，ID 计数不回退
func (em *EntityManager) DestroyAll() {
	clear(em.entities)
	em.order = em.order[:0]
	em.doomed = em.doomed[:0]
}

// EntityCount 实体数量（包括已标记、尚未清理的）
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// query 按创建顺序返回拥有全部 types 的实体
func (em *EntityManager) query(types ...reflect.Type) []EntityID {
	var result []EntityID
	for _, id := range em.order {
		comps := em.entities[id].components
		match := true
		for _, t := range types {
			if _, ok := comps[t]; !ok {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	return result
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 给实体挂上组件，同类型组件会被替换
// 实体不存在时无操作
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if e, ok := em.entities[id]; ok {
		e.components[typeOf[T]()] = component
	}
}

// GetComponent 取出实体的 T 类型组件
//
//	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	e, ok := em.entities[id]
	if !ok {
		return zero, false
	}
	c, ok := e.components[typeOf[T]()].(T)
	if !ok {
		return zero, false
	}
	return c, true
}

// HasComponent 实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	e, ok := em.entities[id]
	if !ok {
		return false
	}
	_, ok = e.components[typeOf[T]()]
	return ok
}

// RemoveComponent 移除实体的 T 类型组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	if e, ok := em.entities[id]; ok {
		delete(e.components, typeOf[T]())
	}
}

// GetEntitiesWith1 拥有 T1 的实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.query(typeOf[T1]())
}

// GetEntitiesWith2 同时拥有 T1、T2 的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.query(typeOf[T1](), typeOf[T2]())
}
