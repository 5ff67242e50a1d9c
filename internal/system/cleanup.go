// internal/system/cleanup.go
package system

import "go-dungeon-defense/internal/entity"

// CleanupSystem удаляет помеченные сущности. Фаза 6 кадра, всегда последняя:
// до неё ссылки внутри кадра (цель снаряда, цель турели) остаются валидными.
type CleanupSystem struct {
	ecs *entity.ECS
}

func NewCleanupSystem(ecs *entity.ECS) *CleanupSystem {
	return &CleanupSystem{ecs: ecs}
}

func (s *CleanupSystem) Update(deltaTime float64) {
	s.ecs.Flush()
}
