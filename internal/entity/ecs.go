// internal/entity/ecs.go
package entity

import (
	"sort"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/types"
)

type ECS struct {
	GameTime      float64
	NextID        types.EntityID
	Positions     map[types.EntityID]*component.Position
	Velocities    map[types.EntityID]*component.Velocity
	Paths         map[types.EntityID]*component.Path
	Healths       map[types.EntityID]*component.Health
	Renderables   map[types.EntityID]*component.Renderable
	Enemies       map[types.EntityID]*component.Enemy
	Structures    map[types.EntityID]*component.Structure
	Traps         map[types.EntityID]*component.Trap
	Turrets       map[types.EntityID]*component.TurretComponent
	Projectiles   map[types.EntityID]*component.Projectile
	SlowEffects   map[types.EntityID]*component.SlowEffect
	DamageFlashes map[types.EntityID]*component.DamageFlash
	Texts         map[types.EntityID]*component.Text
	Effects       map[types.EntityID]*component.Effect
	Wave          *component.Wave
	Economy       *component.Economy

	// pending — сущности, помеченные на удаление в текущем кадре.
	// Удаляются только в фазе очистки, чтобы ссылки внутри кадра оставались валидными.
	pending map[types.EntityID]struct{}
}

func NewECS() *ECS {
	return &ECS{
		NextID:        1,
		Positions:     make(map[types.EntityID]*component.Position),
		Velocities:    make(map[types.EntityID]*component.Velocity),
		Paths:         make(map[types.EntityID]*component.Path),
		Healths:       make(map[types.EntityID]*component.Health),
		Renderables:   make(map[types.EntityID]*component.Renderable),
		Enemies:       make(map[types.EntityID]*component.Enemy),
		Structures:    make(map[types.EntityID]*component.Structure),
		Traps:         make(map[types.EntityID]*component.Trap),
		Turrets:       make(map[types.EntityID]*component.TurretComponent),
		Projectiles:   make(map[types.EntityID]*component.Projectile),
		SlowEffects:   make(map[types.EntityID]*component.SlowEffect),
		DamageFlashes: make(map[types.EntityID]*component.DamageFlash),
		Texts:         make(map[types.EntityID]*component.Text),
		Effects:       make(map[types.EntityID]*component.Effect),
		Wave:          &component.Wave{},
		Economy:       &component.Economy{},
		pending:       make(map[types.EntityID]struct{}),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// MarkForRemoval schedules id for deletion in the cleanup phase.
func (ecs *ECS) MarkForRemoval(id types.EntityID) {
	ecs.pending[id] = struct{}{}
}

// IsMarked reports whether id is scheduled for deletion.
func (ecs *ECS) IsMarked(id types.EntityID) bool {
	_, ok := ecs.pending[id]
	return ok
}

// PendingCount returns the number of entities waiting for cleanup.
func (ecs *ECS) PendingCount() int {
	return len(ecs.pending)
}

// Flush deletes every marked entity from all component stores and returns how many were removed.
func (ecs *ECS) Flush() int {
	n := len(ecs.pending)
	for id := range ecs.pending {
		ecs.Delete(id)
	}
	ecs.pending = make(map[types.EntityID]struct{})
	return n
}

// Delete removes id from every component store immediately.
func (ecs *ECS) Delete(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.Paths, id)
	delete(ecs.Healths, id)
	delete(ecs.Renderables, id)
	delete(ecs.Enemies, id)
	delete(ecs.Structures, id)
	delete(ecs.Traps, id)
	delete(ecs.Turrets, id)
	delete(ecs.Projectiles, id)
	delete(ecs.SlowEffects, id)
	delete(ecs.DamageFlashes, id)
	delete(ecs.Texts, id)
	delete(ecs.Effects, id)
}

// AliveEnemy returns the enemy behind id if it is still alive this frame.
func (ecs *ECS) AliveEnemy(id types.EntityID) (*component.Enemy, bool) {
	enemy, ok := ecs.Enemies[id]
	if !ok || !enemy.Alive() {
		return nil, false
	}
	return enemy, true
}

// AliveEnemyCount counts enemies that are neither defeated nor escaped.
func (ecs *ECS) AliveEnemyCount() int {
	n := 0
	for _, enemy := range ecs.Enemies {
		if enemy.Alive() {
			n++
		}
	}
	return n
}

// Итерация по map в Go случайна; системы обходят сущности в порядке ID,
// чтобы симуляция была воспроизводимой.

func (ecs *ECS) EnemyIDs() []types.EntityID {
	return SortedIDs(ecs.Enemies)
}

func (ecs *ECS) StructureIDs() []types.EntityID {
	return SortedIDs(ecs.Structures)
}

func (ecs *ECS) ProjectileIDs() []types.EntityID {
	return SortedIDs(ecs.Projectiles)
}

// SortedIDs returns the keys of any component store in ascending order, so
// iteration over a store is reproducible.
func SortedIDs[V any](m map[types.EntityID]V) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
