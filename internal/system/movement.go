// internal/system/movement.go
package system

import (
	"math"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/types"
)

// MovementSystem ведёт врагов по общему пути. Фаза 1 кадра.
type MovementSystem struct {
	world *World
}

func NewMovementSystem(world *World) *MovementSystem {
	return &MovementSystem{world: world}
}

func (s *MovementSystem) Update(deltaTime float64) {
	ecs := s.world.ECS
	for _, id := range ecs.EnemyIDs() {
		enemy, alive := ecs.AliveEnemy(id)
		if !alive {
			continue
		}
		pos, hasPos := ecs.Positions[id]
		vel, hasVel := ecs.Velocities[id]
		path, hasPath := ecs.Paths[id]
		if !hasPos || !hasVel || !hasPath {
			continue
		}

		currentSpeed := vel.Speed
		if slowEffect, isSlowed := ecs.SlowEffects[id]; isSlowed && slowEffect.Timer > 0 {
			currentSpeed *= slowEffect.SlowFactor
		}
		remaining := currentSpeed * deltaTime

		// При большом шаге (ускорение x4) враг может пройти несколько точек за кадр.
		for remaining > 0 {
			target, ok := path.Next()
			if !ok {
				break
			}
			tx, ty := target.Center()
			dx := tx - pos.X
			dy := ty - pos.Y
			dist := math.Hypot(dx, dy)

			if dist <= remaining {
				pos.X = tx
				pos.Y = ty
				path.CurrentIndex++
				remaining -= dist
				s.trample(enemy, path)
			} else {
				pos.X += (dx / dist) * remaining
				pos.Y += (dy / dist) * remaining
				remaining = 0
			}
		}

		if path.AtEnd() {
			s.escape(id, enemy, pos)
		}
	}
}

// trample наносит урон постройке на только что достигнутой клетке.
func (s *MovementSystem) trample(enemy *component.Enemy, path *component.Path) {
	tile := path.Tiles[path.CurrentIndex]
	if structureID, _, ok := s.world.StructureAt(tile); ok {
		damageStructure(s.world, structureID, enemy.TrampleDamage)
	}
}

func (s *MovementSystem) escape(id types.EntityID, enemy *component.Enemy, pos *component.Position) {
	economy := s.world.ECS.Economy
	enemy.State = component.EnemyEscaped
	economy.Lives -= enemy.LifeCost
	if economy.Lives < 0 {
		economy.Lives = 0
	}
	economy.Escaped++
	s.world.Events.Dispatch(event.Event{Type: event.EnemyEscaped, Data: event.EnemyData{
		ID: id, DefID: enemy.DefID, X: pos.X, Y: pos.Y, LifeCost: enemy.LifeCost, Boss: enemy.Boss,
	}})
	s.world.ECS.MarkForRemoval(id)
}
