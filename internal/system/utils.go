// internal/system/utils.go
package system

import (
	"log"
	"strconv"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/types"
)

// ApplyDamage наносит урон врагу. Здоровье не опускается ниже нуля;
// на нуле враг переходит в Defeated ровно один раз. Возвращает true, если удар убил цель.
func ApplyDamage(w *World, entityID types.EntityID, damage int) bool {
	if damage <= 0 {
		return false
	}
	enemy, alive := w.ECS.AliveEnemy(entityID)
	if !alive {
		return false
	}
	health, hasHealth := w.ECS.Healths[entityID]
	if !hasHealth {
		return false
	}

	health.Value -= damage
	if health.Value < 0 {
		health.Value = 0
	}
	w.ECS.DamageFlashes[entityID] = &component.DamageFlash{Timer: config.DamageFlashDuration}

	pos := w.ECS.Positions[entityID]
	if pos != nil {
		w.SpawnText(pos.X, pos.Y, strconv.Itoa(-damage), config.DamageTextColor)
	}

	if health.Value > 0 {
		return false
	}
	killEnemy(w, entityID, enemy, pos)
	return true
}

func killEnemy(w *World, id types.EntityID, enemy *component.Enemy, pos *component.Position) {
	enemy.State = component.EnemyDefeated
	bounty := AwardKill(w.ECS.Economy, enemy.Bounty)

	var x, y float64
	if pos != nil {
		x, y = pos.X, pos.Y
	}
	w.SpawnEffect(x, y, config.DeathEffectColor, enemy.Boss, config.ShockwaveRadius)
	w.SpawnText(x, y-0.3, signed(bounty), config.GoldTextColor)
	w.Events.Dispatch(event.Event{Type: event.EnemyKilled, Data: event.EnemyData{
		ID: id, DefID: enemy.DefID, X: x, Y: y, Bounty: bounty, Boss: enemy.Boss,
	}})
	w.ECS.MarkForRemoval(id)
}

// damageStructure applies trample damage and destroys the structure on zero health.
func damageStructure(w *World, id types.EntityID, damage int) {
	s, ok := w.ECS.Structures[id]
	health, hasHealth := w.ECS.Healths[id]
	if !ok || !hasHealth || damage <= 0 || w.ECS.IsMarked(id) {
		return
	}
	health.Value -= damage
	if health.Value < 0 {
		health.Value = 0
	}
	w.ECS.DamageFlashes[id] = &component.DamageFlash{Timer: config.DamageFlashDuration}
	if health.Value > 0 {
		return
	}

	log.Printf("system: structure %d (%s) destroyed at %v", id, s.DefID, s.Tile)
	x, y := s.Tile.Center()
	w.SpawnEffect(x, y, config.DeathEffectColor, false, 0.6)
	w.Events.Dispatch(event.Event{Type: event.StructureDestroyed, Data: event.StructureData{
		ID: id, DefID: s.DefID, Tile: s.Tile, Level: s.Level,
	}})
	w.ECS.MarkForRemoval(id)
}
