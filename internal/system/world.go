// internal/system/world.go
package system

import (
	"fmt"
	"image/color"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/entity"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/progress"
	"go-dungeon-defense/internal/types"
	"go-dungeon-defense/internal/utils"
	"go-dungeon-defense/pkg/gridmap"
)

// World — явный контекст симуляции, который получают все системы.
// Системы не обращаются к глобальному состоянию.
type World struct {
	ECS    *entity.ECS
	Events *event.Dispatcher
	Lib    *defs.Library
	Grid   *gridmap.Grid
	Path   []gridmap.Point
	Mods   progress.Modifiers
	Rng    *utils.PRNGService
}

// StructureAt returns the live structure standing on tile, if any.
func (w *World) StructureAt(tile gridmap.Point) (types.EntityID, *component.Structure, bool) {
	for _, id := range w.ECS.StructureIDs() {
		s := w.ECS.Structures[id]
		if s.Tile == tile && !w.ECS.IsMarked(id) {
			return id, s, true
		}
	}
	return types.NoEntity, nil, false
}

// OverlappingEnemies returns alive enemies whose body overlaps tile, in id order.
func (w *World) OverlappingEnemies(tile gridmap.Point) []types.EntityID {
	var out []types.EntityID
	tx, ty := tile.Center()
	for _, id := range w.ECS.EnemyIDs() {
		if _, alive := w.ECS.AliveEnemy(id); !alive {
			continue
		}
		pos := w.ECS.Positions[id]
		if pos != nil && utils.CircleOverlapsTile(pos.X, pos.Y, config.EnemyRadius, tx, ty) {
			out = append(out, id)
		}
	}
	return out
}

// EnemiesWithin returns alive enemies whose centre lies within radius of (x, y), in id order.
func (w *World) EnemiesWithin(x, y, radius float64) []types.EntityID {
	var out []types.EntityID
	for _, id := range w.ECS.EnemyIDs() {
		if _, alive := w.ECS.AliveEnemy(id); !alive {
			continue
		}
		pos := w.ECS.Positions[id]
		if pos != nil && utils.Distance(x, y, pos.X, pos.Y) <= radius {
			out = append(out, id)
		}
	}
	return out
}

// SpawnText creates a floating combat text and announces it to collaborators.
func (w *World) SpawnText(x, y float64, value string, c color.RGBA) {
	id := w.ECS.NewEntity()
	w.ECS.Positions[id] = &component.Position{X: x, Y: y}
	w.ECS.Texts[id] = &component.Text{Value: value, Color: c, Duration: config.FloatingTextDuration}
	w.Events.Dispatch(event.Event{Type: event.CombatText, Data: event.TextData{X: x, Y: y, Value: value, Color: c}})
}

// SpawnEffect creates a one-shot cosmetic effect and announces it to collaborators.
func (w *World) SpawnEffect(x, y float64, c color.RGBA, shockwave bool, radius float64) {
	id := w.ECS.NewEntity()
	w.ECS.Positions[id] = &component.Position{X: x, Y: y}
	w.ECS.Effects[id] = &component.Effect{Color: c, Shockwave: shockwave, MaxRadius: radius, Duration: config.EffectDuration}
	w.Events.Dispatch(event.Event{Type: event.EffectSpawned, Data: event.EffectData{X: x, Y: y, Color: c, Shockwave: shockwave}})
}

func signed(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
