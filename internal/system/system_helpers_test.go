package system

import (
	"testing"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/entity"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/progress"
	"go-dungeon-defense/internal/types"
	"go-dungeon-defense/internal/utils"
	"go-dungeon-defense/pkg/gridmap"
)

// recorder collects every dispatched event.
type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(e event.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// newTestWorld builds a world with a fully open interior and a straight
// path along the middle row.
func newTestWorld(t *testing.T) (*World, *recorder) {
	t.Helper()
	grid := gridmap.NewGrid(11, 7)
	for y := 1; y < grid.Height-1; y++ {
		for x := 1; x < grid.Width-1; x++ {
			grid.Set(gridmap.Point{X: x, Y: y}, gridmap.Open)
		}
	}
	path := gridmap.FindPath(grid)
	if len(path) == 0 {
		t.Fatal("open grid must have a path")
	}

	ecs := entity.NewECS()
	ecs.Economy.Currency = 200
	ecs.Economy.Lives = 20
	rec := &recorder{}
	dispatcher := event.NewDispatcher()
	dispatcher.SubscribeAll(rec)

	w := &World{
		ECS:    ecs,
		Events: dispatcher,
		Lib:    defs.Default(),
		Grid:   grid,
		Path:   path,
		Mods:   progress.DefaultModifiers(),
		Rng:    utils.NewPRNGService(42),
	}
	return w, rec
}

// addEnemy places an alive enemy on path index idx.
func addEnemy(w *World, hp int, idx int) types.EntityID {
	id := w.ECS.NewEntity()
	x, y := w.Path[idx].Center()
	w.ECS.Positions[id] = &component.Position{X: x, Y: y}
	w.ECS.Velocities[id] = &component.Velocity{Speed: 1}
	w.ECS.Paths[id] = &component.Path{Tiles: w.Path, CurrentIndex: idx}
	w.ECS.Healths[id] = &component.Health{Value: hp, Max: hp}
	w.ECS.Enemies[id] = &component.Enemy{DefID: defs.EnemyGrunt, Bounty: 5, LifeCost: 1, TrampleDamage: 6}
	return id
}

// addStructure places a level-1 structure of the given archetype.
func addStructure(w *World, defID string, tile gridmap.Point) types.EntityID {
	def := w.Lib.Structures[defID]
	stats := ComputeStats(def, 1, false, w.Mods)
	id := w.ECS.NewEntity()
	x, y := tile.Center()
	w.ECS.Positions[id] = &component.Position{X: x, Y: y}
	w.ECS.Healths[id] = &component.Health{Value: stats.MaxHealth, Max: stats.MaxHealth}
	w.ECS.Structures[id] = &component.Structure{
		DefID: defID, Kind: def.Kind, Tile: tile, Level: 1, Investment: def.Cost, Stats: stats,
	}
	switch def.Kind {
	case defs.KindPulseTrap:
		w.ECS.Traps[id] = &component.Trap{Armed: true}
	case defs.KindTurret:
		w.ECS.Turrets[id] = &component.TurretComponent{}
	case defs.KindGenerator:
		w.ECS.Structures[id].Cooldown = stats.Cooldown
	}
	return id
}
