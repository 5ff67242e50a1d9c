// internal/app/structure_management.go
package app

import (
	"fmt"
	"log"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/system"
	"go-dungeon-defense/internal/types"
	"go-dungeon-defense/pkg/gridmap"
)

// TileKind классифицирует клетку для правил постройки.
type TileKind int

const (
	TileOutside TileKind = iota
	TilePath             // открытая клетка маршрута, кроме входа и выхода
	TileWall             // внутренняя стена
	TileOpen             // открытая клетка вне маршрута, строить нельзя
	TileBlocked          // граница, вход и выход
)

// TileKindAt reports how tile p may be used for placement.
func (g *Game) TileKindAt(p gridmap.Point) TileKind {
	grid := g.World.Grid
	if !grid.Contains(p) {
		return TileOutside
	}
	if p == grid.Entry || p == grid.Exit || grid.IsBorder(p) {
		return TileBlocked
	}
	if grid.At(p) == gridmap.Wall {
		return TileWall
	}
	for _, step := range g.World.Path {
		if step == p {
			return TilePath
		}
	}
	return TileOpen
}

func placementAllows(placement defs.Placement, kind TileKind) bool {
	switch placement {
	case defs.PlacePath:
		return kind == TilePath
	case defs.PlaceWall:
		return kind == TileWall
	}
	return false
}

// CanPlace checks every placement rule without changing anything.
func (g *Game) CanPlace(defID string, tile gridmap.Point) error {
	if g.ECS.Wave.Phase.Terminal() {
		return ErrRunOver
	}
	def, ok := g.lib.Structures[defID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownArchetype, defID)
	}
	if !placementAllows(def.Placement, g.TileKindAt(tile)) {
		return fmt.Errorf("%w: %s needs a %s tile at %v", ErrInvalidPlacement, defID, def.Placement, tile)
	}
	if _, _, occupied := g.World.StructureAt(tile); occupied {
		return fmt.Errorf("%w: %v", ErrTileOccupied, tile)
	}
	if !g.ECS.Economy.CanAfford(def.Cost) {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, defID, def.Cost, g.ECS.Economy.Currency)
	}
	return nil
}

// PlaceStructure builds a level-1 structure and charges its cost.
func (g *Game) PlaceStructure(defID string, tile gridmap.Point) (types.EntityID, error) {
	if err := g.CanPlace(defID, tile); err != nil {
		return types.NoEntity, g.reject("place", err)
	}
	def := g.lib.Structures[defID]
	g.ECS.Economy.Spend(def.Cost)

	id := g.createStructureEntity(def, tile)
	g.EventDispatcher.Dispatch(event.Event{Type: event.StructurePlaced, Data: event.StructureData{
		ID: id, DefID: defID, Tile: tile, Level: 1, Amount: def.Cost,
	}})
	return id, nil
}

func (g *Game) createStructureEntity(def defs.StructureDefinition, tile gridmap.Point) types.EntityID {
	stats := system.ComputeStats(def, 1, false, g.World.Mods)
	id := g.ECS.NewEntity()
	x, y := tile.Center()
	g.ECS.Positions[id] = &component.Position{X: x, Y: y}
	g.ECS.Healths[id] = &component.Health{Value: stats.MaxHealth, Max: stats.MaxHealth}
	st := &component.Structure{
		DefID:      def.ID,
		Kind:       def.Kind,
		Tile:       tile,
		Level:      1,
		Investment: def.Cost,
		Stats:      stats,
	}
	g.ECS.Structures[id] = st
	g.ECS.Renderables[id] = &component.Renderable{
		Color:     def.Visuals.Color,
		Radius:    float32(def.Visuals.RadiusFactor),
		HasStroke: def.Visuals.StrokeWidth > 0,
		Glyph:     def.Visuals.Glyph,
	}

	switch def.Kind {
	case defs.KindPulseTrap:
		g.ECS.Traps[id] = &component.Trap{Armed: true}
	case defs.KindTurret:
		g.ECS.Turrets[id] = &component.TurretComponent{}
	case defs.KindGenerator:
		// Первый доход — через полный период.
		st.Cooldown = stats.Cooldown
	}
	return id
}

// UpgradeCostOf returns the price of the next level of a structure.
func (g *Game) UpgradeCostOf(id types.EntityID) (int, error) {
	st, ok := g.ECS.Structures[id]
	if !ok || g.ECS.IsMarked(id) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStructure, id)
	}
	if st.Level >= config.MaxStructureLevel {
		return 0, fmt.Errorf("%w: %d", ErrMaxLevel, id)
	}
	return system.UpgradeCost(g.lib.Structures[st.DefID], st.Level), nil
}

// UpgradeStructure raises a structure one level. Crossing the ultimate
// threshold sets the one-way ultimate flag.
func (g *Game) UpgradeStructure(id types.EntityID) error {
	if g.ECS.Wave.Phase.Terminal() {
		return g.reject("upgrade", ErrRunOver)
	}
	cost, err := g.UpgradeCostOf(id)
	if err != nil {
		return g.reject("upgrade", err)
	}
	if !g.ECS.Economy.Spend(cost) {
		return g.reject("upgrade", fmt.Errorf("%w: upgrade costs %d, have %d", ErrInsufficientFunds, cost, g.ECS.Economy.Currency))
	}

	st := g.ECS.Structures[id]
	st.Level++
	st.Investment += cost
	if st.Level >= config.UltimateLevel && !st.Ultimate {
		st.Ultimate = true
		log.Printf("Game: structure %d (%s) reached ultimate", id, st.DefID)
	}
	st.Stats = system.ComputeStats(g.lib.Structures[st.DefID], st.Level, st.Ultimate, g.World.Mods)
	if st.Cooldown > st.Stats.Cooldown {
		st.Cooldown = st.Stats.Cooldown
	}

	// Новый максимум здоровья, уже полученный урон сохраняется.
	if health, ok := g.ECS.Healths[id]; ok {
		taken := health.Max - health.Value
		health.Max = st.Stats.MaxHealth
		health.Value = health.Max - taken
		if health.Value < 1 {
			health.Value = 1
		}
	}
	if st.Ultimate {
		if r, ok := g.ECS.Renderables[id]; ok {
			r.HasStroke = true
		}
	}

	g.EventDispatcher.Dispatch(event.Event{Type: event.StructureUpgraded, Data: event.StructureData{
		ID: id, DefID: st.DefID, Tile: st.Tile, Level: st.Level, Amount: cost,
	}})
	return nil
}

// SellStructure removes a structure immediately and refunds part of its investment.
func (g *Game) SellStructure(id types.EntityID) (int, error) {
	if g.ECS.Wave.Phase.Terminal() {
		return 0, g.reject("sell", ErrRunOver)
	}
	st, ok := g.ECS.Structures[id]
	if !ok || g.ECS.IsMarked(id) {
		return 0, g.reject("sell", fmt.Errorf("%w: %d", ErrUnknownStructure, id))
	}

	refund := system.SellRefund(st.Investment)
	g.ECS.Economy.Currency += refund
	g.ECS.Delete(id)
	if g.selected == id {
		g.selected = types.NoEntity
	}

	g.EventDispatcher.Dispatch(event.Event{Type: event.StructureSold, Data: event.StructureData{
		ID: id, DefID: st.DefID, Tile: st.Tile, Level: st.Level, Amount: refund,
	}})
	return refund, nil
}

// SelectStructure marks a structure as selected for the HUD. NoEntity clears the selection.
func (g *Game) SelectStructure(id types.EntityID) error {
	if prev, ok := g.ECS.Structures[g.selected]; ok {
		prev.IsSelected = false
	}
	g.selected = types.NoEntity
	if id == types.NoEntity {
		return nil
	}
	st, ok := g.ECS.Structures[id]
	if !ok {
		return g.reject("select", fmt.Errorf("%w: %d", ErrUnknownStructure, id))
	}
	st.IsSelected = true
	g.selected = id
	return nil
}

// StructureAt returns the structure on tile, if any.
func (g *Game) StructureAt(tile gridmap.Point) (types.EntityID, bool) {
	id, _, ok := g.World.StructureAt(tile)
	return id, ok
}
