// internal/app/snapshot.go
package app

import (
	"image/color"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/entity"
	"go-dungeon-defense/internal/progress"
	"go-dungeon-defense/internal/system"
	"go-dungeon-defense/internal/types"
	"go-dungeon-defense/pkg/gridmap"
)

// Снимки только для чтения: рендер и интерфейс не получают указателей на компоненты.

type EnemyView struct {
	ID        types.EntityID
	DefID     string
	X, Y      float64
	Health    int
	MaxHealth int
	Boss      bool
	Slowed    bool
	Flash     bool
	Color     color.RGBA
	Radius    float64
	Glyph     rune
}

type StructureView struct {
	ID        types.EntityID
	DefID     string
	Name      string
	Kind      defs.StructureKind
	Tile      gridmap.Point
	Level     int
	Health    int
	MaxHealth int
	Armed     bool
	Ultimate  bool
	Selected  bool
	Flash     bool
	Angle     float64
	Cooldown  float64
	Stats     component.StructureStats
	Color     color.RGBA
	Radius    float64
	Glyph     rune
}

type ProjectileView struct {
	ID    types.EntityID
	X, Y  float64
	Color color.RGBA
}

type TextView struct {
	X, Y     float64
	Value    string
	Color    color.RGBA
	Progress float64
}

type EffectView struct {
	X, Y      float64
	Color     color.RGBA
	Shockwave bool
	MaxRadius float64
	Progress  float64
}

// Snapshot is a copy of everything a renderer needs for one frame.
type Snapshot struct {
	Grid        *gridmap.Grid
	Path        []gridmap.Point
	Enemies     []EnemyView
	Structures  []StructureView
	Projectiles []ProjectileView
	Texts       []TextView
	Effects     []EffectView
}

// SelectedView describes the selected structure for the HUD panel.
type SelectedView struct {
	StructureView
	UpgradeCost int // 0 at max level
	SellValue   int
}

// HUD holds the scalar values shown around the map.
type HUD struct {
	RunID      string
	Currency   int
	Lives      int
	Wave       int
	TotalWaves int
	BossWave   bool
	Countdown  float64
	Combo      int
	ComboTimer float64
	Kills      int
	Phase      component.RunPhase
	Paused     bool
	Speed      float64
	Selected   *SelectedView
	Research   int
	Rank       int
	LastAward  int
	SaveFailed bool
}

// Snapshot copies the live world into plain values.
func (g *Game) Snapshot() Snapshot {
	ecs := g.ECS
	grid := *g.World.Grid
	grid.Tiles = append([]gridmap.Tile(nil), g.World.Grid.Tiles...)
	snap := Snapshot{
		Grid: &grid,
		Path: append([]gridmap.Point(nil), g.World.Path...),
	}

	for _, id := range ecs.EnemyIDs() {
		enemy, alive := ecs.AliveEnemy(id)
		if !alive {
			continue
		}
		snap.Enemies = append(snap.Enemies, g.enemyView(id, enemy))
	}
	for _, id := range ecs.StructureIDs() {
		if ecs.IsMarked(id) {
			continue
		}
		snap.Structures = append(snap.Structures, g.structureView(id))
	}
	for _, id := range ecs.ProjectileIDs() {
		if ecs.IsMarked(id) {
			continue
		}
		pos := ecs.Positions[id]
		if pos == nil {
			continue
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileView{ID: id, X: pos.X, Y: pos.Y, Color: ecs.Projectiles[id].Color})
	}
	for _, id := range entity.SortedIDs(ecs.Texts) {
		text, pos := ecs.Texts[id], ecs.Positions[id]
		if pos == nil {
			continue
		}
		progress := 1.0
		if text.Duration > 0 {
			progress = text.Timer / text.Duration
		}
		snap.Texts = append(snap.Texts, TextView{X: pos.X, Y: pos.Y, Value: text.Value, Color: text.Color, Progress: progress})
	}
	for _, id := range entity.SortedIDs(ecs.Effects) {
		effect, pos := ecs.Effects[id], ecs.Positions[id]
		if pos == nil {
			continue
		}
		snap.Effects = append(snap.Effects, EffectView{
			X: pos.X, Y: pos.Y, Color: effect.Color, Shockwave: effect.Shockwave,
			MaxRadius: effect.MaxRadius, Progress: effect.Progress(),
		})
	}
	return snap
}

func (g *Game) enemyView(id types.EntityID, enemy *component.Enemy) EnemyView {
	ecs := g.ECS
	v := EnemyView{ID: id, DefID: enemy.DefID, Boss: enemy.Boss}
	if pos := ecs.Positions[id]; pos != nil {
		v.X, v.Y = pos.X, pos.Y
	}
	if h := ecs.Healths[id]; h != nil {
		v.Health, v.MaxHealth = h.Value, h.Max
	}
	if r := ecs.Renderables[id]; r != nil {
		v.Color, v.Radius, v.Glyph = r.Color, float64(r.Radius), r.Glyph
	}
	_, v.Slowed = ecs.SlowEffects[id]
	_, v.Flash = ecs.DamageFlashes[id]
	return v
}

func (g *Game) structureView(id types.EntityID) StructureView {
	ecs := g.ECS
	st := ecs.Structures[id]
	v := StructureView{
		ID:       id,
		DefID:    st.DefID,
		Name:     g.lib.Structures[st.DefID].Name,
		Kind:     st.Kind,
		Tile:     st.Tile,
		Level:    st.Level,
		Ultimate: st.Ultimate,
		Selected: st.IsSelected,
		Cooldown: st.Cooldown,
		Stats:    st.Stats,
	}
	if h := ecs.Healths[id]; h != nil {
		v.Health, v.MaxHealth = h.Value, h.Max
	}
	if trap, ok := ecs.Traps[id]; ok {
		v.Armed = trap.Armed
	}
	if turret, ok := ecs.Turrets[id]; ok {
		v.Angle = turret.CurrentAngle
	}
	if r := ecs.Renderables[id]; r != nil {
		v.Color, v.Radius, v.Glyph = r.Color, float64(r.Radius), r.Glyph
	}
	_, v.Flash = ecs.DamageFlashes[id]
	return v
}

// HUD collects the scalar values for the interface.
func (g *Game) HUD() HUD {
	economy := g.ECS.Economy
	wave := g.ECS.Wave
	h := HUD{
		RunID:      g.RunID,
		Currency:   economy.Currency,
		Lives:      economy.Lives,
		Wave:       wave.Number,
		TotalWaves: wave.Total,
		BossWave:   wave.Boss,
		Countdown:  wave.Countdown,
		Combo:      economy.Combo,
		ComboTimer: economy.ComboTimer,
		Kills:      economy.Kills,
		Phase:      wave.Phase,
		Paused:     g.isPaused,
		Speed:      g.SpeedMultiplier,
		Research:   g.Progress.Research,
		Rank:       progress.RankFor(g.Progress.Wins),
		LastAward:  g.lastAward,
		SaveFailed: g.persistErr != nil,
	}
	if _, ok := g.ECS.Structures[g.selected]; ok && !g.ECS.IsMarked(g.selected) {
		sel := &SelectedView{StructureView: g.structureView(g.selected)}
		if cost, err := g.UpgradeCostOf(g.selected); err == nil {
			sel.UpgradeCost = cost
		}
		sel.SellValue = system.SellRefund(g.ECS.Structures[g.selected].Investment)
		h.Selected = sel
	}
	return h
}
