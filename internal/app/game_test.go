package app

import (
	"errors"
	"testing"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/progress"
	"go-dungeon-defense/internal/types"
	"go-dungeon-defense/pkg/gridmap"
)

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

func newTestGame(t *testing.T, opts Options) (*Game, *recorder) {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 7
	}
	g, err := NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	rec := &recorder{}
	g.EventDispatcher.SubscribeAll(rec)
	return g, rec
}

// tilesOf returns every tile of the given kind in row-major order.
func tilesOf(g *Game, kind TileKind) []gridmap.Point {
	var out []gridmap.Point
	grid := g.World.Grid
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := gridmap.Point{X: x, Y: y}
			if g.TileKindAt(p) == kind {
				out = append(out, p)
			}
		}
	}
	return out
}

func wallTile(t *testing.T, g *Game, n int) gridmap.Point {
	t.Helper()
	walls := tilesOf(g, TileWall)
	if len(walls) <= n {
		t.Fatalf("generated grid has only %d interior walls", len(walls))
	}
	return walls[n]
}

func pathTile(t *testing.T, g *Game) gridmap.Point {
	t.Helper()
	tiles := tilesOf(g, TilePath)
	if len(tiles) == 0 {
		t.Fatal("generated path has no buildable tiles")
	}
	return tiles[0]
}

func TestNewGameStartsIdleWithValidPath(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	if err := g.World.Grid.ValidatePath(g.World.Path); err != nil {
		t.Fatalf("generated path is invalid: %v", err)
	}
	hud := g.HUD()
	if hud.Currency != 200 || hud.Lives != 20 {
		t.Errorf("unexpected starting economy %+v", hud)
	}
	if hud.Phase != component.PhaseIdle || hud.Wave != 0 || hud.TotalWaves != 20 {
		t.Errorf("run should start idle before wave 1, got %+v", hud)
	}
	if hud.RunID == "" {
		t.Error("run id must be set")
	}
}

func TestSameSeedSameGrid(t *testing.T) {
	a, _ := newTestGame(t, Options{Seed: 99})
	b, _ := newTestGame(t, Options{Seed: 99})
	sa, sb := a.Snapshot(), b.Snapshot()
	if len(sa.Path) != len(sb.Path) {
		t.Fatalf("path lengths differ: %d vs %d", len(sa.Path), len(sb.Path))
	}
	for i := range sa.Path {
		if sa.Path[i] != sb.Path[i] {
			t.Fatalf("paths diverge at %d", i)
		}
	}
	for i := range sa.Grid.Tiles {
		if sa.Grid.Tiles[i] != sb.Grid.Tiles[i] {
			t.Fatalf("tiles diverge at %d", i)
		}
	}
}

func TestPlacementChargesAndRejectsShortfall(t *testing.T) {
	lib := defs.Default().Clone()
	lib.Structures["BALLISTA"] = defs.StructureDefinition{
		ID: "BALLISTA", Name: "Ballista", Kind: defs.KindTurret, Placement: defs.PlaceWall,
		Cost: 200, Health: 100, Damage: 40, Range: 4, Cooldown: 3, ProjectileSpeed: 8,
	}
	g, rec := newTestGame(t, Options{Lib: lib})

	if _, err := g.PlaceStructure(defs.StructureArrowTurret, wallTile(t, g, 0)); err != nil {
		t.Fatalf("place arrow turret: %v", err)
	}
	if got := g.ECS.Economy.Currency; got != 150 {
		t.Fatalf("currency after placement = %d, want 150", got)
	}

	_, err := g.PlaceStructure("BALLISTA", wallTile(t, g, 1))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := g.ECS.Economy.Currency; got != 150 {
		t.Errorf("rejected placement changed currency to %d", got)
	}
	if len(g.ECS.Structures) != 1 {
		t.Errorf("rejected placement must not create a structure")
	}
	if rec.count(event.StructurePlaced) != 1 || rec.count(event.ActionRejected) != 1 {
		t.Errorf("expected one placement and one rejection event")
	}
}

func TestPlacementRules(t *testing.T) {
	g, rec := newTestGame(t, Options{})
	wall := wallTile(t, g, 0)
	onPath := pathTile(t, g)

	cases := []struct {
		name  string
		defID string
		tile  gridmap.Point
		want  error
	}{
		{"turret on path", defs.StructureArrowTurret, onPath, ErrInvalidPlacement},
		{"trap on wall", defs.StructureSpikeTrap, wall, ErrInvalidPlacement},
		{"trap on entry", defs.StructureSpikeTrap, g.World.Grid.Entry, ErrInvalidPlacement},
		{"trap on exit", defs.StructureFrostTrap, g.World.Grid.Exit, ErrInvalidPlacement},
		{"outside grid", defs.StructureArrowTurret, gridmap.Point{X: -1, Y: 0}, ErrInvalidPlacement},
		{"unknown archetype", "LASER", wall, ErrUnknownArchetype},
	}
	for _, tc := range cases {
		if _, err := g.PlaceStructure(tc.defID, tc.tile); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
	if g.ECS.Economy.Currency != 200 || len(g.ECS.Structures) != 0 {
		t.Error("rejected placements must not change anything")
	}
	if rec.count(event.ActionRejected) != len(cases) {
		t.Errorf("each rejection should be reported, got %d", rec.count(event.ActionRejected))
	}

	if _, err := g.PlaceStructure(defs.StructureSpikeTrap, onPath); err != nil {
		t.Fatalf("trap on path: %v", err)
	}
	if _, err := g.PlaceStructure(defs.StructureFrostTrap, onPath); !errors.Is(err, ErrTileOccupied) {
		t.Errorf("second structure on a tile: got %v", err)
	}
}

func TestUpgradeToUltimateOnce(t *testing.T) {
	g, rec := newTestGame(t, Options{})
	id, err := g.PlaceStructure(defs.StructureArrowTurret, wallTile(t, g, 0))
	if err != nil {
		t.Fatal(err)
	}
	g.ECS.Economy.Currency = 1000

	for level := 2; level <= 5; level++ {
		if err := g.UpgradeStructure(id); err != nil {
			t.Fatalf("upgrade to %d: %v", level, err)
		}
		st := g.ECS.Structures[id]
		if st.Level != level {
			t.Fatalf("level = %d, want %d", st.Level, level)
		}
		if want := level >= 4; st.Ultimate != want {
			t.Errorf("level %d: ultimate = %v", level, st.Ultimate)
		}
	}
	// 30 + 60 + 90 + 120
	if got := g.ECS.Economy.Currency; got != 700 {
		t.Errorf("currency after upgrades = %d, want 700", got)
	}
	if err := g.UpgradeStructure(id); !errors.Is(err, ErrMaxLevel) {
		t.Errorf("upgrade past max: %v", err)
	}
	if g.ECS.Structures[id].Level != 5 || g.ECS.Economy.Currency != 700 {
		t.Error("rejected upgrade must not change anything")
	}
	if rec.count(event.StructureUpgraded) != 4 {
		t.Errorf("expected 4 upgrade events, got %d", rec.count(event.StructureUpgraded))
	}
	if !g.ECS.Renderables[id].HasStroke {
		t.Error("ultimate structures are drawn with a stroke")
	}
}

func TestUpgradeKeepsDamageTaken(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	id, _ := g.PlaceStructure(defs.StructureArrowTurret, wallTile(t, g, 0))
	g.ECS.Healths[id].Value = 70 // 30 урона
	if err := g.UpgradeStructure(id); err != nil {
		t.Fatal(err)
	}
	h := g.ECS.Healths[id]
	if h.Max != 120 || h.Value != 90 {
		t.Errorf("health after upgrade = %d/%d, want 90/120", h.Value, h.Max)
	}
}

func TestUpgradeInsufficientFunds(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	id, _ := g.PlaceStructure(defs.StructureArrowTurret, wallTile(t, g, 0))
	g.ECS.Economy.Currency = 29
	if err := g.UpgradeStructure(id); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if g.ECS.Structures[id].Level != 1 || g.ECS.Economy.Currency != 29 {
		t.Error("failed upgrade must not change anything")
	}
}

func TestSellRefundsAndRemovesImmediately(t *testing.T) {
	g, rec := newTestGame(t, Options{})
	tile := wallTile(t, g, 0)
	id, _ := g.PlaceStructure(defs.StructureArrowTurret, tile)
	if err := g.UpgradeStructure(id); err != nil {
		t.Fatal(err)
	}
	// 200 - 50 - 30 = 120, вложено 80, возврат 48
	refund, err := g.SellStructure(id)
	if err != nil {
		t.Fatal(err)
	}
	if refund != 48 || g.ECS.Economy.Currency != 168 {
		t.Errorf("refund %d currency %d, want 48 and 168", refund, g.ECS.Economy.Currency)
	}
	if _, ok := g.StructureAt(tile); ok {
		t.Error("sold structure must leave the tile at once")
	}
	if _, err := g.SellStructure(id); !errors.Is(err, ErrUnknownStructure) {
		t.Errorf("selling twice: %v", err)
	}
	if rec.count(event.StructureSold) != 1 {
		t.Error("expected one sold event")
	}
	if _, err := g.PlaceStructure(defs.StructureArrowTurret, tile); err != nil {
		t.Errorf("tile should be free again: %v", err)
	}
}

func TestSelectionAppearsInHUD(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	id, _ := g.PlaceStructure(defs.StructureArrowTurret, wallTile(t, g, 0))
	if err := g.SelectStructure(id); err != nil {
		t.Fatal(err)
	}
	sel := g.HUD().Selected
	if sel == nil {
		t.Fatal("selected structure missing from HUD")
	}
	if sel.ID != id || sel.UpgradeCost != 30 || sel.SellValue != 30 || !sel.Selected {
		t.Errorf("unexpected selection view %+v", sel)
	}
	if err := g.SelectStructure(types.NoEntity); err != nil {
		t.Fatal(err)
	}
	if g.HUD().Selected != nil || g.ECS.Structures[id].IsSelected {
		t.Error("selection should be cleared")
	}
	if err := g.SelectStructure(999); !errors.Is(err, ErrUnknownStructure) {
		t.Errorf("selecting a missing structure: %v", err)
	}
}

func TestStartWaveEarly(t *testing.T) {
	g, rec := newTestGame(t, Options{})
	bonus, err := g.StartWaveEarly()
	if err != nil {
		t.Fatal(err)
	}
	if bonus != 16 || g.ECS.Economy.Currency != 216 {
		t.Errorf("early bonus %d currency %d, want 16 and 216", bonus, g.ECS.Economy.Currency)
	}
	if g.ECS.Wave.Phase != component.PhaseInProgress || g.ECS.Wave.Number != 1 {
		t.Errorf("wave 1 should be running, got %+v", g.ECS.Wave)
	}
	if _, err := g.StartWaveEarly(); !errors.Is(err, ErrWaveInProgress) {
		t.Errorf("second early start: %v", err)
	}
	if rec.count(event.WaveStarted) != 1 {
		t.Error("expected a single wave start")
	}
}

func TestPauseAndSpeed(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	g.Pause()
	g.Update(1)
	if g.GameTime() != 0 || g.ECS.Wave.Countdown != 8 {
		t.Error("paused game must not advance")
	}
	if g.TogglePause() {
		t.Fatal("toggle should resume")
	}

	want := []float64{2, 4, 1}
	for _, w := range want {
		if got := g.CycleSpeed(); got != w {
			t.Errorf("speed = %v, want %v", got, w)
		}
	}
	g.CycleSpeed()
	g.Update(0.5)
	if g.GameTime() != 1 || g.ECS.Wave.Countdown != 7 {
		t.Errorf("x2 speed should advance 1s, got time %v countdown %v", g.GameTime(), g.ECS.Wave.Countdown)
	}
	g.Update(0)
	g.Update(-1)
	if g.GameTime() != 1 {
		t.Error("non-positive delta must be ignored")
	}
}

func TestDefenselessRunIsLostAndRecorded(t *testing.T) {
	store := progress.NewMemoryStore(nil)
	g, rec := newTestGame(t, Options{Store: store})

	for i := 0; i < 200000 && !g.ECS.Wave.Phase.Terminal(); i++ {
		g.Update(0.05)
		economy := g.ECS.Economy
		if economy.Currency < 0 || economy.Lives < 0 {
			t.Fatalf("economy went negative: %+v", economy)
		}
		for id, enemy := range g.ECS.Enemies {
			h := g.ECS.Healths[id]
			if enemy.Alive() && (h.Value <= 0 || h.Value > h.Max) {
				t.Fatalf("enemy %d health out of range: %d/%d", id, h.Value, h.Max)
			}
		}
	}
	if g.ECS.Wave.Phase != component.PhaseLost {
		t.Fatalf("run without defenses should be lost, phase %v", g.ECS.Wave.Phase)
	}
	if g.ECS.Economy.Lives != 0 {
		t.Errorf("lives = %d", g.ECS.Economy.Lives)
	}

	// Дальнейшие кадры не записывают забег повторно.
	for i := 0; i < 50; i++ {
		g.Update(0.05)
	}
	if rec.count(event.RunEnded) != 1 {
		t.Fatalf("run end should be reported once, got %d", rec.count(event.RunEnded))
	}
	if g.Progress.Losses != 1 || g.Progress.Wins != 0 {
		t.Errorf("unexpected record %+v", g.Progress)
	}
	if g.Progress.LastRunID != g.RunID {
		t.Error("last run id should be recorded")
	}

	saved, err := progress.Load(store, g.Library())
	if err != nil {
		t.Fatal(err)
	}
	if saved.Losses != 1 || saved.Research != g.Progress.Research {
		t.Errorf("progression was not persisted: %+v", saved)
	}
	if _, err := g.PlaceStructure(defs.StructureArrowTurret, wallTile(t, g, 0)); !errors.Is(err, ErrRunOver) {
		t.Errorf("actions after the run ends: %v", err)
	}
}

func TestVictoryAwardsResearch(t *testing.T) {
	g, rec := newTestGame(t, Options{})
	wave := g.ECS.Wave
	wave.Number = wave.Total
	wave.Phase = component.PhaseInProgress
	wave.Queue = nil

	g.Update(0.1)
	if wave.Phase != component.PhaseWon {
		t.Fatalf("clearing the last wave should win, phase %v", wave.Phase)
	}
	// 20 волн × 3 + 25 за победу
	if g.LastAward() != 85 || g.Progress.Research != 85 || g.Progress.Wins != 1 {
		t.Errorf("award %d, progress %+v", g.LastAward(), g.Progress)
	}
	if rec.count(event.WaveEnded) != 1 || rec.count(event.RunEnded) != 1 {
		t.Error("expected wave end and run end events")
	}
}

func TestSaveFailureKeepsProgressInMemory(t *testing.T) {
	store := progress.NewMemoryStore(nil)
	store.FailSave = true
	g, _ := newTestGame(t, Options{Store: store})
	g.ECS.Economy.Lives = 0
	g.Update(0.1)

	if g.PersistError() == nil || !g.HUD().SaveFailed {
		t.Fatal("save failure should be reported")
	}
	if g.Progress.Losses != 1 {
		t.Error("in-memory progression must still be updated")
	}
	if store.Raw() != nil {
		t.Error("nothing should have been written")
	}

	store.FailSave = false
	g.Progress.Research = 10
	if err := g.PurchaseResearch(defs.UpgradeTurretDamage); err != nil {
		t.Fatal(err)
	}
	if g.PersistError() != nil {
		t.Error("a successful save clears the error")
	}
}

// unreadableStore fails its first Load and then behaves like the wrapped store.
type unreadableStore struct {
	*progress.MemoryStore
	failed bool
}

func (s *unreadableStore) Load() (*progress.State, error) {
	if !s.failed {
		s.failed = true
		return nil, errors.New("read error")
	}
	return s.MemoryStore.Load()
}

func TestUnreadableSaveIsNeverOverwritten(t *testing.T) {
	saved := progress.NewState()
	saved.Research = 500
	saved.Wins = 9
	inner := progress.NewMemoryStore(nil)
	if err := inner.Save(saved); err != nil {
		t.Fatal(err)
	}
	store := &unreadableStore{MemoryStore: inner}

	g, _ := newTestGame(t, Options{Store: store})
	if !errors.Is(g.PersistError(), progress.ErrUnreadable) {
		t.Fatalf("read failure should be reported, got %v", g.PersistError())
	}
	g.ECS.Economy.Lives = 0
	g.Update(0.1)
	if g.Progress.Losses != 1 {
		t.Error("the run is still recorded in memory")
	}
	if !g.HUD().SaveFailed {
		t.Error("HUD should show that progress is not saved")
	}

	kept, err := inner.Load()
	if err != nil {
		t.Fatal(err)
	}
	if kept.Research != 500 || kept.Wins != 9 {
		t.Errorf("saved progression overwritten: research %d wins %d", kept.Research, kept.Wins)
	}
}

func TestResetKeepsProgression(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	g.Progress.Research = 50
	if err := g.PurchaseResearch(defs.UpgradeStartingGold); err != nil {
		t.Fatal(err)
	}
	if err := g.PurchaseResearch("nope"); !errors.Is(err, progress.ErrUnknownUpgrade) {
		t.Errorf("unknown research: %v", err)
	}
	oldRun := g.RunID
	g.PlaceStructure(defs.StructureArrowTurret, wallTile(t, g, 0))

	if err := g.Reset(); err != nil {
		t.Fatal(err)
	}
	if g.RunID == oldRun {
		t.Error("reset should start a new run")
	}
	if g.Progress.Research != 44 || g.Progress.Level(defs.UpgradeStartingGold) != 1 {
		t.Errorf("progression lost on reset: %+v", g.Progress)
	}
	if g.ECS.Economy.Currency != 225 {
		t.Errorf("starting gold research should apply, currency %d", g.ECS.Economy.Currency)
	}
	if len(g.ECS.Structures) != 0 || g.ECS.Wave.Number != 0 {
		t.Error("run state must be fresh after reset")
	}
	if g.Progress.Losses != 0 {
		t.Error("an aborted run is not recorded")
	}
}

func TestCorruptSaveStartsWithDefaults(t *testing.T) {
	store := progress.NewMemoryStore([]byte("{not json"))
	g, _ := newTestGame(t, Options{Store: store})
	if g.Progress.Research != 0 || g.PersistError() != nil {
		t.Errorf("corrupt save should reset cleanly, got %+v err %v", g.Progress, g.PersistError())
	}
	if _, err := progress.Load(store, g.Library()); err != nil {
		t.Errorf("reset save should be readable: %v", err)
	}
}

func TestSnapshotCopiesWorld(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	id, _ := g.PlaceStructure(defs.StructureSpikeTrap, pathTile(t, g))
	if _, err := g.StartWaveEarly(); err != nil {
		t.Fatal(err)
	}
	g.Update(0.05)

	snap := g.Snapshot()
	if len(snap.Structures) != 1 || snap.Structures[0].ID != id || !snap.Structures[0].Armed {
		t.Fatalf("unexpected structures %+v", snap.Structures)
	}
	if len(snap.Enemies) != 1 {
		t.Fatalf("first enemy should have spawned, got %d", len(snap.Enemies))
	}
	snap.Grid.Tiles[0] = gridmap.Open
	if g.World.Grid.Tiles[0] != gridmap.Wall {
		t.Error("snapshot grid must be a copy")
	}
}
