// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/entity"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/progress"
	"go-dungeon-defense/internal/system"
	"go-dungeon-defense/internal/types"
	"go-dungeon-defense/internal/utils"
	"go-dungeon-defense/pkg/gridmap"
)

// Ошибки отклонённых действий игрока. Отклонённое действие ничего не меняет.
var (
	ErrInsufficientFunds = errors.New("not enough currency")
	ErrInvalidPlacement  = errors.New("structure cannot be placed on this tile")
	ErrTileOccupied      = errors.New("tile is already occupied")
	ErrMaxLevel          = errors.New("structure is already at max level")
	ErrUnknownStructure  = errors.New("no such structure")
	ErrUnknownArchetype  = errors.New("unknown structure archetype")
	ErrWaveInProgress    = errors.New("a wave is already in progress")
	ErrRunOver           = errors.New("the run is over")
)

// Options configures a new game.
type Options struct {
	// Seed drives grid generation and wave rosters. 0 means time-based.
	Seed int64
	// Lib defaults to defs.Default().
	Lib *defs.Library
	// Store defaults to an in-memory store.
	Store progress.Store
}

// Game — мир симуляции: владеет забегом, часами кадра и прогрессом игрока.
type Game struct {
	ECS             *entity.ECS
	World           *system.World
	EventDispatcher *event.Dispatcher
	Progress        *progress.State
	Rng             *utils.PRNGService
	RunID           string
	SpeedMultiplier float64

	MovementSystem     *system.MovementSystem
	StructureSystem    *system.StructureSystem
	ProjectileSystem   *system.ProjectileSystem
	StatusEffectSystem *system.StatusEffectSystem
	VisualEffectSystem *system.VisualEffectSystem
	EconomySystem      *system.EconomySystem
	WaveSystem         *system.WaveSystem
	CleanupSystem      *system.CleanupSystem

	lib         *defs.Library
	store       progress.Store
	gameTime    float64
	isPaused    bool
	speedIndex  int
	runRecorded bool
	selected    types.EntityID
	lastAward   int
	persistErr  error
	loadErr     error
}

// NewGame loads progression from the store and starts the first run.
// A failure to read or repair the save is logged and kept in PersistError;
// the game still starts with usable defaults.
func NewGame(opts Options) (*Game, error) {
	lib := opts.Lib
	if lib == nil {
		lib = defs.Default()
	}
	store := opts.Store
	if store == nil {
		store = progress.NewMemoryStore(nil)
	}

	state, err := progress.Load(store, lib)
	g := &Game{
		EventDispatcher: event.NewDispatcher(),
		Progress:        state,
		Rng:             utils.NewPRNGService(opts.Seed),
		SpeedMultiplier: config.SpeedMultipliers[0],
		lib:             lib,
		store:           store,
	}
	if err != nil {
		log.Printf("Game: progression unavailable, using defaults: %v", err)
		g.persistErr = err
		if errors.Is(err, progress.ErrUnreadable) {
			// Сохранение на диске цело; не перезаписываем его пустым прогрессом.
			g.loadErr = err
		}
	}

	if err := g.startRun(); err != nil {
		return nil, err
	}
	return g, nil
}

// startRun генерирует новую карту и сбрасывает всё состояние забега.
// Прогресс игрока не трогается.
func (g *Game) startRun() error {
	cfg := gridmap.Config{
		Width:           config.GridWidth,
		Height:          config.GridHeight,
		OpenProbability: config.OpenProbability,
	}
	grid, path, attempts, err := gridmap.GenerateWithPath(cfg, g.Rng, config.MaxGridGenAttempts)
	if err != nil {
		return fmt.Errorf("generate grid after %d attempts: %w", attempts, err)
	}
	if err := grid.ValidatePath(path); err != nil {
		return fmt.Errorf("generated path: %w", err)
	}

	mods := g.Progress.Modifiers(g.lib)
	ecs := entity.NewECS()
	ecs.Economy = &component.Economy{
		Currency: config.StartingCurrency + mods.StartingGold,
		Lives:    config.StartingLives + mods.ExtraLives,
	}

	g.ECS = ecs
	g.World = &system.World{
		ECS:    ecs,
		Events: g.EventDispatcher,
		Lib:    g.lib,
		Grid:   grid,
		Path:   path,
		Mods:   mods,
		Rng:    g.Rng,
	}
	g.MovementSystem = system.NewMovementSystem(g.World)
	g.StructureSystem = system.NewStructureSystem(g.World)
	g.ProjectileSystem = system.NewProjectileSystem(g.World)
	g.StatusEffectSystem = system.NewStatusEffectSystem(ecs)
	g.VisualEffectSystem = system.NewVisualEffectSystem(ecs)
	g.EconomySystem = system.NewEconomySystem(ecs)
	g.WaveSystem = system.NewWaveSystem(g.World)
	g.CleanupSystem = system.NewCleanupSystem(ecs)
	g.WaveSystem.Reset()

	g.RunID = uuid.NewString()
	g.gameTime = 0
	g.isPaused = false
	g.runRecorded = false
	g.selected = types.NoEntity
	g.lastAward = 0
	return nil
}

// Update продвигает симуляцию на один кадр в фиксированном порядке фаз.
func (g *Game) Update(deltaTime float64) {
	if g.isPaused || deltaTime <= 0 {
		return
	}
	dt := deltaTime * g.SpeedMultiplier
	g.gameTime += dt
	g.ECS.GameTime = g.gameTime

	if g.ECS.Wave.Phase.Terminal() {
		// После конца забега доигрываются только эффекты.
		g.VisualEffectSystem.Update(dt)
		g.CleanupSystem.Update(dt)
		return
	}

	g.MovementSystem.Update(dt)     // 1. враги
	g.StructureSystem.Update(dt)    // 2. ловушки, турели, генераторы
	g.ProjectileSystem.Update(dt)   // 3. снаряды
	g.StatusEffectSystem.Update(dt) // 4. эффекты
	g.VisualEffectSystem.Update(dt)
	g.EconomySystem.Update(dt)
	g.WaveSystem.Update(dt) // 5. волны и условия конца забега
	g.CleanupSystem.Update(dt)

	if g.ECS.Wave.Phase.Terminal() && !g.runRecorded {
		g.endRun()
	}
}

// endRun переносит итоги забега в прогресс и сохраняет его.
func (g *Game) endRun() {
	g.runRecorded = true
	wave := g.ECS.Wave
	won := wave.Phase == component.PhaseWon
	survived := wave.Number
	if !won {
		survived = wave.Number - 1
	}
	if survived < 0 {
		survived = 0
	}

	result := progress.RunResult{
		RunID:         g.RunID,
		Won:           won,
		WavesSurvived: survived,
		Kills:         g.ECS.Economy.Kills,
	}
	g.lastAward = g.Progress.RecordRun(result)
	log.Printf("Game: run %s ended (won=%v, waves=%d, kills=%d, research +%d)",
		g.RunID, won, survived, result.Kills, g.lastAward)
	g.persist()

	g.EventDispatcher.Dispatch(event.Event{Type: event.RunEnded, Data: event.RunData{
		RunID:         g.RunID,
		Won:           won,
		WavesSurvived: survived,
		Kills:         result.Kills,
		Research:      g.lastAward,
	}})
}

// persist сохраняет прогресс. Ошибка записи сообщается оператору,
// состояние в памяти остаётся нетронутым. Если при старте хранилище не
// прочиталось, запись не выполняется вовсе.
func (g *Game) persist() {
	if g.loadErr != nil {
		log.Printf("Game: progression not saved, the store could not be read at start: %v", g.loadErr)
		g.persistErr = g.loadErr
		return
	}
	if err := g.store.Save(g.Progress); err != nil {
		log.Printf("Game: failed to save progression: %v", err)
		g.persistErr = err
		return
	}
	g.persistErr = nil
}

// PersistError returns the last persistence failure, if any.
func (g *Game) PersistError() error {
	return g.persistErr
}

// Reset aborts the current run and starts a fresh one on a new grid.
// Progression is kept; an unfinished run is not recorded.
func (g *Game) Reset() error {
	return g.startRun()
}

// StartWaveEarly skips the countdown and pays the early-start bonus.
func (g *Game) StartWaveEarly() (int, error) {
	if g.ECS.Wave.Phase.Terminal() {
		return 0, g.reject("start wave", ErrRunOver)
	}
	bonus, ok := g.WaveSystem.StartEarly()
	if !ok {
		return 0, g.reject("start wave", ErrWaveInProgress)
	}
	return bonus, nil
}

func (g *Game) Pause()  { g.isPaused = true }
func (g *Game) Resume() { g.isPaused = false }

func (g *Game) TogglePause() bool {
	g.isPaused = !g.isPaused
	return g.isPaused
}

func (g *Game) IsPaused() bool {
	return g.isPaused
}

// CycleSpeed switches between x1, x2 and x4 and returns the new multiplier.
func (g *Game) CycleSpeed() float64 {
	g.speedIndex = (g.speedIndex + 1) % len(config.SpeedMultipliers)
	g.SpeedMultiplier = config.SpeedMultipliers[g.speedIndex]
	return g.SpeedMultiplier
}

// SpeedIndex returns the position of the current multiplier in config.SpeedMultipliers.
func (g *Game) SpeedIndex() int {
	return g.speedIndex
}

// PurchaseResearch buys the next level of a permanent upgrade. It takes
// effect from the next run.
func (g *Game) PurchaseResearch(key string) error {
	if err := g.Progress.Purchase(g.lib, key); err != nil {
		return g.reject("purchase research", err)
	}
	g.persist()
	return nil
}

// Library returns the definitions the game runs on.
func (g *Game) Library() *defs.Library {
	return g.lib
}

// GameTime returns simulated seconds since the run started.
func (g *Game) GameTime() float64 {
	return g.gameTime
}

// LastAward returns the research granted for the most recently finished run.
func (g *Game) LastAward() int {
	return g.lastAward
}

func (g *Game) reject(action string, err error) error {
	g.EventDispatcher.Dispatch(event.Event{Type: event.ActionRejected, Data: event.RejectionData{
		Action: action, Reason: err,
	}})
	return err
}
