// internal/system/wave.go
package system

import (
	"log"
	"math"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/types"
)

// WaveSystem ведёт цикл Idle -> InProgress -> Idle | Won и фиксирует поражение.
// Фаза 5 кадра: появившиеся враги начинают действовать со следующего кадра.
type WaveSystem struct {
	world *World
}

func NewWaveSystem(world *World) *WaveSystem {
	return &WaveSystem{world: world}
}

// Reset prepares the countdown to the first wave.
func (s *WaveSystem) Reset() {
	rules := s.world.Lib.Waves
	*s.world.ECS.Wave = component.Wave{
		Total:     rules.TotalWaves,
		Countdown: rules.FirstWaveDelay,
		Phase:     component.PhaseIdle,
	}
}

func (s *WaveSystem) Update(deltaTime float64) {
	wave := s.world.ECS.Wave
	if wave.Phase.Terminal() {
		return
	}
	if s.world.ECS.Economy.Lives <= 0 {
		wave.Phase = component.PhaseLost
		log.Printf("WaveSystem: defeat on wave %d", wave.Number)
		return
	}

	switch wave.Phase {
	case component.PhaseIdle:
		wave.Countdown -= deltaTime
		if wave.Countdown <= 0 {
			wave.Countdown = 0
			s.startWave()
		}
	case component.PhaseInProgress:
		wave.Elapsed += deltaTime
		for len(wave.Queue) > 0 && wave.Queue[0].Delay <= wave.Elapsed {
			entry := wave.Queue[0]
			wave.Queue = wave.Queue[1:]
			s.spawnEnemy(entry.EnemyID, wave.Number)
		}
		if len(wave.Queue) == 0 && s.world.ECS.AliveEnemyCount() == 0 {
			s.endWave()
		}
	}
}

// StartEarly skips the remaining countdown and pays floor(remaining × 2).
// It reports false outside the Idle phase.
func (s *WaveSystem) StartEarly() (int, bool) {
	wave := s.world.ECS.Wave
	if wave.Phase != component.PhaseIdle {
		return 0, false
	}
	bonus := int(math.Floor(wave.Countdown * config.EarlyStartBonusPerSecond))
	s.world.ECS.Economy.Earn(bonus)
	wave.Countdown = 0
	s.startWave()
	return bonus, true
}

func (s *WaveSystem) startWave() {
	wave := s.world.ECS.Wave
	wave.Number++
	wave.Boss = s.world.Lib.Waves.IsBossWave(wave.Number)
	wave.Queue = BuildRoster(s.world, wave.Number)
	wave.Elapsed = 0
	wave.Phase = component.PhaseInProgress

	s.world.Events.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{
		Number: wave.Number, Total: wave.Total, Boss: wave.Boss,
	}})
}

func (s *WaveSystem) endWave() {
	wave := s.world.ECS.Wave
	bonus := config.WaveClearBonusBase + config.WaveClearBonusPerWave*wave.Number
	s.world.ECS.Economy.Earn(bonus)

	s.world.Events.Dispatch(event.Event{Type: event.WaveEnded, Data: event.WaveData{
		Number: wave.Number, Total: wave.Total, Boss: wave.Boss, Bonus: bonus,
	}})

	if wave.Number >= wave.Total {
		wave.Phase = component.PhaseWon
		log.Printf("WaveSystem: all %d waves cleared", wave.Total)
		return
	}
	wave.Phase = component.PhaseIdle
	wave.Countdown = s.world.Lib.Waves.InterWaveDelay
}

// BuildRoster составляет очередь появлений волны n. Волна босса — ровно один босс.
func BuildRoster(w *World, n int) []component.SpawnEntry {
	rules := w.Lib.Waves
	if rules.IsBossWave(n) {
		return []component.SpawnEntry{{EnemyID: rules.BossEnemyID, Delay: 0}}
	}

	ids := w.Rng.DrawN(w.Lib.SpawnTable(n), rules.EnemyCount(n))
	stagger := rules.Stagger(n)
	roster := make([]component.SpawnEntry, len(ids))
	for i, id := range ids {
		roster[i] = component.SpawnEntry{EnemyID: id, Delay: float64(i) * stagger}
	}
	return roster
}

func (s *WaveSystem) spawnEnemy(enemyID string, waveNumber int) types.EntityID {
	def, ok := s.world.Lib.Enemies[enemyID]
	if !ok || len(s.world.Path) == 0 {
		log.Printf("WaveSystem: cannot spawn %q (known=%v, path=%d)", enemyID, ok, len(s.world.Path))
		return types.NoEntity
	}

	hp := EnemyHealth(def, s.world.Lib.Waves, waveNumber, s.world.Mods)
	bounty := def.Bounty + s.world.Mods.Bounty

	id := s.world.ECS.NewEntity()
	x, y := s.world.Path[0].Center()
	s.world.ECS.Positions[id] = &component.Position{X: x, Y: y}
	s.world.ECS.Velocities[id] = &component.Velocity{Speed: def.Speed}
	s.world.ECS.Paths[id] = &component.Path{Tiles: s.world.Path, CurrentIndex: 0}
	s.world.ECS.Healths[id] = &component.Health{Value: hp, Max: hp}
	s.world.ECS.Renderables[id] = &component.Renderable{
		Color:     def.Visuals.Color,
		Radius:    float32(def.Visuals.RadiusFactor),
		HasStroke: def.Visuals.StrokeWidth > 0,
		Glyph:     def.Visuals.Glyph,
	}
	s.world.ECS.Enemies[id] = &component.Enemy{
		DefID:         def.ID,
		State:         component.EnemyAlive,
		Boss:          def.Boss,
		Bounty:        bounty,
		LifeCost:      def.LifeCost,
		TrampleDamage: def.TrampleDamage,
		Wave:          waveNumber,
	}
	s.world.Events.Dispatch(event.Event{Type: event.EnemySpawned, Data: event.EnemyData{
		ID: id, DefID: def.ID, X: x, Y: y, Bounty: bounty, LifeCost: def.LifeCost, Boss: def.Boss,
	}})
	return id
}
