package defs

import (
	"fmt"

	"go-dungeon-defense/internal/config"
)

// WaveRules описывает правила построения волн.
type WaveRules struct {
	TotalWaves         int     `json:"total_waves"`
	BossInterval       int     `json:"boss_interval"`
	BossEnemyID        string  `json:"boss_enemy_id"`
	FirstWaveDelay     float64 `json:"first_wave_delay"`
	InterWaveDelay     float64 `json:"inter_wave_delay"`
	BaseCount          int     `json:"base_count"`
	CountPerWave       int     `json:"count_per_wave"`
	SpawnInterval      float64 `json:"spawn_interval"`
	MinSpawnInterval   float64 `json:"min_spawn_interval"`
	SpawnIntervalStep  float64 `json:"spawn_interval_step"`
	HealthScalePerWave float64 `json:"health_scale_per_wave"`
}

func defaultWaveRules() WaveRules {
	return WaveRules{
		TotalWaves:         config.TotalWaves,
		BossInterval:       config.BossWaveInterval,
		BossEnemyID:        EnemyBoss,
		FirstWaveDelay:     config.FirstWaveDelay,
		InterWaveDelay:     config.InterWaveDelay,
		BaseCount:          config.BaseEnemiesPerWave,
		CountPerWave:       config.EnemiesIncrementPerWave,
		SpawnInterval:      config.InitialSpawnInterval,
		MinSpawnInterval:   config.MinSpawnInterval,
		SpawnIntervalStep:  config.SpawnIntervalDecrement,
		HealthScalePerWave: config.HealthScalePerWave,
	}
}

// IsBossWave reports whether wave n is a single-boss wave.
func (r WaveRules) IsBossWave(n int) bool {
	return r.BossInterval > 0 && n > 0 && n%r.BossInterval == 0
}

// EnemyCount returns the roster size of a non-boss wave, never below zero.
func (r WaveRules) EnemyCount(n int) int {
	if c := r.BaseCount + r.CountPerWave*(n-1); c > 0 {
		return c
	}
	return 0
}

func (r WaveRules) validate() error {
	if r.TotalWaves <= 0 {
		return fmt.Errorf("total_waves must be positive, got %d", r.TotalWaves)
	}
	if r.BossInterval < 0 {
		return fmt.Errorf("boss_interval must not be negative, got %d", r.BossInterval)
	}
	if r.BaseCount < 0 || r.CountPerWave < 0 {
		return fmt.Errorf("base_count (%d) and count_per_wave (%d) must not be negative", r.BaseCount, r.CountPerWave)
	}
	if r.BaseCount == 0 && r.CountPerWave == 0 {
		return fmt.Errorf("base_count or count_per_wave must be positive")
	}
	if r.SpawnInterval < 0 || r.MinSpawnInterval < 0 {
		return fmt.Errorf("spawn intervals must not be negative")
	}
	if r.FirstWaveDelay < 0 || r.InterWaveDelay < 0 || r.HealthScalePerWave < 0 {
		return fmt.Errorf("wave delays and health scale must not be negative")
	}
	return nil
}

// Stagger returns the delay between consecutive spawns of wave n.
func (r WaveRules) Stagger(n int) float64 {
	s := r.SpawnInterval - r.SpawnIntervalStep*float64(n-1)
	if s < r.MinSpawnInterval {
		s = r.MinSpawnInterval
	}
	return s
}

// HealthScale returns the base-health multiplier for wave n.
func (r WaveRules) HealthScale(n int) float64 {
	return 1 + r.HealthScalePerWave*float64(n-1)
}
