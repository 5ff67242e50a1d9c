// internal/defs/enemies.go
package defs

import "image/color"

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Health        int     `json:"health"`
	Speed         float64 `json:"speed"` // tiles per second
	TrampleDamage int     `json:"trample_damage"`
	Bounty        int     `json:"bounty"`
	LifeCost      int     `json:"life_cost"`
	MinWave       int     `json:"min_wave"`
	SpawnWeight   int     `json:"spawn_weight"`
	Boss          bool    `json:"boss"`
	Visuals       Visuals `json:"visuals"`
}

const (
	EnemyGrunt  = "GRUNT"
	EnemyRunner = "RUNNER"
	EnemyBrute  = "BRUTE"
	EnemyBoss   = "WARDEN"
)

func defaultEnemies() []EnemyDefinition {
	return []EnemyDefinition{
		{
			ID: EnemyGrunt, Name: "Grunt", Health: 30, Speed: 1.4, TrampleDamage: 6,
			Bounty: 5, LifeCost: 1, MinWave: 1, SpawnWeight: 6,
			Visuals: Visuals{Color: color.RGBA{90, 200, 90, 255}, RadiusFactor: 0.25, Glyph: 'g'},
		},
		{
			ID: EnemyRunner, Name: "Runner", Health: 18, Speed: 2.4, TrampleDamage: 3,
			Bounty: 6, LifeCost: 1, MinWave: 2, SpawnWeight: 4,
			Visuals: Visuals{Color: color.RGBA{230, 230, 90, 255}, RadiusFactor: 0.2, Glyph: 'r'},
		},
		{
			ID: EnemyBrute, Name: "Brute", Health: 90, Speed: 0.9, TrampleDamage: 15,
			Bounty: 12, LifeCost: 1, MinWave: 4, SpawnWeight: 3,
			Visuals: Visuals{Color: color.RGBA{170, 90, 200, 255}, RadiusFactor: 0.32, StrokeWidth: 1, Glyph: 'B'},
		},
		{
			ID: EnemyBoss, Name: "Warden", Health: 450, Speed: 0.7, TrampleDamage: 40,
			Bounty: 100, LifeCost: 5, Boss: true,
			Visuals: Visuals{Color: color.RGBA{220, 40, 40, 255}, RadiusFactor: 0.42, StrokeWidth: 2, Glyph: 'W'},
		},
	}
}
