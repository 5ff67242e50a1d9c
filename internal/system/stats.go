// internal/system/stats.go
package system

import (
	"math"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/progress"
)

// ComputeStats derives a structure's stats from its archetype, level and the
// run's research/rank modifiers.
func ComputeStats(def defs.StructureDefinition, level int, ultimate bool, mods progress.Modifiers) component.StructureStats {
	steps := float64(level - 1)

	research := 1.0
	switch def.Kind {
	case defs.KindTurret:
		research = mods.TurretDamage
	case defs.KindPulseTrap, defs.KindSlowTrap:
		research = mods.TrapDamage
	}

	stats := component.StructureStats{
		Damage:          int(math.Round(float64(def.Damage) * (1 + config.DamagePerLevel*steps) * research * mods.Rank)),
		Range:           def.Range * (1 + config.RangePerLevel*steps),
		Cooldown:        def.Cooldown * math.Pow(config.CooldownPerLevel, steps),
		ProjectileSpeed: def.ProjectileSpeed,
		SplashRadius:    def.SplashRadius,
		PulseRadius:     def.PulseRadius,
		SlowDuration:    def.SlowDuration * (1 + config.SlowDurationPerLevel*steps),
		Income:          int(math.Round(float64(def.Income) * (1 + config.IncomePerLevel*steps))),
		MaxHealth:       int(math.Round(float64(def.Health) * (1 + config.HealthPerLevel*steps) * mods.StructureHealth)),
	}
	// Исследование скорострельности не ускоряет генераторы дохода.
	if def.Kind != defs.KindGenerator {
		stats.Cooldown *= mods.Cooldown
	}
	if ultimate {
		stats.SlowDuration *= 2
		stats.Income *= 2
	}
	if stats.MaxHealth < 1 {
		stats.MaxHealth = 1
	}
	return stats
}

// UpgradeCost is the price of raising a structure from level to level+1.
func UpgradeCost(def defs.StructureDefinition, level int) int {
	return int(math.Ceil(float64(def.Cost) * config.UpgradeCostFactor * float64(level)))
}

// SellRefund is what selling a structure with the given investment returns.
func SellRefund(investment int) int {
	return int(math.Floor(float64(investment) * config.SellRefundFraction))
}

// EnemyHealth is the spawned max health of an archetype on wave n.
func EnemyHealth(def defs.EnemyDefinition, rules defs.WaveRules, wave int, mods progress.Modifiers) int {
	hp := int(math.Round(float64(def.Health) * rules.HealthScale(wave) * mods.EnemyHealth))
	if hp < 1 {
		hp = 1
	}
	return hp
}
