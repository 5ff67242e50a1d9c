package progress

import (
	"math"

	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/defs"
)

// Modifiers — бонусы исследований и ранга, зафиксированные на старте забега.
// Покупки во время забега на них не влияют.
type Modifiers struct {
	TurretDamage    float64
	TrapDamage      float64
	StructureHealth float64
	Cooldown        float64
	EnemyHealth     float64
	Rank            float64
	StartingGold    int
	Bounty          int
	ExtraLives      int
}

// DefaultModifiers returns neutral modifiers.
func DefaultModifiers() Modifiers {
	return Modifiers{
		TurretDamage:    1,
		TrapDamage:      1,
		StructureHealth: 1,
		Cooldown:        1,
		EnemyHealth:     1,
		Rank:            1,
	}
}

// Modifiers computes the bonuses granted by purchased upgrades and rank.
func (s *State) Modifiers(lib *defs.Library) Modifiers {
	m := DefaultModifiers()
	per := func(key string) (float64, int) {
		return lib.Upgrades[key].PerLevel, s.Level(key)
	}

	if p, n := per(defs.UpgradeTurretDamage); n > 0 {
		m.TurretDamage = 1 + p*float64(n)
	}
	if p, n := per(defs.UpgradeTrapDamage); n > 0 {
		m.TrapDamage = 1 + p*float64(n)
	}
	if p, n := per(defs.UpgradeStructureHP); n > 0 {
		m.StructureHealth = 1 + p*float64(n)
	}
	if p, n := per(defs.UpgradeFireRate); n > 0 {
		m.Cooldown = math.Pow(p, float64(n))
	}
	if p, n := per(defs.UpgradeWeakenEnemies); n > 0 {
		m.EnemyHealth = math.Max(0.1, 1-p*float64(n))
	}
	if p, n := per(defs.UpgradeStartingGold); n > 0 {
		m.StartingGold = int(p) * n
	}
	if p, n := per(defs.UpgradeBounty); n > 0 {
		m.Bounty = int(p) * n
	}
	if p, n := per(defs.UpgradeExtraLives); n > 0 {
		m.ExtraLives = int(p) * n
	}
	m.Rank = 1 + config.RankBonusPerRank*float64(RankFor(s.Wins))
	return m
}
