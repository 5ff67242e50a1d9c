// internal/defs/upgrades.go
package defs

// Research upgrade keys. Their effects are interpreted by the progress package.
const (
	UpgradeTurretDamage  = "turret_damage"
	UpgradeTrapDamage    = "trap_damage"
	UpgradeStructureHP   = "structure_health"
	UpgradeFireRate      = "fire_rate"
	UpgradeStartingGold  = "starting_gold"
	UpgradeBounty        = "bounty"
	UpgradeWeakenEnemies = "weaken_enemies"
	UpgradeExtraLives    = "extra_lives"
)

// UpgradeDefinition describes a permanent research upgrade bought between runs.
type UpgradeDefinition struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	MaxLevel int     `json:"max_level"`
	BaseCost int     `json:"base_cost"` // price of level n+1 is BaseCost*(n+1)
	PerLevel float64 `json:"per_level"`
}

// CostForLevel returns the research price of buying level next (1-based).
func (u UpgradeDefinition) CostForLevel(next int) int {
	return u.BaseCost * next
}

func defaultUpgrades() []UpgradeDefinition {
	return []UpgradeDefinition{
		{Key: UpgradeTurretDamage, Name: "Sharpened Bolts", MaxLevel: 5, BaseCost: 10, PerLevel: 0.10},
		{Key: UpgradeTrapDamage, Name: "Barbed Spikes", MaxLevel: 5, BaseCost: 10, PerLevel: 0.10},
		{Key: UpgradeStructureHP, Name: "Reinforced Frames", MaxLevel: 5, BaseCost: 8, PerLevel: 0.15},
		{Key: UpgradeFireRate, Name: "Oiled Gears", MaxLevel: 5, BaseCost: 12, PerLevel: 0.95},
		{Key: UpgradeStartingGold, Name: "War Chest", MaxLevel: 5, BaseCost: 6, PerLevel: 25},
		{Key: UpgradeBounty, Name: "Head Hunters", MaxLevel: 3, BaseCost: 15, PerLevel: 1},
		{Key: UpgradeWeakenEnemies, Name: "Foul Air", MaxLevel: 5, BaseCost: 12, PerLevel: 0.04},
		{Key: UpgradeExtraLives, Name: "Deeper Vault", MaxLevel: 3, BaseCost: 10, PerLevel: 2},
	}
}
