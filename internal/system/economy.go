// internal/system/economy.go
package system

import (
	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/entity"
)

// EconomySystem гасит комбо, если убийств не было дольше ComboDecay.
type EconomySystem struct {
	ecs *entity.ECS
}

func NewEconomySystem(ecs *entity.ECS) *EconomySystem {
	return &EconomySystem{ecs: ecs}
}

func (s *EconomySystem) Update(deltaTime float64) {
	economy := s.ecs.Economy
	if economy.Combo == 0 {
		return
	}
	economy.ComboTimer -= deltaTime
	if economy.ComboTimer <= 0 {
		economy.Combo = 0
		economy.ComboTimer = 0
	}
}

// AwardKill pays the bounty plus the combo bonus and advances the combo.
// The bonus uses the combo as it stood before this kill. Returns the amount paid.
func AwardKill(economy *component.Economy, bounty int) int {
	bonus := economy.Combo
	if bonus > config.ComboBonusCap {
		bonus = config.ComboBonusCap
	}
	total := bounty + bonus

	economy.Earn(total)
	economy.Kills++
	economy.Combo++
	economy.ComboTimer = config.ComboDecay
	if economy.Combo > economy.BestCombo {
		economy.BestCombo = economy.Combo
	}
	return total
}
