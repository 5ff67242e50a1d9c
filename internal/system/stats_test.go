package system

import (
	"math"
	"testing"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/progress"
)

func TestComputeStatsScaling(t *testing.T) {
	lib := defs.Default()
	mods := progress.DefaultModifiers()
	arrow := lib.Structures[defs.StructureArrowTurret]

	s := ComputeStats(arrow, 3, false, mods)
	if s.Damage != 12 {
		t.Errorf("damage = %d, want 12", s.Damage)
	}
	if math.Abs(s.Range-3.3) > 1e-9 {
		t.Errorf("range = %v, want 3.3", s.Range)
	}
	if math.Abs(s.Cooldown-0.648) > 1e-9 {
		t.Errorf("cooldown = %v, want 0.648", s.Cooldown)
	}
	if s.MaxHealth != 140 {
		t.Errorf("max health = %d, want 140", s.MaxHealth)
	}
}

func TestComputeStatsCooldownNeverIncreases(t *testing.T) {
	lib := defs.Default()
	mods := progress.DefaultModifiers()
	for _, id := range lib.StructureIDs() {
		def := lib.Structures[id]
		prev := math.Inf(1)
		for level := 1; level <= config.MaxStructureLevel; level++ {
			cd := ComputeStats(def, level, level >= config.UltimateLevel, mods).Cooldown
			if cd > prev {
				t.Errorf("%s: cooldown rose from %v to %v at level %d", id, prev, cd, level)
			}
			prev = cd
		}
	}
}

func TestComputeStatsUltimateAndModifiers(t *testing.T) {
	lib := defs.Default()
	mods := progress.DefaultModifiers()

	frost := ComputeStats(lib.Structures[defs.StructureFrostTrap], 4, true, mods)
	if math.Abs(frost.SlowDuration-1.5*1.3*2) > 1e-9 {
		t.Errorf("ultimate slow duration = %v", frost.SlowDuration)
	}
	mine := ComputeStats(lib.Structures[defs.StructureGoldMine], 4, true, mods)
	if mine.Income != 42 { // round(12 × 1.75) × 2
		t.Errorf("ultimate income = %d, want 42", mine.Income)
	}

	mods.TurretDamage = 1.2
	mods.TrapDamage = 1.5
	mods.Rank = 1.1
	mods.Cooldown = 0.9
	arrow := ComputeStats(lib.Structures[defs.StructureArrowTurret], 1, false, mods)
	if arrow.Damage != 11 { // 8 × 1.2 × 1.1 = 10.56
		t.Errorf("turret damage with research = %d, want 11", arrow.Damage)
	}
	spike := ComputeStats(lib.Structures[defs.StructureSpikeTrap], 1, false, mods)
	if spike.Damage != 23 { // 14 × 1.5 × 1.1 = 23.1
		t.Errorf("trap damage with research = %d, want 23", spike.Damage)
	}
	if math.Abs(arrow.Cooldown-0.72) > 1e-9 {
		t.Errorf("fire rate research should shorten cooldown, got %v", arrow.Cooldown)
	}
	if got := ComputeStats(lib.Structures[defs.StructureGoldMine], 1, false, mods).Cooldown; got != 6 {
		t.Errorf("generator cooldown is not affected by fire rate, got %v", got)
	}
}

func TestUpgradeCostAndRefund(t *testing.T) {
	arrow := defs.Default().Structures[defs.StructureArrowTurret]
	if c := UpgradeCost(arrow, 1); c != 30 {
		t.Errorf("upgrade from 1 = %d, want 30", c)
	}
	if c := UpgradeCost(arrow, 3); c != 90 {
		t.Errorf("upgrade from 3 = %d, want 90", c)
	}
	frost := defs.Default().Structures[defs.StructureFrostTrap]
	if c := UpgradeCost(frost, 1); c != 18 {
		t.Errorf("frost upgrade from 1 = %d, want 18", c)
	}
	if r := SellRefund(81); r != 48 {
		t.Errorf("refund of 81 = %d, want 48", r)
	}
}

func TestCleanupFlushesMarked(t *testing.T) {
	w, _ := newTestWorld(t)
	dead := addEnemy(w, 10, 0)
	alive := addEnemy(w, 10, 0)
	ApplyDamage(w, dead, 10)

	NewCleanupSystem(w.ECS).Update(0)
	if _, ok := w.ECS.Enemies[dead]; ok {
		t.Error("defeated enemy should be removed in cleanup")
	}
	if _, ok := w.ECS.Enemies[alive]; !ok {
		t.Error("alive enemy must survive cleanup")
	}
	if w.ECS.PendingCount() != 0 {
		t.Error("pending set must be empty after cleanup")
	}
}

func TestVisualEffectsExpire(t *testing.T) {
	w, _ := newTestWorld(t)
	w.SpawnText(1, 1, "+5", config.GoldTextColor)
	w.SpawnEffect(1, 1, config.DeathEffectColor, true, 1.5)
	visuals := NewVisualEffectSystem(w.ECS)

	visuals.Update(0.3)
	if w.ECS.PendingCount() != 0 {
		t.Fatal("nothing should expire after 0.3s")
	}
	visuals.Update(0.2)
	if w.ECS.PendingCount() != 1 {
		t.Errorf("effect (0.4s) should expire first, pending %d", w.ECS.PendingCount())
	}
	visuals.Update(0.5)
	if w.ECS.PendingCount() != 2 {
		t.Errorf("text (0.9s) should expire too, pending %d", w.ECS.PendingCount())
	}
}

func TestStatusEffectsTickDown(t *testing.T) {
	w, _ := newTestWorld(t)
	id := addEnemy(w, 10, 0)
	addStructure(w, defs.StructureFrostTrap, w.Path[0])
	NewStructureSystem(w).Update(0)
	status := NewStatusEffectSystem(w.ECS)
	status.Update(1)
	if s, ok := w.ECS.SlowEffects[id]; !ok || math.Abs(s.Timer-0.5) > 1e-9 {
		t.Fatalf("slow should have 0.5s left, got %+v", s)
	}
	status.Update(0.6)
	if _, ok := w.ECS.SlowEffects[id]; ok {
		t.Error("expired slow must be removed")
	}
}

func TestSlowDroppedWhenCarrierLeaves(t *testing.T) {
	w, _ := newTestWorld(t)
	id := addEnemy(w, 10, 0)
	w.ECS.SlowEffects[id] = &component.SlowEffect{Timer: 5, SlowFactor: 0.5}
	w.ECS.Enemies[id].State = component.EnemyEscaped
	NewStatusEffectSystem(w.ECS).Update(0.1)
	if _, ok := w.ECS.SlowEffects[id]; ok {
		t.Error("slow on an escaped enemy must be dropped")
	}
}
