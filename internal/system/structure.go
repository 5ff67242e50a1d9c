// internal/system/structure.go
package system

import (
	"log"
	"math"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/types"
)

// StructureSystem обрабатывает ловушки, турели и генераторы. Фаза 2 кадра:
// видит позиции врагов уже после их движения.
type StructureSystem struct {
	world *World
}

func NewStructureSystem(world *World) *StructureSystem {
	return &StructureSystem{world: world}
}

func (s *StructureSystem) Update(deltaTime float64) {
	ecs := s.world.ECS
	for _, id := range ecs.StructureIDs() {
		st := ecs.Structures[id]
		if ecs.IsMarked(id) {
			continue
		}
		if st.Cooldown > 0 {
			st.Cooldown -= deltaTime
		}

		switch st.Kind {
		case defs.KindPulseTrap:
			s.updatePulseTrap(id, st)
		case defs.KindSlowTrap:
			s.updateSlowTrap(st)
		case defs.KindTurret:
			s.updateTurret(id, st)
		case defs.KindGenerator:
			s.updateGenerator(id, st)
		default:
			log.Printf("StructureSystem: unknown structure kind %q for %d", st.Kind, id)
		}

		if st.Cooldown < 0 {
			st.Cooldown = 0
		}
	}
}

// updatePulseTrap: взведена и остыла -> бьёт всех врагов на клетке, разряжается.
func (s *StructureSystem) updatePulseTrap(id types.EntityID, st *component.Structure) {
	trap, ok := s.world.ECS.Traps[id]
	if !ok {
		trap = &component.Trap{}
		s.world.ECS.Traps[id] = trap
	}
	if !trap.Armed {
		if st.Cooldown > 0 {
			return
		}
		trap.Armed = true
	}

	victims := s.world.OverlappingEnemies(st.Tile)
	if len(victims) == 0 {
		return
	}

	x, y := st.Tile.Center()
	if st.Ultimate {
		// Импульс по области с двойным уроном; каждый враг получает один удар.
		pulseDamage := int(math.Round(float64(st.Stats.Damage) * config.UltimatePulseFactor))
		hit := make(map[types.EntityID]bool, len(victims))
		for _, enemyID := range s.world.EnemiesWithin(x, y, st.Stats.PulseRadius) {
			hit[enemyID] = true
			ApplyDamage(s.world, enemyID, pulseDamage)
		}
		for _, enemyID := range victims {
			if !hit[enemyID] {
				ApplyDamage(s.world, enemyID, pulseDamage)
			}
		}
		s.world.SpawnEffect(x, y, config.PulseEffectColor, true, st.Stats.PulseRadius)
	} else {
		for _, enemyID := range victims {
			ApplyDamage(s.world, enemyID, st.Stats.Damage)
		}
		s.world.SpawnEffect(x, y, config.PulseEffectColor, false, 0.5)
	}

	trap.Armed = false
	st.Cooldown = st.Stats.Cooldown
}

func (s *StructureSystem) updateSlowTrap(st *component.Structure) {
	for _, enemyID := range s.world.OverlappingEnemies(st.Tile) {
		if slow, ok := s.world.ECS.SlowEffects[enemyID]; ok {
			slow.Refresh(st.Stats.SlowDuration)
			continue
		}
		s.world.ECS.SlowEffects[enemyID] = &component.SlowEffect{
			Timer:      st.Stats.SlowDuration,
			SlowFactor: config.SlowFactor,
		}
	}
}

func (s *StructureSystem) updateTurret(id types.EntityID, st *component.Structure) {
	turret, ok := s.world.ECS.Turrets[id]
	if !ok {
		turret = &component.TurretComponent{}
		s.world.ECS.Turrets[id] = turret
	}

	if !s.targetValid(st, turret.TargetID) {
		turret.TargetID = s.findFurthestEnemyInRange(st)
	}
	if turret.TargetID == types.NoEntity {
		return
	}

	x, y := st.Tile.Center()
	targetPos := s.world.ECS.Positions[turret.TargetID]
	turret.CurrentAngle = math.Atan2(targetPos.Y-y, targetPos.X-x)

	if st.Cooldown > 0 {
		return
	}
	shots := 1
	if st.Ultimate {
		shots = 2
	}
	for i := 0; i < shots; i++ {
		s.createProjectile(id, turret.TargetID, st, i)
	}
	st.Cooldown = st.Stats.Cooldown
}

// targetValid: цель жива и всё ещё в радиусе.
func (s *StructureSystem) targetValid(st *component.Structure, targetID types.EntityID) bool {
	if targetID == types.NoEntity {
		return false
	}
	if _, alive := s.world.ECS.AliveEnemy(targetID); !alive {
		return false
	}
	pos, ok := s.world.ECS.Positions[targetID]
	if !ok {
		return false
	}
	x, y := st.Tile.Center()
	return math.Hypot(pos.X-x, pos.Y-y) <= st.Stats.Range
}

// findFurthestEnemyInRange выбирает врага, ближе всех подошедшего к выходу.
// При равенстве побеждает меньший ID.
func (s *StructureSystem) findFurthestEnemyInRange(st *component.Structure) types.EntityID {
	x, y := st.Tile.Center()
	best := types.NoEntity
	bestProgress := math.Inf(-1)
	for _, enemyID := range s.world.EnemiesWithin(x, y, st.Stats.Range) {
		p := PathProgress(s.world, enemyID)
		if p > bestProgress {
			best = enemyID
			bestProgress = p
		}
	}
	return best
}

// PathProgress measures how far along the path an enemy is, in tiles.
func PathProgress(w *World, id types.EntityID) float64 {
	path, ok := w.ECS.Paths[id]
	pos, hasPos := w.ECS.Positions[id]
	if !ok || !hasPos {
		return 0
	}
	progress := float64(path.CurrentIndex)
	if next, ok := path.Next(); ok {
		tx, ty := next.Center()
		progress += 1 - math.Min(1, math.Hypot(tx-pos.X, ty-pos.Y))
	}
	return progress
}

func (s *StructureSystem) createProjectile(towerID, enemyID types.EntityID, st *component.Structure, shot int) {
	projID := s.world.ECS.NewEntity()
	x, y := st.Tile.Center()
	// второй снаряд ультимейта вылетает чуть в стороне
	if shot > 0 {
		y += 0.15
	}

	c := config.ProjectileColor
	if def, ok := s.world.Lib.Structures[st.DefID]; ok && def.Visuals.Color.A > 0 {
		c = def.Visuals.Color
	}

	s.world.ECS.Positions[projID] = &component.Position{X: x, Y: y}
	s.world.ECS.Projectiles[projID] = &component.Projectile{
		SourceID:     towerID,
		TargetID:     enemyID,
		Speed:        st.Stats.ProjectileSpeed,
		Damage:       st.Stats.Damage,
		SplashRadius: st.Stats.SplashRadius,
		Color:        c,
	}
	s.world.ECS.Renderables[projID] = &component.Renderable{
		Color:  c,
		Radius: 0.1,
		Glyph:  '•',
	}
}

func (s *StructureSystem) updateGenerator(id types.EntityID, st *component.Structure) {
	if st.Cooldown > 0 {
		return
	}
	amount := st.Stats.Income
	s.world.ECS.Economy.Earn(amount)
	st.Cooldown = st.Stats.Cooldown

	x, y := st.Tile.Center()
	s.world.SpawnText(x, y, signed(amount), config.GoldTextColor)
	s.world.Events.Dispatch(event.Event{Type: event.IncomeGenerated, Data: event.StructureData{
		ID: id, DefID: st.DefID, Tile: st.Tile, Level: st.Level, Amount: amount,
	}})
}
