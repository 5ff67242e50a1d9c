// internal/system/projectile.go
package system

import (
	"math"

	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/types"
)

// ProjectileSystem управляет движением снарядов и нанесением урона. Фаза 3 кадра.
type ProjectileSystem struct {
	world *World
}

func NewProjectileSystem(world *World) *ProjectileSystem {
	return &ProjectileSystem{world: world}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	ecs := s.world.ECS
	for _, id := range ecs.ProjectileIDs() {
		if ecs.IsMarked(id) {
			continue
		}
		proj := ecs.Projectiles[id]
		pos := ecs.Positions[id]
		if pos == nil {
			ecs.MarkForRemoval(id)
			continue
		}

		// Цель пропала — снаряд исчезает без эффекта, перенаведения нет.
		if _, alive := ecs.AliveEnemy(proj.TargetID); !alive {
			ecs.MarkForRemoval(id)
			continue
		}
		targetPos, ok := ecs.Positions[proj.TargetID]
		if !ok {
			ecs.MarkForRemoval(id)
			continue
		}

		dx := targetPos.X - pos.X
		dy := targetPos.Y - pos.Y
		dist := math.Hypot(dx, dy)
		step := proj.Speed * deltaTime

		if dist <= step || dist <= config.ProjectileHitEpsilon {
			pos.X, pos.Y = targetPos.X, targetPos.Y
			s.hitTarget(id, proj, pos)
			continue
		}
		pos.X += (dx / dist) * step
		pos.Y += (dy / dist) * step
	}
}

func (s *ProjectileSystem) hitTarget(projectileID types.EntityID, proj *component.Projectile, at *component.Position) {
	ApplyDamage(s.world, proj.TargetID, proj.Damage)

	if proj.SplashRadius > 0 {
		splash := int(float64(proj.Damage) * config.SplashDamageFactor)
		for _, enemyID := range s.world.EnemiesWithin(at.X, at.Y, proj.SplashRadius) {
			if enemyID != proj.TargetID {
				ApplyDamage(s.world, enemyID, splash)
			}
		}
		s.world.SpawnEffect(at.X, at.Y, config.SplashEffectColor, true, proj.SplashRadius)
	}

	s.world.ECS.MarkForRemoval(projectileID)
}
