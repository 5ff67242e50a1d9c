// internal/system/visual_effect.go
package system

import (
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/entity"
)

// VisualEffectSystem управляет визуальными эффектами: вспышки урона,
// всплывающий текст, одноразовые эффекты смерти и импульсов.
type VisualEffectSystem struct {
	ecs *entity.ECS
}

// NewVisualEffectSystem создает новую систему визуальных эффектов.
func NewVisualEffectSystem(ecs *entity.ECS) *VisualEffectSystem {
	return &VisualEffectSystem{ecs: ecs}
}

// Update обновляет все активные визуальные эффекты.
func (s *VisualEffectSystem) Update(deltaTime float64) {
	for id, flash := range s.ecs.DamageFlashes {
		flash.Timer -= deltaTime
		if flash.Timer <= 0 {
			delete(s.ecs.DamageFlashes, id)
		}
	}

	for id, text := range s.ecs.Texts {
		text.Timer += deltaTime
		if pos, ok := s.ecs.Positions[id]; ok && text.Duration > 0 {
			pos.Y -= config.FloatingTextRise * deltaTime / text.Duration
		}
		if text.Timer >= text.Duration {
			s.ecs.MarkForRemoval(id)
		}
	}

	for id, effect := range s.ecs.Effects {
		effect.Timer += deltaTime
		if effect.Timer >= effect.Duration {
			s.ecs.MarkForRemoval(id)
		}
	}
}
