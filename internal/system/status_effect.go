// internal/system/status_effect.go
package system

import "go-dungeon-defense/internal/entity"

// StatusEffectSystem ведёт таймеры замедления.
type StatusEffectSystem struct {
	ecs *entity.ECS
}

func NewStatusEffectSystem(ecs *entity.ECS) *StatusEffectSystem {
	return &StatusEffectSystem{ecs: ecs}
}

// Update ages every slow by deltaTime. A slow expires once its timer reaches
// zero or its carrier has left the field.
func (s *StatusEffectSystem) Update(deltaTime float64) {
	for id, slow := range s.ecs.SlowEffects {
		if _, alive := s.ecs.AliveEnemy(id); !alive {
			delete(s.ecs.SlowEffects, id)
			continue
		}
		if slow.Timer -= deltaTime; slow.Timer <= 0 {
			delete(s.ecs.SlowEffects, id)
		}
	}
}
