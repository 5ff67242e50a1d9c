// internal/component/projectile.go
package component

import (
	"go-dungeon-defense/internal/types"
	"image/color"
)

// Projectile представляет летящий самонаводящийся снаряд.
type Projectile struct {
	SourceID     types.EntityID
	TargetID     types.EntityID
	Speed        float64
	Damage       int
	SplashRadius float64
	Color        color.RGBA
}
