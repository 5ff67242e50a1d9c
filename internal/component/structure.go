// component/structure.go
package component

import (
	"go-dungeon-defense/internal/defs"
	"go-dungeon-defense/pkg/gridmap"
)

// StructureStats — производные характеристики, пересчитываются при улучшении.
type StructureStats struct {
	Damage          int
	Range           float64
	Cooldown        float64
	ProjectileSpeed float64
	SplashRadius    float64
	PulseRadius     float64
	SlowDuration    float64
	Income          int
	MaxHealth       int
}

// Structure — ловушка, турель или генератор дохода, стоящий на клетке.
type Structure struct {
	DefID      string
	Kind       defs.StructureKind
	Tile       gridmap.Point
	Level      int  // 1..MaxStructureLevel, никогда не уменьшается
	Ultimate   bool // односторонний флаг
	Investment int  // стоимость постройки плюс все улучшения
	Cooldown   float64
	Stats      StructureStats
	IsSelected bool
}

// Trap хранит состояние цикла взведения импульсной ловушки.
type Trap struct {
	Armed bool
}
