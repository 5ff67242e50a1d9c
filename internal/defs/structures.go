// internal/defs/structures.go
package defs

import "image/color"

// StructureDefinition holds all the static data for a specific type of trap or turret.
// Level, research and rank scaling is applied on top of these base values.
type StructureDefinition struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Kind            StructureKind `json:"kind"`
	Placement       Placement     `json:"placement"`
	Cost            int           `json:"cost"`
	Health          int           `json:"health"`
	Damage          int           `json:"damage,omitempty"`
	Range           float64       `json:"range,omitempty"` // tiles
	Cooldown        float64       `json:"cooldown,omitempty"`
	ProjectileSpeed float64       `json:"projectile_speed,omitempty"`
	SplashRadius    float64       `json:"splash_radius,omitempty"`
	PulseRadius     float64       `json:"pulse_radius,omitempty"`
	SlowDuration    float64       `json:"slow_duration,omitempty"`
	Income          int           `json:"income,omitempty"`
	Visuals         Visuals       `json:"visuals"`
}

const (
	StructureSpikeTrap    = "SPIKE_TRAP"
	StructureFrostTrap    = "FROST_TRAP"
	StructureArrowTurret  = "ARROW_TURRET"
	StructureCannonTurret = "CANNON_TURRET"
	StructureGoldMine     = "GOLD_MINE"
)

func defaultStructures() []StructureDefinition {
	return []StructureDefinition{
		{
			ID: StructureSpikeTrap, Name: "Spike Trap", Kind: KindPulseTrap, Placement: PlacePath,
			Cost: 40, Health: 60, Damage: 14, Cooldown: 1.2, PulseRadius: 1.5,
			Visuals: Visuals{Color: color.RGBA{255, 140, 0, 255}, RadiusFactor: 0.4, Glyph: '^'},
		},
		{
			ID: StructureFrostTrap, Name: "Frost Trap", Kind: KindSlowTrap, Placement: PlacePath,
			Cost: 30, Health: 50, SlowDuration: 1.5,
			Visuals: Visuals{Color: color.RGBA{120, 200, 255, 255}, RadiusFactor: 0.4, Glyph: '*'},
		},
		{
			ID: StructureArrowTurret, Name: "Arrow Turret", Kind: KindTurret, Placement: PlaceWall,
			Cost: 50, Health: 100, Damage: 8, Range: 3.0, Cooldown: 0.8, ProjectileSpeed: 9,
			Visuals: Visuals{Color: color.RGBA{50, 100, 255, 255}, RadiusFactor: 0.35, StrokeWidth: 2, Glyph: 'T'},
		},
		{
			ID: StructureCannonTurret, Name: "Cannon Turret", Kind: KindTurret, Placement: PlaceWall,
			Cost: 90, Health: 120, Damage: 22, Range: 2.6, Cooldown: 2.0, ProjectileSpeed: 6, SplashRadius: 1.1,
			Visuals: Visuals{Color: color.RGBA{180, 50, 230, 255}, RadiusFactor: 0.4, StrokeWidth: 2, Glyph: 'C'},
		},
		{
			ID: StructureGoldMine, Name: "Gold Mine", Kind: KindGenerator, Placement: PlaceWall,
			Cost: 60, Health: 80, Cooldown: 6.0, Income: 12,
			Visuals: Visuals{Color: color.RGBA{255, 215, 0, 255}, RadiusFactor: 0.35, Glyph: '$'},
		},
	}
}
