// internal/defs/types.go
package defs

import "image/color"

// StructureKind is the closed set of structure behaviours.
type StructureKind string

const (
	KindPulseTrap StructureKind = "PULSE_TRAP"
	KindSlowTrap  StructureKind = "SLOW_TRAP"
	KindTurret    StructureKind = "TURRET"
	KindGenerator StructureKind = "GENERATOR"
)

// IsTrap reports whether structures of this kind sit on path tiles and react to overlap.
func (k StructureKind) IsTrap() bool {
	return k == KindPulseTrap || k == KindSlowTrap
}

// Placement defines which tile kind a structure may be built on.
type Placement string

const (
	PlacePath Placement = "PATH"
	PlaceWall Placement = "WALL"
)

// Visuals contains parameters for rendering an entity.
type Visuals struct {
	Color        color.RGBA `json:"color"`
	RadiusFactor float64    `json:"radius_factor"`
	StrokeWidth  float64    `json:"stroke_width"`
	Glyph        rune       `json:"glyph"`
}
