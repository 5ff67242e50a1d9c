// component/movement.go
package component

import "go-dungeon-defense/pkg/gridmap"

// Position — компонент позиции (в тайловых единицах, центр клетки (x, y) = (x, y))
type Position struct {
	X, Y float64
}

// Velocity — компонент скорости (тайлов в секунду)
type Velocity struct {
	Speed float64
}

// Path — компонент пути. CurrentIndex — индекс последней достигнутой точки,
// он только растёт.
type Path struct {
	Tiles        []gridmap.Point
	CurrentIndex int
}

// Next returns the waypoint the entity is walking towards.
func (p *Path) Next() (gridmap.Point, bool) {
	if p.CurrentIndex+1 >= len(p.Tiles) {
		return gridmap.Point{}, false
	}
	return p.Tiles[p.CurrentIndex+1], true
}

// AtEnd reports whether the final waypoint has been reached.
func (p *Path) AtEnd() bool {
	return p.CurrentIndex >= len(p.Tiles)-1
}
