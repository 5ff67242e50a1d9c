// pkg/gridmap/map.go
package gridmap

import "fmt"

// Tile — состояние клетки.
type Tile uint8

const (
	Wall Tile = iota
	Open
)

func (t Tile) String() string {
	if t == Open {
		return "open"
	}
	return "wall"
}

// Rand is the subset of a random source the generator needs.
type Rand interface {
	Float64() float64
}

// Config describes the shape of a generated grid.
type Config struct {
	Width, Height int
	// OpenProbability is the chance that an interior tile is Open.
	OpenProbability float64
}

// Grid — прямоугольная карта с одним входом и одним выходом.
type Grid struct {
	Width, Height int
	Tiles         []Tile
	Entry         Point
	Exit          Point
}

// NewGrid создаёт сетку, целиком заполненную стенами, с открытыми входом и выходом
// на середине левой и правой границы.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
		Entry:  Point{X: 0, Y: height / 2},
		Exit:   Point{X: width - 1, Y: height / 2},
	}
	g.Set(g.Entry, Open)
	g.Set(g.Exit, Open)
	return g
}

// Generate produces a randomized grid. Every non-border tile is independently
// Open with cfg.OpenProbability; border tiles stay Wall except entry and exit.
func Generate(cfg Config, rng Rand) *Grid {
	g := NewGrid(cfg.Width, cfg.Height)
	for y := 1; y < cfg.Height-1; y++ {
		for x := 1; x < cfg.Width-1; x++ {
			if rng.Float64() < cfg.OpenProbability {
				g.Set(Point{X: x, Y: y}, Open)
			}
		}
	}
	return g
}

// Contains сообщает, лежит ли клетка внутри сетки.
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

// At возвращает состояние клетки; клетки за пределами сетки считаются стенами.
func (g *Grid) At(p Point) Tile {
	if !g.Contains(p) {
		return Wall
	}
	return g.Tiles[p.Y*g.Width+p.X]
}

// Set меняет состояние клетки. Вызовы за пределами сетки игнорируются.
func (g *Grid) Set(p Point, t Tile) {
	if !g.Contains(p) {
		return
	}
	g.Tiles[p.Y*g.Width+p.X] = t
}

// IsPassable reports whether enemies may walk through p.
func (g *Grid) IsPassable(p Point) bool {
	return g.At(p) == Open
}

// IsBorder reports whether p lies on the outer ring of the grid.
func (g *Grid) IsBorder(p Point) bool {
	return p.X == 0 || p.Y == 0 || p.X == g.Width-1 || p.Y == g.Height-1
}

// OpenCount возвращает количество открытых клеток.
func (g *Grid) OpenCount() int {
	n := 0
	for _, t := range g.Tiles {
		if t == Open {
			n++
		}
	}
	return n
}

// ValidatePath checks that path starts at the entry, ends at the exit, and that
// every consecutive pair of tiles is 4-adjacent and Open.
func (g *Grid) ValidatePath(path []Point) error {
	if len(path) == 0 {
		return fmt.Errorf("path is empty")
	}
	if path[0] != g.Entry {
		return fmt.Errorf("path starts at %v, want entry %v", path[0], g.Entry)
	}
	if last := path[len(path)-1]; last != g.Exit {
		return fmt.Errorf("path ends at %v, want exit %v", last, g.Exit)
	}
	for i, p := range path {
		if !g.IsPassable(p) {
			return fmt.Errorf("path tile %d at %v is not open", i, p)
		}
		if i > 0 && !path[i-1].IsAdjacent(p) {
			return fmt.Errorf("path tiles %d and %d are not adjacent: %v -> %v", i-1, i, path[i-1], p)
		}
	}
	return nil
}
