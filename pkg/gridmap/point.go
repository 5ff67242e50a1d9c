// pkg/gridmap/point.go
package gridmap

// Point — координаты клетки на квадратной сетке.
type Point struct {
	X, Y int
}

// NeighborDirections defines the 4 orthogonal directions, starting from East and going clockwise
// (screen Y grows downwards). A* expands neighbours in exactly this order.
var NeighborDirections = []Point{
	{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1},
}

// Add возвращает сумму координат.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Distance — манхэттенское расстояние между клетками.
func (p Point) Distance(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// IsAdjacent сообщает, являются ли клетки соседями по одной из 4 сторон.
func (p Point) IsAdjacent(o Point) bool {
	return p.Distance(o) == 1
}

// Center возвращает центр клетки в тайловых единицах.
func (p Point) Center() (x, y float64) {
	return float64(p.X), float64(p.Y)
}

// ToPixel конвертирует клетку в пиксельные координаты её центра.
func (p Point) ToPixel(tileSize float64) (x, y float64) {
	return float64(p.X)*tileSize + tileSize/2, float64(p.Y)*tileSize + tileSize/2
}

// PixelToPoint конвертирует пиксельные координаты в клетку.
func PixelToPoint(x, y, tileSize float64) Point {
	return Point{X: floorDiv(x, tileSize), Y: floorDiv(y, tileSize)}
}

// Neighbors возвращает соседей клетки, лежащих внутри сетки.
func (p Point) Neighbors(g *Grid) []Point {
	neighbors := make([]Point, 0, 4)
	for _, d := range NeighborDirections {
		n := p.Add(d)
		if g.Contains(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func floorDiv(v, size float64) int {
	q := v / size
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}
