// pkg/gridmap/pathfinding.go
package gridmap

import (
	"container/heap"
	"errors"
)

// ErrNoPath is returned by GenerateWithPath when the attempt limit runs out.
var ErrNoPath = errors.New("gridmap: no path found within attempt limit")

// AStar находит кратчайший путь от start до goal по открытым клеткам.
// Ничьи по f разрешаются порядком добавления в очередь, поэтому результат детерминирован.
func AStar(start, goal Point, g *Grid) []Point {
	if !g.IsPassable(start) || !g.IsPassable(goal) {
		return nil
	}

	pq := &PriorityQueue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, &Node{Point: start, Cost: start.Distance(goal), Seq: seq})
	costSoFar := map[Point]int{start: 0}
	closed := make(map[Point]bool)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*Node)
		if current.Point == goal {
			return reconstructPath(current)
		}
		if closed[current.Point] {
			continue
		}
		closed[current.Point] = true

		for _, neighbor := range current.Point.Neighbors(g) {
			if !g.IsPassable(neighbor) || closed[neighbor] {
				continue
			}
			newCost := costSoFar[current.Point] + 1
			if old, exists := costSoFar[neighbor]; !exists || newCost < old {
				costSoFar[neighbor] = newCost
				seq++
				heap.Push(pq, &Node{
					Point:  neighbor,
					Cost:   newCost + neighbor.Distance(goal),
					Seq:    seq,
					Parent: current,
				})
			}
		}
	}
	return nil // Нет пути
}

// FindPath ищет путь от входа до выхода сетки.
func FindPath(g *Grid) []Point {
	return AStar(g.Entry, g.Exit, g)
}

// GenerateWithPath repeats {Generate; FindPath} until a grid with a path is
// produced. Grids without a path are discarded whole. maxAttempts <= 0 means
// no limit.
func GenerateWithPath(cfg Config, rng Rand, maxAttempts int) (*Grid, []Point, int, error) {
	for attempt := 1; maxAttempts <= 0 || attempt <= maxAttempts; attempt++ {
		g := Generate(cfg, rng)
		if path := FindPath(g); len(path) > 0 {
			return g, path, attempt, nil
		}
	}
	return nil, nil, maxAttempts, ErrNoPath
}

// PriorityQueue для A*
type PriorityQueue []*Node

type Node struct {
	Point  Point
	Cost   int // f = g + h
	Seq    int // порядок добавления, разрешает ничьи
	Parent *Node
}

func (pq PriorityQueue) Len() int { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Cost != pq[j].Cost {
		return pq[i].Cost < pq[j].Cost
	}
	return pq[i].Seq < pq[j].Seq
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*Node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

func reconstructPath(node *Node) []Point {
	path := []Point{}
	for node != nil {
		path = append(path, node.Point)
		node = node.Parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
