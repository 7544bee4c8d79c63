package movement

import (
	"container/heap"

	"github.com/talgya/hexmarch/internal/grid"
)

// PathResult is the outcome of a shortest-path query. When Reachable is
// false, Path is empty and TotalCost is Impassable.
type PathResult struct {
	Path      []grid.HexID `json:"path"`
	TotalCost int          `json:"total_cost"`
	Reachable bool         `json:"reachable"`
}

// openItem is an A* open-set entry: f = g + h, where g is the cost from
// the start and h the hex-distance heuristic to the goal.
type openItem struct {
	hex grid.HexID
	g   int
	f   int
}

// openSet is a min-heap of openItem ordered by f, ties broken toward the
// larger g (deeper nodes first), which keeps expansion focused.
type openSet []openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].g > o[j].g
}
func (o openSet) Swap(i, j int)       { o[i], o[j] = o[j], o[i] }
func (o *openSet) Push(x interface{}) { *o = append(*o, x.(openItem)) }
func (o *openSet) Pop() interface{} {
	old := *o
	n := len(old)
	item := old[n-1]
	*o = old[:n-1]
	return item
}

// unreachable is the canonical negative result.
func unreachable() PathResult {
	return PathResult{Path: nil, TotalCost: Impassable, Reachable: false}
}

// FindPath returns a minimal-cost path from start to goal within the
// movement budget, using A* with the hex-grid distance heuristic (every
// step costs at least 1, so the heuristic is admissible and consistent).
//
// start == goal returns a single-hex path at cost 0. An unknown start or
// goal, or an exhausted open set, reports unreachable rather than
// erroring.
func (e *Engine) FindPath(start, goal grid.HexID, budget int, tr Traits) PathResult {
	s := e.snap.Load()
	if s == nil || budget < 0 {
		return unreachable()
	}
	if s.hexes.Get(start) == nil || s.hexes.Get(goal) == nil {
		return unreachable()
	}
	if start == goal {
		return PathResult{Path: []grid.HexID{start}, TotalCost: 0, Reachable: true}
	}

	gScore := map[grid.HexID]int{start: 0}
	parent := make(map[grid.HexID]grid.HexID)
	closed := make(map[grid.HexID]bool)

	open := make(openSet, 0, 64)
	heap.Init(&open)
	heap.Push(&open, openItem{hex: start, g: 0, f: grid.Distance(start, goal)})

	for open.Len() > 0 {
		current := heap.Pop(&open).(openItem)
		if closed[current.hex] {
			continue // stale duplicate
		}
		if current.hex == goal {
			return PathResult{
				Path:      reconstruct(parent, start, goal),
				TotalCost: current.g,
				Reachable: true,
			}
		}
		closed[current.hex] = true

		for _, n := range e.geo.Neighbors(current.hex) {
			if closed[n] {
				continue
			}
			step := s.cost(n, tr, current.hex, true)
			if step >= Impassable {
				continue
			}
			tentative := current.g + step
			if tentative > budget {
				continue
			}
			if prev, seen := gScore[n]; seen && tentative >= prev {
				continue
			}
			gScore[n] = tentative
			parent[n] = current.hex
			heap.Push(&open, openItem{
				hex: n,
				g:   tentative,
				f:   tentative + grid.Distance(n, goal),
			})
		}
	}

	return unreachable()
}

// reconstruct follows parent pointers from goal back to start, then
// reverses into start-first order.
func reconstruct(parent map[grid.HexID]grid.HexID, start, goal grid.HexID) []grid.HexID {
	path := []grid.HexID{goal}
	for cur := goal; cur != start; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
