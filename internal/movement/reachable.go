package movement

import (
	"container/heap"

	"github.com/talgya/hexmarch/internal/grid"
)

// frontierItem is a hex and its accumulated cost from the start, stored
// in the Dijkstra priority queue.
type frontierItem struct {
	hex  grid.HexID
	cost int
}

// frontier is a min-heap of frontierItem ordered by cost. Shorter routes
// push duplicate entries ("lazy decrease-key"); stale entries are skipped
// on pop via the visited set.
type frontier []frontierItem

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].cost < f[j].cost }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// Reachable returns every hex reachable from start within the movement
// budget, mapped to its minimal cost. Dijkstra-style relaxation: costs
// are non-negative, so the first finalized cost per hex is minimal.
//
// An unknown start or a negative budget yields an empty map. A zero
// budget reaches only the origin.
func (e *Engine) Reachable(start grid.HexID, budget int, tr Traits) map[grid.HexID]int {
	result := make(map[grid.HexID]int)

	s := e.snap.Load()
	if s == nil || budget < 0 || s.hexes.Get(start) == nil {
		return result
	}

	result[start] = 0
	visited := make(map[grid.HexID]bool)

	pq := make(frontier, 0, 64)
	heap.Init(&pq)
	heap.Push(&pq, frontierItem{hex: start, cost: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(frontierItem)
		if visited[item.hex] {
			continue // stale duplicate
		}
		visited[item.hex] = true

		for _, n := range e.geo.Neighbors(item.hex) {
			step := s.cost(n, tr, item.hex, true)
			if step >= Impassable {
				continue
			}
			total := item.cost + step
			if total > budget {
				continue
			}
			if prev, seen := result[n]; seen && total >= prev {
				continue
			}
			result[n] = total
			heap.Push(&pq, frontierItem{hex: n, cost: total})
		}
	}

	return result
}
