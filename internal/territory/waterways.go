package territory

import (
	"sort"

	"github.com/talgya/hexmarch/internal/grid"
)

// PathPoint is one anchored point along a river path. Order defines the
// point's position in the flow sequence: increasing order is downstream.
type PathPoint struct {
	Hex    grid.HexID  `json:"hex"`
	Anchor grid.Anchor `json:"anchor"`
	Order  int         `json:"order"`
}

// River is an ordered waterway path. Points are not necessarily stored
// sorted; use SortedPoints before walking the flow.
type River struct {
	ID     string      `json:"id"`
	Name   string      `json:"name,omitempty"`
	Points []PathPoint `json:"points"`
}

// SortedPoints returns the river's points in ascending flow order.
// The receiver is not modified.
func (r River) SortedPoints() []PathPoint {
	pts := make([]PathPoint, len(r.Points))
	copy(pts, r.Points)
	sort.SliceStable(pts, func(i, j int) bool {
		return pts[i].Order < pts[j].Order
	})
	return pts
}

// Feature is a point waterway feature occupying a whole hex: a lake or
// a swamp.
type Feature struct {
	ID  string     `json:"id"`
	Hex grid.HexID `json:"hex"`
}

// Crossing is a bridge or ford anchored to a connection point of a river
// path. A crossing disables the adjoining river segments as movement
// barriers; it does not clear the hex's water classification.
type Crossing struct {
	ID     string      `json:"id"`
	PathID string      `json:"path_id"`
	Hex    grid.HexID  `json:"hex"`
	Anchor grid.Anchor `json:"anchor"`
}

// Waterfall is anchored like a crossing. It blocks boat traffic through
// its connection point but never blocks swimmers.
type Waterfall struct {
	ID     string      `json:"id"`
	PathID string      `json:"path_id"`
	Hex    grid.HexID  `json:"hex"`
	Anchor grid.Anchor `json:"anchor"`
}

// Waterways is the complete waterway snapshot handed to the movement
// engine on rebuild.
type Waterways struct {
	Rivers     []River     `json:"rivers"`
	Lakes      []Feature   `json:"lakes"`
	Swamps     []Feature   `json:"swamps"`
	Crossings  []Crossing  `json:"crossings"`
	Waterfalls []Waterfall `json:"waterfalls"`
}

// PointCount returns the total number of river path points.
func (w Waterways) PointCount() int {
	n := 0
	for _, r := range w.Rivers {
		n += len(r.Points)
	}
	return n
}

// FindRiver returns the river with the given ID, or nil.
func (w Waterways) FindRiver(id string) *River {
	for i := range w.Rivers {
		if w.Rivers[i].ID == id {
			return &w.Rivers[i]
		}
	}
	return nil
}
