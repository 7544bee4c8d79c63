// Package waterway classifies territory waterways for the movement cost
// model and turns river topology into pixel-space barrier geometry.
//
// The Index answers per-hex classification queries in O(1); Geometry
// answers river-barrier queries between adjacent hexes. Both are rebuilt
// wholesale whenever the waterway snapshot changes.
package waterway

import (
	"log/slog"

	"github.com/talgya/hexmarch/internal/grid"
	"github.com/talgya/hexmarch/internal/territory"
)

// flowEdge is a directed downstream hop between two river hexes.
type flowEdge struct {
	From grid.HexID
	To   grid.HexID
}

// Index holds the precomputed per-hex waterway classification.
// Build with BuildIndex; an Index is immutable once built and safe for
// concurrent readers.
type Index struct {
	river     map[grid.HexID]struct{}
	lake      map[grid.HexID]struct{}
	swamp     map[grid.HexID]struct{}
	crossing  map[grid.HexID]struct{}
	waterfall map[grid.HexID]struct{}

	// waterfallEdges holds edge-anchored waterfalls by canonical edge.
	waterfallEdges map[grid.EdgeKey]struct{}

	// flow records downstream hops; IsUpstream consults the reverse.
	flow map[flowEdge]struct{}
}

// BuildIndex classifies a waterway snapshot. Malformed features (bad
// anchors, crossings or waterfalls referencing a missing path) are logged
// and skipped; the rest of the snapshot still classifies.
func BuildIndex(w territory.Waterways, geo grid.GeometryProvider) *Index {
	idx := &Index{
		river:          make(map[grid.HexID]struct{}),
		lake:           make(map[grid.HexID]struct{}),
		swamp:          make(map[grid.HexID]struct{}),
		crossing:       make(map[grid.HexID]struct{}),
		waterfall:      make(map[grid.HexID]struct{}),
		waterfallEdges: make(map[grid.EdgeKey]struct{}),
		flow:           make(map[flowEdge]struct{}),
	}

	for _, r := range w.Rivers {
		idx.indexRiver(r, geo)
	}
	for _, f := range w.Lakes {
		idx.lake[f.Hex] = struct{}{}
	}
	for _, f := range w.Swamps {
		idx.swamp[f.Hex] = struct{}{}
	}
	for _, c := range w.Crossings {
		if w.FindRiver(c.PathID) == nil {
			slog.Warn("crossing references unknown river path, skipping",
				"crossing", c.ID, "path", c.PathID)
			continue
		}
		if !c.Anchor.Valid() {
			slog.Warn("crossing has malformed anchor, skipping",
				"crossing", c.ID, "anchor", c.Anchor)
			continue
		}
		idx.markAnchored(idx.crossing, c.Hex, c.Anchor, geo)
	}
	for _, wf := range w.Waterfalls {
		if w.FindRiver(wf.PathID) == nil {
			slog.Warn("waterfall references unknown river path, skipping",
				"waterfall", wf.ID, "path", wf.PathID)
			continue
		}
		if !wf.Anchor.Valid() {
			slog.Warn("waterfall has malformed anchor, skipping",
				"waterfall", wf.ID, "anchor", wf.Anchor)
			continue
		}
		idx.markAnchored(idx.waterfall, wf.Hex, wf.Anchor, geo)
		if wf.Anchor.Kind == grid.AnchorEdge {
			key := grid.SharedEdge(wf.Hex, grid.Direction(wf.Anchor.Index))
			idx.waterfallEdges[key] = struct{}{}
		}
	}

	return idx
}

// indexRiver marks every hex the river touches and records downstream
// flow edges between consecutive points.
func (idx *Index) indexRiver(r territory.River, geo grid.GeometryProvider) {
	pts := r.SortedPoints()
	for _, pt := range pts {
		if !pt.Anchor.Valid() {
			slog.Warn("river point has malformed anchor, skipping",
				"river", r.ID, "hex", pt.Hex, "anchor", pt.Anchor)
			continue
		}
		idx.markAnchored(idx.river, pt.Hex, pt.Anchor, geo)
	}
	for i := 1; i < len(pts); i++ {
		from, to := pts[i-1].Hex, pts[i].Hex
		if from == to {
			continue
		}
		idx.flow[flowEdge{From: from, To: to}] = struct{}{}
	}
}

// markAnchored marks the owning hex in set, and for edge anchors also the
// adjacent hex sharing that edge: both sides of a shared edge carry the
// classification.
func (idx *Index) markAnchored(set map[grid.HexID]struct{}, h grid.HexID, a grid.Anchor, geo grid.GeometryProvider) {
	set[h] = struct{}{}
	if a.Kind == grid.AnchorEdge {
		n := geo.Neighbors(h)[a.Index]
		set[n] = struct{}{}
	}
}

// HasRiver reports whether a river touches the hex.
func (idx *Index) HasRiver(h grid.HexID) bool {
	_, ok := idx.river[h]
	return ok
}

// HasLake reports whether the hex is a lake.
func (idx *Index) HasLake(h grid.HexID) bool {
	_, ok := idx.lake[h]
	return ok
}

// HasSwamp reports whether the hex carries a swamp classification.
func (idx *Index) HasSwamp(h grid.HexID) bool {
	_, ok := idx.swamp[h]
	return ok
}

// HasCrossing reports whether a bridge or ford touches the hex.
func (idx *Index) HasCrossing(h grid.HexID) bool {
	_, ok := idx.crossing[h]
	return ok
}

// HasWaterfall reports whether a waterfall touches the hex.
func (idx *Index) HasWaterfall(h grid.HexID) bool {
	_, ok := idx.waterfall[h]
	return ok
}

// HasWaterfallAt reports whether a waterfall sits on the given edge of h.
// Both hexes sharing the edge agree on the answer.
func (idx *Index) HasWaterfallAt(h grid.HexID, d grid.Direction) bool {
	_, ok := idx.waterfallEdges[grid.SharedEdge(h, d)]
	return ok
}

// IsUpstream reports whether moving from one river hex to an adjacent
// river hex goes against recorded flow order, i.e. some river path flows
// to->from. False when either hex has no river or no flow hop links them.
func (idx *Index) IsUpstream(from, to grid.HexID) bool {
	if !idx.HasRiver(from) || !idx.HasRiver(to) {
		return false
	}
	_, ok := idx.flow[flowEdge{From: to, To: from}]
	return ok
}

// RiverHexCount returns the number of river-classified hexes.
func (idx *Index) RiverHexCount() int {
	return len(idx.river)
}
