package waterway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexmarch/internal/grid"
	"github.com/talgya/hexmarch/internal/territory"
	"github.com/talgya/hexmarch/internal/waterway"
)

// centerRiver builds a river through the given hexes, one center-anchored
// point per hex, order following slice position (downstream).
func centerRiver(id string, hexes ...grid.HexID) territory.River {
	r := territory.River{ID: id}
	for i, h := range hexes {
		r.Points = append(r.Points, territory.PathPoint{Hex: h, Anchor: grid.Center(), Order: i})
	}
	return r
}

func TestIndexRiverHexes(t *testing.T) {
	a := grid.HexID{Row: 2, Col: 2}
	b := a.Neighbor(grid.DirE)
	w := territory.Waterways{Rivers: []territory.River{centerRiver("r1", a, b)}}

	idx := waterway.BuildIndex(w, grid.DefaultLayout(10, 10))
	assert.True(t, idx.HasRiver(a))
	assert.True(t, idx.HasRiver(b))
	assert.False(t, idx.HasRiver(grid.HexID{Row: 0, Col: 0}))
	assert.Equal(t, 2, idx.RiverHexCount())
}

// TestIndexEdgeAnchorMarksBothSides verifies a point anchored on an edge
// classifies the adjacent hex sharing that edge as well.
func TestIndexEdgeAnchorMarksBothSides(t *testing.T) {
	a := grid.HexID{Row: 3, Col: 3}
	b := a.Neighbor(grid.DirSE)
	w := territory.Waterways{Rivers: []territory.River{{
		ID: "r1",
		Points: []territory.PathPoint{
			{Hex: a, Anchor: grid.Edge(grid.DirSE), Order: 0},
			{Hex: a, Anchor: grid.Center(), Order: 1},
		},
	}}}

	idx := waterway.BuildIndex(w, grid.DefaultLayout(10, 10))
	assert.True(t, idx.HasRiver(a))
	assert.True(t, idx.HasRiver(b), "hex across the anchored edge")
}

// TestIsUpstream pins the flow semantics: for a path ordered A->B->C,
// moving B->A goes against the flow, moving A->B goes with it.
func TestIsUpstream(t *testing.T) {
	a := grid.HexID{Row: 2, Col: 2}
	b := a.Neighbor(grid.DirE)
	c := b.Neighbor(grid.DirE)
	w := territory.Waterways{Rivers: []territory.River{centerRiver("r1", a, b, c)}}

	idx := waterway.BuildIndex(w, grid.DefaultLayout(10, 10))

	assert.True(t, idx.IsUpstream(b, a))
	assert.True(t, idx.IsUpstream(c, b))
	assert.False(t, idx.IsUpstream(a, b))
	assert.False(t, idx.IsUpstream(b, c))
	// Hexes not linked by a flow hop are never upstream of each other.
	assert.False(t, idx.IsUpstream(c, a))
	assert.False(t, idx.IsUpstream(a, grid.HexID{Row: 9, Col: 9}))
}

// TestIsUpstreamUnsortedPoints verifies points are sorted by order before
// flow edges are recorded.
func TestIsUpstreamUnsortedPoints(t *testing.T) {
	a := grid.HexID{Row: 2, Col: 2}
	b := a.Neighbor(grid.DirE)
	c := b.Neighbor(grid.DirE)
	w := territory.Waterways{Rivers: []territory.River{{
		ID: "r1",
		Points: []territory.PathPoint{
			{Hex: c, Anchor: grid.Center(), Order: 2},
			{Hex: a, Anchor: grid.Center(), Order: 0},
			{Hex: b, Anchor: grid.Center(), Order: 1},
		},
	}}}

	idx := waterway.BuildIndex(w, grid.DefaultLayout(10, 10))
	assert.True(t, idx.IsUpstream(b, a))
	assert.False(t, idx.IsUpstream(a, b))
}

func TestIndexLakesAndSwamps(t *testing.T) {
	lake := grid.HexID{Row: 1, Col: 1}
	swamp := grid.HexID{Row: 2, Col: 1}
	w := territory.Waterways{
		Lakes:  []territory.Feature{{ID: "l1", Hex: lake}},
		Swamps: []territory.Feature{{ID: "s1", Hex: swamp}},
	}

	idx := waterway.BuildIndex(w, grid.DefaultLayout(10, 10))
	assert.True(t, idx.HasLake(lake))
	assert.True(t, idx.HasSwamp(swamp))
	assert.False(t, idx.HasLake(swamp))
	assert.False(t, idx.HasSwamp(lake))
}

// TestIndexMalformedCrossingSkipped verifies a crossing referencing a
// missing river path is skipped without failing the rebuild.
func TestIndexMalformedCrossingSkipped(t *testing.T) {
	a := grid.HexID{Row: 2, Col: 2}
	b := a.Neighbor(grid.DirE)
	w := territory.Waterways{
		Rivers: []territory.River{centerRiver("r1", a, b)},
		Crossings: []territory.Crossing{
			{ID: "good", PathID: "r1", Hex: a, Anchor: grid.Center()},
			{ID: "orphan", PathID: "no-such-path", Hex: b, Anchor: grid.Center()},
		},
	}

	idx := waterway.BuildIndex(w, grid.DefaultLayout(10, 10))
	assert.True(t, idx.HasCrossing(a), "valid crossing still classifies")
	assert.False(t, idx.HasCrossing(b), "orphan crossing is invisible")
}

// TestIndexWaterfallEdgeQualified verifies both hexes sharing an edge
// agree on an edge-anchored waterfall.
func TestIndexWaterfallEdgeQualified(t *testing.T) {
	a := grid.HexID{Row: 4, Col: 4}
	b := a.Neighbor(grid.DirSW)
	w := territory.Waterways{
		Rivers: []territory.River{centerRiver("r1", a, b)},
		Waterfalls: []territory.Waterfall{
			{ID: "wf1", PathID: "r1", Hex: a, Anchor: grid.Edge(grid.DirSW)},
		},
	}

	idx := waterway.BuildIndex(w, grid.DefaultLayout(10, 10))
	assert.True(t, idx.HasWaterfall(a))
	assert.True(t, idx.HasWaterfall(b), "edge anchor marks both sides")
	assert.True(t, idx.HasWaterfallAt(a, grid.DirSW))
	assert.True(t, idx.HasWaterfallAt(b, grid.DirSW.Opposite()))
	assert.False(t, idx.HasWaterfallAt(a, grid.DirE))
}

// TestIndexRebuildIdempotent verifies rebuilding from identical data
// yields identical classification answers.
func TestIndexRebuildIdempotent(t *testing.T) {
	a := grid.HexID{Row: 2, Col: 2}
	b := a.Neighbor(grid.DirE)
	c := b.Neighbor(grid.DirSE)
	w := territory.Waterways{
		Rivers: []territory.River{centerRiver("r1", a, b, c)},
		Lakes:  []territory.Feature{{ID: "l1", Hex: grid.HexID{Row: 7, Col: 7}}},
		Crossings: []territory.Crossing{
			{ID: "x1", PathID: "r1", Hex: b, Anchor: grid.Center()},
		},
	}

	layout := grid.DefaultLayout(10, 10)
	first := waterway.BuildIndex(w, layout)
	second := waterway.BuildIndex(w, layout)

	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			h := grid.HexID{Row: row, Col: col}
			require.Equal(t, first.HasRiver(h), second.HasRiver(h), "river %v", h)
			require.Equal(t, first.HasLake(h), second.HasLake(h), "lake %v", h)
			require.Equal(t, first.HasCrossing(h), second.HasCrossing(h), "crossing %v", h)
			for _, n := range h.Neighbors() {
				require.Equal(t, first.IsUpstream(h, n), second.IsUpstream(h, n),
					"upstream %v->%v", h, n)
			}
		}
	}
}
