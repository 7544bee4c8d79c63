package movement

import (
	"log/slog"
	"sync/atomic"

	"github.com/talgya/hexmarch/internal/grid"
	"github.com/talgya/hexmarch/internal/territory"
	"github.com/talgya/hexmarch/internal/waterway"
)

// snapshot bundles one complete, immutable view of the world: the hex
// lookup, the waterway classification, and the barrier geometry. Queries
// run against a single snapshot end to end.
type snapshot struct {
	hexes territory.Snapshot
	water *waterway.Index
	geom  *waterway.Geometry
}

// Engine answers movement-cost, reachability, and shortest-path queries
// over the current world snapshot.
//
// Rebuild replaces the snapshot atomically: concurrent readers always see
// either the old or the new complete snapshot, never a mix. A single
// writer is assumed; queries need no locking.
type Engine struct {
	geo  grid.GeometryProvider
	snap atomic.Pointer[snapshot]
}

// NewEngine creates an engine over the given geometry provider. Until the
// first Rebuild every query reports unknown/impassable.
func NewEngine(geo grid.GeometryProvider) *Engine {
	return &Engine{geo: geo}
}

// Rebuild replaces the world snapshot wholesale. The host calls this
// whenever its territory or waterway data changes. Barrier geometry is
// carried over unchanged when the river topology hash matches the
// previous snapshot.
func (e *Engine) Rebuild(hexes []territory.Hex, w territory.Waterways) {
	prev := e.snap.Load()

	var geom *waterway.Geometry
	if prev != nil && !prev.geom.Stale(w) {
		geom = prev.geom // topology unchanged, keep computed segments
	} else {
		geom = waterway.NewGeometry(e.geo)
		geom.Rebuild(w)
	}

	next := &snapshot{
		hexes: territory.NewSnapshot(hexes),
		water: waterway.BuildIndex(w, e.geo),
		geom:  geom,
	}
	e.snap.Store(next)

	slog.Debug("movement snapshot rebuilt",
		"hexes", next.hexes.Count(),
		"riverHexes", next.water.RiverHexCount(),
		"segments", len(geom.Segments()))
}

// Cost returns the cost of moving into hex for a unit with the given
// traits, with no source hex known (directional effects like the
// upstream penalty and river barriers do not apply).
func (e *Engine) Cost(hex grid.HexID, tr Traits) int {
	s := e.snap.Load()
	if s == nil {
		return Impassable
	}
	return s.cost(hex, tr, grid.HexID{}, false)
}

// StepCost returns the cost of moving from one hex into an adjacent hex,
// including directional effects: river barriers for grounded units and
// the upstream penalty for naval movement.
func (e *Engine) StepCost(from, to grid.HexID, tr Traits) int {
	s := e.snap.Load()
	if s == nil {
		return Impassable
	}
	return s.cost(to, tr, from, true)
}

// Ready reports whether a snapshot has been built.
func (e *Engine) Ready() bool {
	return e.snap.Load() != nil
}
