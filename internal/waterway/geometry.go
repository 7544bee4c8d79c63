package waterway

import (
	"encoding/binary"
	"hash/fnv"
	"log/slog"
	"math"

	"github.com/talgya/hexmarch/internal/grid"
	"github.com/talgya/hexmarch/internal/territory"
)

// intersectEpsilon rejects near-parallel segment pairs and intersections
// sitting on a segment endpoint, in normalized parametric space.
const intersectEpsilon = 1e-10

// Segment is one pixel-space piece of a river path, joining two
// consecutive path points. Segments with a crossing at either endpoint
// are fordable and never act as barriers.
type Segment struct {
	PathID      string
	Index       int
	Start       grid.Point
	End         grid.Point
	HasCrossing bool
}

// Geometry converts river topology into barrier segments and answers
// whether straight-line movement between two hex centers crosses an
// unforded river. A content hash over the snapshot gates recomputation.
//
// Until the first successful Rebuild, all barrier queries fail open
// (report no barrier): early queries degrade rather than crash, and the
// barrier activates once geometry is available.
type Geometry struct {
	geo      grid.GeometryProvider
	segments []Segment
	hash     uint64
	ready    bool
}

// NewGeometry creates an empty geometry engine over the given provider.
func NewGeometry(geo grid.GeometryProvider) *Geometry {
	return &Geometry{geo: geo}
}

// contentHash fingerprints the waterway topology that affects barrier
// geometry: path, point, crossing, and waterfall counts.
func contentHash(w territory.Waterways) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, n := range []int{len(w.Rivers), w.PointCount(), len(w.Crossings), len(w.Waterfalls)} {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Rebuild recomputes barrier segments if the snapshot's content hash
// differs from the last computed one. Returns true when segments were
// actually recomputed.
func (g *Geometry) Rebuild(w territory.Waterways) bool {
	h := contentHash(w)
	if g.ready && h == g.hash {
		return false
	}
	g.segments = computeSegments(w, g.geo)
	g.hash = h
	g.ready = true
	return true
}

// computeSegments joins consecutive ordered points of every river path
// into pixel segments. Pairs with an unresolvable endpoint (map boundary,
// provider not ready) are skipped.
func computeSegments(w territory.Waterways, geo grid.GeometryProvider) []Segment {
	// Crossing lookup by (path, hex, anchor): a crossing at either
	// endpoint of a segment makes that segment fordable.
	type pointKey struct {
		pathID string
		hex    grid.HexID
		anchor grid.Anchor
	}
	forded := make(map[pointKey]struct{}, len(w.Crossings))
	for _, c := range w.Crossings {
		forded[pointKey{c.PathID, c.Hex, c.Anchor}] = struct{}{}
	}

	var segments []Segment
	for _, r := range w.Rivers {
		pts := r.SortedPoints()
		for i := 1; i < len(pts); i++ {
			start, okA := geo.Position(pts[i-1].Hex, pts[i-1].Anchor)
			end, okB := geo.Position(pts[i].Hex, pts[i].Anchor)
			if !okA || !okB {
				slog.Debug("river segment endpoint unresolvable, skipping",
					"river", r.ID, "segment", i-1)
				continue
			}
			_, fordA := forded[pointKey{r.ID, pts[i-1].Hex, pts[i-1].Anchor}]
			_, fordB := forded[pointKey{r.ID, pts[i].Hex, pts[i].Anchor}]
			segments = append(segments, Segment{
				PathID:      r.ID,
				Index:       i - 1,
				Start:       start,
				End:         end,
				HasCrossing: fordA || fordB,
			})
		}
	}
	return segments
}

// Stale reports whether the snapshot's topology differs from what the
// segments were last computed from (or nothing was computed yet). A
// fresh geometry can be carried across snapshot rebuilds.
func (g *Geometry) Stale(w territory.Waterways) bool {
	return !g.ready || contentHash(w) != g.hash
}

// Segments returns the current barrier segments, for inspection.
func (g *Geometry) Segments() []Segment {
	return g.segments
}

// Ready reports whether segments have been computed at least once.
func (g *Geometry) Ready() bool {
	return g.ready
}

// BlocksMovement reports whether the straight line between the centers of
// two hexes crosses any unforded river segment. Fails open (false) while
// geometry is not yet computed or either center cannot be resolved.
func (g *Geometry) BlocksMovement(from, to grid.HexID) bool {
	if !g.ready || len(g.segments) == 0 {
		return false
	}
	a, okA := g.geo.Position(from, grid.Center())
	b, okB := g.geo.Position(to, grid.Center())
	if !okA || !okB {
		return false
	}
	for _, s := range g.segments {
		if s.HasCrossing {
			continue
		}
		if segmentsIntersect(a, b, s.Start, s.End) {
			return true
		}
	}
	return false
}

// segmentsIntersect tests two segments for a strict interior crossing by
// the parametric cross-product method. Touching at an endpoint does not
// count, so movement grazing a river mouth is not blocked.
func segmentsIntersect(p1, p2, q1, q2 grid.Point) bool {
	rx, ry := p2.X-p1.X, p2.Y-p1.Y
	sx, sy := q2.X-q1.X, q2.Y-q1.Y

	denom := rx*sy - ry*sx
	if math.Abs(denom) < intersectEpsilon {
		return false // parallel or degenerate
	}

	dx, dy := q1.X-p1.X, q1.Y-p1.Y
	t := (dx*sy - dy*sx) / denom
	u := (dx*ry - dy*rx) / denom

	return t > intersectEpsilon && t < 1-intersectEpsilon &&
		u > intersectEpsilon && u < 1-intersectEpsilon
}
