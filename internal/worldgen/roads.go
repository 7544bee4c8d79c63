package worldgen

import (
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/hexmarch/internal/grid"
	"github.com/talgya/hexmarch/internal/movement"
	"github.com/talgya/hexmarch/internal/territory"
	"github.com/talgya/hexmarch/internal/waterway"
)

// ConnectSettlements lays roads along cheapest land routes between
// consecutive settlements, and places a crossing wherever a road hops an
// unforded river. Call after Generate; mutates the world in place.
//
// Routes are found for an amphibious unit, which fords rivers freely, so
// roads may legitimately cross them; each such hop then gets a bridge.
func (w *World) ConnectSettlements(layout grid.Layout) {
	var settlements []grid.HexID
	for _, h := range w.Hexes {
		if h.Settlement {
			settlements = append(settlements, h.ID)
		}
	}
	if len(settlements) < 2 {
		return
	}

	eng := movement.NewEngine(layout)
	eng.Rebuild(w.Hexes, w.Waterways)
	geom := waterway.NewGeometry(layout)
	geom.Rebuild(w.Waterways)

	budget := (len(w.Hexes) + 1) * 3 // generous: any route fits
	for i := 1; i < len(settlements); i++ {
		res := eng.FindPath(settlements[i-1], settlements[i], budget, movement.Traits{Amphibious: true})
		if !res.Reachable {
			slog.Debug("no road route between settlements",
				"from", settlements[i-1], "to", settlements[i])
			continue
		}
		for j, id := range res.Path {
			if hex := w.hexAt(id); hex != nil && hex.Terrain != territory.TerrainWater {
				hex.Road = true
			}
			if j > 0 && geom.BlocksMovement(res.Path[j-1], id) {
				w.placeCrossing(layout, res.Path[j-1], id)
			}
		}
	}
}

// placeCrossing adds a bridge at the river point nearest to the midpoint
// of the blocked hop, so the adjoining segments stop acting as barriers.
func (w *World) placeCrossing(layout grid.Layout, from, to grid.HexID) {
	a, okA := layout.Position(from, grid.Center())
	b, okB := layout.Position(to, grid.Center())
	if !okA || !okB {
		return
	}
	mid := grid.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}

	best := math.MaxFloat64
	var bestRiver *territory.River
	var bestPt territory.PathPoint
	for i := range w.Waterways.Rivers {
		r := &w.Waterways.Rivers[i]
		for _, pt := range r.Points {
			pos, ok := layout.Position(pt.Hex, pt.Anchor)
			if !ok {
				continue
			}
			dx, dy := pos.X-mid.X, pos.Y-mid.Y
			if d := dx*dx + dy*dy; d < best {
				best = d
				bestRiver = r
				bestPt = pt
			}
		}
	}
	if bestRiver == nil {
		return
	}

	// Skip if this point already carries a crossing.
	for _, c := range w.Waterways.Crossings {
		if c.PathID == bestRiver.ID && c.Hex == bestPt.Hex && c.Anchor == bestPt.Anchor {
			return
		}
	}
	w.Waterways.Crossings = append(w.Waterways.Crossings, territory.Crossing{
		ID:     uuid.NewString(),
		PathID: bestRiver.ID,
		Hex:    bestPt.Hex,
		Anchor: bestPt.Anchor,
	})
}
