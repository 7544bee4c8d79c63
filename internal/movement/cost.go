package movement

import (
	"math"

	"github.com/talgya/hexmarch/internal/grid"
	"github.com/talgya/hexmarch/internal/territory"
)

// Impassable is the single impassability sentinel. Both search algorithms
// treat any cost >= Impassable as "do not traverse". It is well below
// MaxInt so accumulated path costs cannot overflow.
const Impassable = math.MaxInt32

// cost is the movement cost decision table. It evaluates, in precedence
// order: unknown hex, flight, amphibious best-of, hex-based water,
// grounded river barriers, then the land formula. The result is always a
// positive integer or Impassable, never zero or negative.
//
// hasFrom gates the directional cases (upstream penalty, river barrier);
// a bare destination query has no source to be directional about.
func (s *snapshot) cost(to grid.HexID, tr Traits, from grid.HexID, hasFrom bool) int {
	hex := s.hexes.Get(to)
	if hex == nil {
		return Impassable
	}

	// Flight ignores terrain and water entirely.
	if tr.Fly {
		return 1
	}

	if tr.Amphibious {
		return s.amphibiousCost(hex)
	}

	// Hex-based water: the whole hex is an obstacle, as opposed to a
	// river, which is an edge between hexes.
	if s.isHexWater(hex) {
		return s.waterCost(hex, tr, from, hasFrom)
	}

	// Edge-based river barrier. Only grounded units are stopped, and
	// only when we know which edge is being crossed.
	if tr.Grounded() && hasFrom && s.geom.BlocksMovement(from, to) {
		return Impassable
	}

	return s.landCost(hex)
}

// isHexWater reports whether the hex itself is a water obstacle: lake
// classification or open-water terrain.
func (s *snapshot) isHexWater(hex *territory.Hex) bool {
	return hex.Terrain == territory.TerrainWater || s.water.HasLake(hex.ID)
}

// waterCost prices hex-based water for swim/boat units. Grounded units
// never enter: crossings ford river segments, not whole water hexes.
func (s *snapshot) waterCost(hex *territory.Hex, tr Traits, from grid.HexID, hasFrom bool) int {
	// Waterfalls stop pure naval traffic but not swimmers.
	if s.water.HasWaterfall(hex.ID) && tr.Boats && !tr.Swim {
		return Impassable
	}
	if !tr.Naval() {
		return Impassable
	}
	c := 1
	// Upstream penalty applies to river flow only, not plain lake or
	// open-water movement.
	if hasFrom && s.water.HasRiver(hex.ID) && s.water.IsUpstream(from, hex.ID) {
		c++
	}
	return c
}

// amphibiousCost takes the better of water and land movement. Amphibious
// units ford rivers freely, so the land branch skips the barrier check,
// and waterfalls never stop them.
func (s *snapshot) amphibiousCost(hex *territory.Hex) int {
	water := Impassable
	switch {
	case s.isHexWater(hex):
		water = 1
	case s.water.HasSwamp(hex.ID):
		water = 2
	}

	land := Impassable
	if !s.isHexWater(hex) {
		land = s.landCost(hex)
	}

	if water < land {
		return water
	}
	return land
}

// landCost is the base land formula: 1/2/3 by travel difficulty, +1 for
// a swamp classification capped at 3, minus 1 for a road or settlement
// floored at 1.
func (s *snapshot) landCost(hex *territory.Hex) int {
	c := 1 + int(hex.Difficulty)
	if c > 3 {
		c = 3
	}
	if s.water.HasSwamp(hex.ID) && c < 3 {
		c++
	}
	if hex.Road || hex.Settlement {
		c--
		if c < 1 {
			c = 1
		}
	}
	return c
}
