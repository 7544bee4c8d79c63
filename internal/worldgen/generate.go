// Package worldgen procedurally generates territory snapshots for demos
// and large test fixtures, using layered simplex noise for terrain and
// steepest-descent tracing for rivers.
package worldgen

import (
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexmarch/internal/grid"
	"github.com/talgya/hexmarch/internal/territory"
)

// Config holds territory generation parameters.
type Config struct {
	Rows        int     // Grid rows
	Cols        int     // Grid columns
	Seed        int64   // Random seed (0 = random)
	SeaLevel    float64 // Elevation threshold for open water (0.0-1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0-1.0)
	Settlements int     // Settlements to place on good land
}

// DefaultConfig returns a configuration for a few-thousand-hex map.
func DefaultConfig() Config {
	return Config{
		Rows:        50,
		Cols:        60,
		Seed:        0,
		SeaLevel:    0.30,
		MountainLvl: 0.72,
		Settlements: 6,
	}
}

// SmallTestConfig returns a tiny territory for rapid iteration.
func SmallTestConfig() Config {
	return Config{
		Rows:        12,
		Cols:        12,
		Seed:        42,
		SeaLevel:    0.30,
		MountainLvl: 0.75,
		Settlements: 2,
	}
}

// World is a generated snapshot pair ready for the movement engine.
type World struct {
	Hexes     []territory.Hex
	Waterways territory.Waterways

	// elevation is kept for river tracing and inspection, keyed by hex.
	elevation map[grid.HexID]float64
	// byID indexes Hexes by identity.
	byID map[grid.HexID]int
}

// Elevation returns the generated elevation for a hex (0 if unknown).
func (w *World) Elevation(h grid.HexID) float64 {
	return w.elevation[h]
}

// Generate creates a complete territory with terrain, difficulty, rivers,
// swamps, lakes, and settlements.
func Generate(cfg Config) *World {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Independent noise layers for elevation and rainfall.
	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)

	w := &World{
		elevation: make(map[grid.HexID]float64, cfg.Rows*cfg.Cols),
		byID:      make(map[grid.HexID]int, cfg.Rows*cfg.Cols),
	}

	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			id := grid.HexID{Row: row, Col: col}

			// Hex offset coords to continuous space for noise sampling.
			x := float64(col) + 0.5*float64(row&1)
			y := float64(row) * math.Sqrt(3.0) / 2.0

			elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
			rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)

			// Continental shaping: sink elevation near the map edge.
			cx := x - float64(cfg.Cols)/2
			cy := y - float64(cfg.Rows)*math.Sqrt(3.0)/4
			extent := math.Max(float64(cfg.Cols), float64(cfg.Rows)) / 2
			distFromCenter := math.Sqrt(cx*cx+cy*cy) / extent
			falloff := 1.0 - math.Pow(distFromCenter, 3.5)
			if falloff < 0 {
				falloff = 0
			}
			elev *= falloff

			terrain := deriveTerrain(elev, rain, cfg)
			w.elevation[id] = elev
			w.byID[id] = len(w.Hexes)
			w.Hexes = append(w.Hexes, territory.Hex{
				ID:         id,
				Terrain:    terrain,
				Difficulty: deriveDifficulty(terrain),
			})
		}
	}

	rng := rand.New(rand.NewSource(seed + 100))
	w.placeRivers(cfg, rng)
	w.markSwamps()
	w.placeSettlements(cfg, rng)

	return w
}

// deriveTerrain determines terrain type from environmental parameters.
func deriveTerrain(elev, rain float64, cfg Config) territory.Terrain {
	switch {
	case elev < cfg.SeaLevel:
		return territory.TerrainWater
	case elev > cfg.MountainLvl:
		return territory.TerrainMountains
	case elev > 0.55:
		return territory.TerrainHills
	case rain > 0.70 && elev < 0.45:
		return territory.TerrainSwamp
	case rain < 0.25:
		return territory.TerrainDesert
	case rain > 0.45:
		return territory.TerrainForest
	default:
		return territory.TerrainPlains
	}
}

// deriveDifficulty maps terrain to base travel difficulty.
func deriveDifficulty(t territory.Terrain) territory.Difficulty {
	switch t {
	case territory.TerrainForest, territory.TerrainHills, territory.TerrainSwamp:
		return territory.DifficultyDifficult
	case territory.TerrainMountains:
		return territory.DifficultyGreater
	default:
		return territory.DifficultyOpen
	}
}

// hexAt returns the generated hex record for id, or nil.
func (w *World) hexAt(id grid.HexID) *territory.Hex {
	i, ok := w.byID[id]
	if !ok {
		return nil
	}
	return &w.Hexes[i]
}

// placeRivers traces a handful of rivers from highland sources downhill,
// emitting ordered center-anchored path points (increasing order is
// downstream). A river that dead-ends on land leaves a lake.
func (w *World) placeRivers(cfg Config, rng *rand.Rand) {
	// Highest land hexes make the best sources; sort once and take from
	// the top so even a flat map yields a couple of rivers.
	var sources []grid.HexID
	for _, h := range w.Hexes {
		if h.Terrain != territory.TerrainWater {
			sources = append(sources, h.ID)
		}
	}
	sort.Slice(sources, func(i, j int) bool {
		return w.elevation[sources[i]] > w.elevation[sources[j]]
	})

	numRivers := len(sources) / 40
	if numRivers < 2 {
		numRivers = 2
	}
	if numRivers > 8 {
		numRivers = 8
	}
	if len(sources) > numRivers*4 {
		sources = sources[:numRivers*4]
	}
	rng.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})
	if len(sources) > numRivers {
		sources = sources[:numRivers]
	}

	for _, start := range sources {
		w.traceRiver(start)
	}
}

// traceRiver follows the steepest descent from a source hex until it
// reaches open water or runs out of downhill path.
func (w *World) traceRiver(start grid.HexID) {
	river := territory.River{ID: uuid.NewString()}
	current := start
	visited := make(map[grid.HexID]bool)
	const maxSteps = 60

	for step := 0; step < maxSteps; step++ {
		visited[current] = true
		hex := w.hexAt(current)
		if hex == nil {
			break
		}

		river.Points = append(river.Points, territory.PathPoint{
			Hex:    current,
			Anchor: grid.Center(),
			Order:  step,
		})

		// A river flowing into open water ends there.
		if hex.Terrain == territory.TerrainWater {
			break
		}

		// Find the lowest unvisited neighbor.
		var next *grid.HexID
		bestElev := w.elevation[current]
		for _, nc := range current.Neighbors() {
			if visited[nc] {
				continue
			}
			if w.hexAt(nc) == nil {
				continue
			}
			if e := w.elevation[nc]; e < bestElev {
				bestElev = e
				c := nc
				next = &c
			}
		}

		if next == nil {
			// No downhill path: the river pools into a lake.
			w.Waterways.Lakes = append(w.Waterways.Lakes, territory.Feature{
				ID:  uuid.NewString(),
				Hex: current,
			})
			break
		}
		current = *next
	}

	if len(river.Points) >= 2 {
		w.Waterways.Rivers = append(w.Waterways.Rivers, river)
	}
}

// markSwamps emits a swamp waterway feature for every swamp-terrain hex,
// so the cost model's swamp classification matches the terrain.
func (w *World) markSwamps() {
	for _, h := range w.Hexes {
		if h.Terrain == territory.TerrainSwamp {
			w.Waterways.Swamps = append(w.Waterways.Swamps, territory.Feature{
				ID:  uuid.NewString(),
				Hex: h.ID,
			})
		}
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// placeSettlements marks a spread-out handful of open-land hexes as
// settlements.
func (w *World) placeSettlements(cfg Config, rng *rand.Rand) {
	var candidates []int
	for i, h := range w.Hexes {
		if h.Terrain == territory.TerrainPlains || h.Terrain == territory.TerrainForest {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) < cfg.Settlements {
		// Sparse map: settle anything that is not open water.
		candidates = candidates[:0]
		for i, h := range w.Hexes {
			if h.Terrain != territory.TerrainWater {
				candidates = append(candidates, i)
			}
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	var placed []grid.HexID
	// Relax the spacing requirement until enough spots fit.
	for spacing := 5; spacing >= 1 && len(placed) < cfg.Settlements; spacing-- {
		for _, i := range candidates {
			if len(placed) >= cfg.Settlements {
				break
			}
			if w.Hexes[i].Settlement {
				continue
			}
			id := w.Hexes[i].ID
			tooClose := false
			for _, p := range placed {
				if grid.Distance(id, p) < spacing {
					tooClose = true
					break
				}
			}
			if tooClose {
				continue
			}
			w.Hexes[i].Settlement = true
			placed = append(placed, id)
		}
	}
}
