// Package territory defines the world-data snapshot consumed by the
// movement engine: hex records (terrain, travel difficulty, roads,
// settlements) and waterway definitions (rivers, lakes, swamps,
// crossings, waterfalls).
package territory

import "github.com/talgya/hexmarch/internal/grid"

// Terrain types for territory hexes.
type Terrain uint8

const (
	TerrainPlains    Terrain = iota // Open ground
	TerrainForest                   // Dense woodland
	TerrainHills                    // Rolling highlands
	TerrainMountains                // Peaks and passes
	TerrainSwamp                    // Wetland
	TerrainDesert                   // Arid waste
	TerrainWater                    // Open water, a hex-based obstacle
)

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainPlains:
		return "Plains"
	case TerrainForest:
		return "Forest"
	case TerrainHills:
		return "Hills"
	case TerrainMountains:
		return "Mountains"
	case TerrainSwamp:
		return "Swamp"
	case TerrainDesert:
		return "Desert"
	case TerrainWater:
		return "Water"
	default:
		return "Unknown"
	}
}

// Difficulty grades how hard a hex is to travel through on foot.
type Difficulty uint8

const (
	DifficultyOpen      Difficulty = iota // Base cost 1
	DifficultyDifficult                   // Base cost 2
	DifficultyGreater                     // Base cost 3
)

// DifficultyName returns a human-readable name for a travel difficulty.
func DifficultyName(d Difficulty) string {
	switch d {
	case DifficultyOpen:
		return "Open"
	case DifficultyDifficult:
		return "Difficult"
	case DifficultyGreater:
		return "Greater Difficult"
	default:
		return "Unknown"
	}
}

// Hex is one territory cell. Read-only to the movement engine; the owning
// collaborator rebuilds the full snapshot whenever its data changes.
type Hex struct {
	ID         grid.HexID `json:"id"`
	Terrain    Terrain    `json:"terrain"`
	Difficulty Difficulty `json:"difficulty"`
	Road       bool       `json:"road"`
	Settlement bool       `json:"settlement"`
}

// Snapshot is the complete hex collection, keyed by cell identity.
type Snapshot struct {
	Hexes map[grid.HexID]*Hex
}

// NewSnapshot builds a lookup snapshot from a flat record list.
// Later duplicates of the same ID win, matching source order.
func NewSnapshot(hexes []Hex) Snapshot {
	m := make(map[grid.HexID]*Hex, len(hexes))
	for i := range hexes {
		h := hexes[i]
		m[h.ID] = &h
	}
	return Snapshot{Hexes: m}
}

// Get returns the hex record for id, or nil if unknown.
func (s Snapshot) Get(id grid.HexID) *Hex {
	return s.Hexes[id]
}

// Count returns the number of hexes in the snapshot.
func (s Snapshot) Count() int {
	return len(s.Hexes)
}
