package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexmarch/internal/grid"
	"github.com/talgya/hexmarch/internal/store"
	"github.com/talgya/hexmarch/internal/territory"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "territory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	assert.False(t, db.HasSnapshot())

	hexes, err := db.LoadHexes()
	require.NoError(t, err)
	assert.Empty(t, hexes)

	w, err := db.LoadWaterways()
	require.NoError(t, err)
	assert.Empty(t, w.Rivers)
}

// TestSnapshotRoundTrip verifies a saved territory loads back
// value-for-value.
func TestSnapshotRoundTrip(t *testing.T) {
	hexes := []territory.Hex{
		{ID: grid.HexID{Row: 0, Col: 0}, Terrain: territory.TerrainPlains, Difficulty: territory.DifficultyOpen, Road: true},
		{ID: grid.HexID{Row: 0, Col: 1}, Terrain: territory.TerrainSwamp, Difficulty: territory.DifficultyDifficult},
		{ID: grid.HexID{Row: 1, Col: 0}, Terrain: territory.TerrainWater, Difficulty: territory.DifficultyOpen, Settlement: true},
	}
	waterways := territory.Waterways{
		Rivers: []territory.River{{
			ID:   "river-1",
			Name: "The Meander",
			Points: []territory.PathPoint{
				{Hex: grid.HexID{Row: 0, Col: 0}, Anchor: grid.Center(), Order: 0},
				{Hex: grid.HexID{Row: 0, Col: 1}, Anchor: grid.Edge(grid.DirSE), Order: 1},
				{Hex: grid.HexID{Row: 1, Col: 0}, Anchor: grid.Corner(3), Order: 2},
			},
		}},
		Lakes:  []territory.Feature{{ID: "lake-1", Hex: grid.HexID{Row: 1, Col: 0}}},
		Swamps: []territory.Feature{{ID: "swamp-1", Hex: grid.HexID{Row: 0, Col: 1}}},
		Crossings: []territory.Crossing{{
			ID: "x-1", PathID: "river-1",
			Hex: grid.HexID{Row: 0, Col: 1}, Anchor: grid.Edge(grid.DirSE),
		}},
		Waterfalls: []territory.Waterfall{{
			ID: "wf-1", PathID: "river-1",
			Hex: grid.HexID{Row: 1, Col: 0}, Anchor: grid.Corner(3),
		}},
	}

	db := openTestDB(t)
	require.NoError(t, db.SaveSnapshot(hexes, waterways))
	assert.True(t, db.HasSnapshot())

	gotHexes, err := db.LoadHexes()
	require.NoError(t, err)
	assert.ElementsMatch(t, hexes, gotHexes)

	gotWater, err := db.LoadWaterways()
	require.NoError(t, err)
	assert.Equal(t, waterways.Rivers, gotWater.Rivers)
	assert.Equal(t, waterways.Lakes, gotWater.Lakes)
	assert.Equal(t, waterways.Swamps, gotWater.Swamps)
	assert.Equal(t, waterways.Crossings, gotWater.Crossings)
	assert.Equal(t, waterways.Waterfalls, gotWater.Waterfalls)
}

// TestSaveReplaces verifies saving is a full replace, not an append.
func TestSaveReplaces(t *testing.T) {
	db := openTestDB(t)

	first := []territory.Hex{
		{ID: grid.HexID{Row: 0, Col: 0}, Terrain: territory.TerrainForest, Difficulty: territory.DifficultyDifficult},
		{ID: grid.HexID{Row: 0, Col: 1}, Terrain: territory.TerrainPlains, Difficulty: territory.DifficultyOpen},
	}
	require.NoError(t, db.SaveHexes(first))

	second := []territory.Hex{
		{ID: grid.HexID{Row: 5, Col: 5}, Terrain: territory.TerrainDesert, Difficulty: territory.DifficultyOpen},
	}
	require.NoError(t, db.SaveHexes(second))

	got, err := db.LoadHexes()
	require.NoError(t, err)
	assert.ElementsMatch(t, second, got)
}
