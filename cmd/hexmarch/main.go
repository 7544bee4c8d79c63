// Command hexmarch generates (or loads) a hex territory and runs sample
// army movement queries against it: bounded reachability and shortest
// paths for several movement trait sets.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexmarch/internal/grid"
	"github.com/talgya/hexmarch/internal/movement"
	"github.com/talgya/hexmarch/internal/store"
	"github.com/talgya/hexmarch/internal/territory"
	"github.com/talgya/hexmarch/internal/worldgen"
)

func main() {
	var (
		dbPath = flag.String("db", "data/territory.db", "SQLite territory database")
		seed   = flag.Int64("seed", 42, "world generation seed")
		rows   = flag.Int("rows", 50, "grid rows")
		cols   = flag.Int("cols", 60, "grid columns")
		budget = flag.Int("budget", 6, "movement budget for reachability queries")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	layout := grid.DefaultLayout(*rows, *cols)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := store.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// ── Territory (load saved snapshot, or generate and save) ─────────
	var hexes []territory.Hex
	var waterways territory.Waterways

	if db.HasSnapshot() {
		slog.Info("loading saved territory", "path", *dbPath)
		hexes, err = db.LoadHexes()
		if err != nil {
			slog.Error("failed to load hexes", "error", err)
			os.Exit(1)
		}
		waterways, err = db.LoadWaterways()
		if err != nil {
			slog.Error("failed to load waterways", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("generating territory", "rows", *rows, "cols", *cols, "seed", *seed)
		cfg := worldgen.DefaultConfig()
		cfg.Rows, cfg.Cols, cfg.Seed = *rows, *cols, *seed
		world := worldgen.Generate(cfg)
		world.ConnectSettlements(layout)
		hexes, waterways = world.Hexes, world.Waterways

		if err := db.SaveSnapshot(hexes, waterways); err != nil {
			slog.Error("failed to save territory", "error", err)
			os.Exit(1)
		}
	}

	counts := make(map[territory.Terrain]int)
	for _, h := range hexes {
		counts[h.Terrain]++
	}
	for t, c := range counts {
		slog.Info("terrain", "type", territory.TerrainName(t), "count", humanize.Comma(int64(c)))
	}
	slog.Info("waterways",
		"rivers", len(waterways.Rivers),
		"lakes", len(waterways.Lakes),
		"swamps", len(waterways.Swamps),
		"crossings", len(waterways.Crossings))

	// ── Movement engine ───────────────────────────────────────────────
	eng := movement.NewEngine(layout)
	eng.Rebuild(hexes, waterways)

	var settlements []grid.HexID
	for _, h := range hexes {
		if h.Settlement {
			settlements = append(settlements, h.ID)
		}
	}
	if len(settlements) == 0 {
		slog.Warn("no settlements in territory, nothing to query")
		return
	}
	start := settlements[0]

	// ── Sample queries ────────────────────────────────────────────────
	traitSets := []struct {
		name   string
		traits movement.Traits
	}{
		{"grounded", movement.Traits{}},
		{"flying", movement.Traits{Fly: true}},
		{"swimming", movement.Traits{Swim: true}},
		{"boats", movement.Traits{Boats: true}},
		{"amphibious", movement.Traits{Amphibious: true}},
	}
	for _, ts := range traitSets {
		reach := eng.Reachable(start, *budget, ts.traits)
		slog.Info("reachability", "from", start, "traits", ts.name,
			"budget", *budget, "hexes", humanize.Comma(int64(len(reach))))
	}

	if len(settlements) > 1 {
		goal := settlements[1]
		res := eng.FindPath(start, goal, len(hexes)*3, movement.Traits{})
		if res.Reachable {
			slog.Info("march route", "from", start, "to", goal,
				"steps", len(res.Path)-1, "cost", res.TotalCost)
		} else {
			slog.Info("march route blocked", "from", start, "to", goal)
		}
	}
}
