// Package store provides SQLite-based persistence for territory and
// waterway snapshots. The movement engine itself never touches storage;
// hosts load a snapshot here and hand it to Engine.Rebuild.
package store

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexmarch/internal/grid"
	"github.com/talgya/hexmarch/internal/territory"
)

// DB wraps a SQLite connection holding one territory snapshot.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS hexes (
		row INTEGER NOT NULL,
		col INTEGER NOT NULL,
		terrain INTEGER NOT NULL,
		difficulty INTEGER NOT NULL,
		road INTEGER NOT NULL,
		settlement INTEGER NOT NULL,
		PRIMARY KEY (row, col)
	);

	CREATE TABLE IF NOT EXISTS rivers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS river_points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path_id TEXT NOT NULL,
		hex_row INTEGER NOT NULL,
		hex_col INTEGER NOT NULL,
		anchor_kind INTEGER NOT NULL,
		anchor_index INTEGER NOT NULL,
		flow_order INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS features (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		hex_row INTEGER NOT NULL,
		hex_col INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS crossings (
		id TEXT PRIMARY KEY,
		path_id TEXT NOT NULL,
		hex_row INTEGER NOT NULL,
		hex_col INTEGER NOT NULL,
		anchor_kind INTEGER NOT NULL,
		anchor_index INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS waterfalls (
		id TEXT PRIMARY KEY,
		path_id TEXT NOT NULL,
		hex_row INTEGER NOT NULL,
		hex_col INTEGER NOT NULL,
		anchor_kind INTEGER NOT NULL,
		anchor_index INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_river_points_path ON river_points(path_id, flow_order);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveHexes writes the full hex snapshot (full replace).
func (db *DB) SaveHexes(hexes []territory.Hex) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM hexes"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO hexes
		(row, col, terrain, difficulty, road, settlement)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, h := range hexes {
		_, err := stmt.Exec(
			h.ID.Row, h.ID.Col, h.Terrain, h.Difficulty,
			boolInt(h.Road), boolInt(h.Settlement),
		)
		if err != nil {
			return fmt.Errorf("insert hex %s: %w", h.ID, err)
		}
	}

	return tx.Commit()
}

// LoadHexes reads the full hex snapshot.
func (db *DB) LoadHexes() ([]territory.Hex, error) {
	rows, err := db.conn.Queryx(
		"SELECT row, col, terrain, difficulty, road, settlement FROM hexes")
	if err != nil {
		return nil, fmt.Errorf("load hexes: %w", err)
	}
	defer rows.Close()

	var hexes []territory.Hex
	for rows.Next() {
		var row, col, road, settlement int
		var terrain, difficulty uint8
		if err := rows.Scan(&row, &col, &terrain, &difficulty, &road, &settlement); err != nil {
			return nil, fmt.Errorf("scan hex: %w", err)
		}
		hexes = append(hexes, territory.Hex{
			ID:         grid.HexID{Row: row, Col: col},
			Terrain:    territory.Terrain(terrain),
			Difficulty: territory.Difficulty(difficulty),
			Road:       road != 0,
			Settlement: settlement != 0,
		})
	}
	return hexes, rows.Err()
}

// SaveWaterways writes the full waterway snapshot (full replace).
func (db *DB) SaveWaterways(w territory.Waterways) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"rivers", "river_points", "features", "crossings", "waterfalls"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for _, r := range w.Rivers {
		if _, err := tx.Exec("INSERT INTO rivers (id, name) VALUES (?, ?)", r.ID, r.Name); err != nil {
			return fmt.Errorf("insert river %s: %w", r.ID, err)
		}
		for _, pt := range r.Points {
			_, err := tx.Exec(`INSERT INTO river_points
				(path_id, hex_row, hex_col, anchor_kind, anchor_index, flow_order)
				VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, pt.Hex.Row, pt.Hex.Col, pt.Anchor.Kind, pt.Anchor.Index, pt.Order)
			if err != nil {
				return fmt.Errorf("insert river point (%s #%d): %w", r.ID, pt.Order, err)
			}
		}
	}

	saveFeature := func(kind string, f territory.Feature) error {
		_, err := tx.Exec("INSERT INTO features (id, kind, hex_row, hex_col) VALUES (?, ?, ?, ?)",
			f.ID, kind, f.Hex.Row, f.Hex.Col)
		return err
	}
	for _, f := range w.Lakes {
		if err := saveFeature("lake", f); err != nil {
			return fmt.Errorf("insert lake %s: %w", f.ID, err)
		}
	}
	for _, f := range w.Swamps {
		if err := saveFeature("swamp", f); err != nil {
			return fmt.Errorf("insert swamp %s: %w", f.ID, err)
		}
	}

	for _, c := range w.Crossings {
		_, err := tx.Exec(`INSERT INTO crossings
			(id, path_id, hex_row, hex_col, anchor_kind, anchor_index)
			VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.PathID, c.Hex.Row, c.Hex.Col, c.Anchor.Kind, c.Anchor.Index)
		if err != nil {
			return fmt.Errorf("insert crossing %s: %w", c.ID, err)
		}
	}
	for _, wf := range w.Waterfalls {
		_, err := tx.Exec(`INSERT INTO waterfalls
			(id, path_id, hex_row, hex_col, anchor_kind, anchor_index)
			VALUES (?, ?, ?, ?, ?, ?)`,
			wf.ID, wf.PathID, wf.Hex.Row, wf.Hex.Col, wf.Anchor.Kind, wf.Anchor.Index)
		if err != nil {
			return fmt.Errorf("insert waterfall %s: %w", wf.ID, err)
		}
	}

	return tx.Commit()
}

// LoadWaterways reads the full waterway snapshot.
func (db *DB) LoadWaterways() (territory.Waterways, error) {
	var w territory.Waterways

	type riverRow struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}
	var rivers []riverRow
	if err := db.conn.Select(&rivers, "SELECT id, name FROM rivers"); err != nil {
		return w, fmt.Errorf("load rivers: %w", err)
	}

	type pointRow struct {
		PathID      string `db:"path_id"`
		HexRow      int    `db:"hex_row"`
		HexCol      int    `db:"hex_col"`
		AnchorKind  uint8  `db:"anchor_kind"`
		AnchorIndex uint8  `db:"anchor_index"`
		FlowOrder   int    `db:"flow_order"`
	}
	var points []pointRow
	err := db.conn.Select(&points,
		"SELECT path_id, hex_row, hex_col, anchor_kind, anchor_index, flow_order FROM river_points ORDER BY path_id, flow_order")
	if err != nil {
		return w, fmt.Errorf("load river points: %w", err)
	}

	byPath := make(map[string][]territory.PathPoint)
	for _, p := range points {
		byPath[p.PathID] = append(byPath[p.PathID], territory.PathPoint{
			Hex:    grid.HexID{Row: p.HexRow, Col: p.HexCol},
			Anchor: grid.Anchor{Kind: grid.AnchorKind(p.AnchorKind), Index: p.AnchorIndex},
			Order:  p.FlowOrder,
		})
	}
	for _, r := range rivers {
		w.Rivers = append(w.Rivers, territory.River{ID: r.ID, Name: r.Name, Points: byPath[r.ID]})
	}

	type featureRow struct {
		ID     string `db:"id"`
		Kind   string `db:"kind"`
		HexRow int    `db:"hex_row"`
		HexCol int    `db:"hex_col"`
	}
	var features []featureRow
	if err := db.conn.Select(&features, "SELECT id, kind, hex_row, hex_col FROM features"); err != nil {
		return w, fmt.Errorf("load features: %w", err)
	}
	for _, f := range features {
		feat := territory.Feature{ID: f.ID, Hex: grid.HexID{Row: f.HexRow, Col: f.HexCol}}
		switch f.Kind {
		case "lake":
			w.Lakes = append(w.Lakes, feat)
		case "swamp":
			w.Swamps = append(w.Swamps, feat)
		default:
			slog.Warn("unknown feature kind, skipping", "id", f.ID, "kind", f.Kind)
		}
	}

	type anchoredRow struct {
		ID          string `db:"id"`
		PathID      string `db:"path_id"`
		HexRow      int    `db:"hex_row"`
		HexCol      int    `db:"hex_col"`
		AnchorKind  uint8  `db:"anchor_kind"`
		AnchorIndex uint8  `db:"anchor_index"`
	}
	var crossings []anchoredRow
	if err := db.conn.Select(&crossings, "SELECT id, path_id, hex_row, hex_col, anchor_kind, anchor_index FROM crossings"); err != nil {
		return w, fmt.Errorf("load crossings: %w", err)
	}
	for _, c := range crossings {
		w.Crossings = append(w.Crossings, territory.Crossing{
			ID:     c.ID,
			PathID: c.PathID,
			Hex:    grid.HexID{Row: c.HexRow, Col: c.HexCol},
			Anchor: grid.Anchor{Kind: grid.AnchorKind(c.AnchorKind), Index: c.AnchorIndex},
		})
	}

	var waterfalls []anchoredRow
	if err := db.conn.Select(&waterfalls, "SELECT id, path_id, hex_row, hex_col, anchor_kind, anchor_index FROM waterfalls"); err != nil {
		return w, fmt.Errorf("load waterfalls: %w", err)
	}
	for _, wf := range waterfalls {
		w.Waterfalls = append(w.Waterfalls, territory.Waterfall{
			ID:     wf.ID,
			PathID: wf.PathID,
			Hex:    grid.HexID{Row: wf.HexRow, Col: wf.HexCol},
			Anchor: grid.Anchor{Kind: grid.AnchorKind(wf.AnchorKind), Index: wf.AnchorIndex},
		})
	}

	return w, nil
}

// SaveSnapshot performs a full save of territory and waterway data.
func (db *DB) SaveSnapshot(hexes []territory.Hex, w territory.Waterways) error {
	slog.Info("saving territory snapshot", "hexes", len(hexes), "rivers", len(w.Rivers))

	if err := db.SaveHexes(hexes); err != nil {
		return fmt.Errorf("save hexes: %w", err)
	}
	if err := db.SaveWaterways(w); err != nil {
		return fmt.Errorf("save waterways: %w", err)
	}

	slog.Info("territory snapshot saved")
	return nil
}

// HasSnapshot reports whether the database holds any hexes.
func (db *DB) HasSnapshot() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM hexes"); err != nil {
		return false
	}
	return count > 0
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
