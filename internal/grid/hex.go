// Package grid provides the offset-coordinate hex grid: cell identity,
// adjacency, distance, and the connection-point geometry used by waterway
// data (hex centers, the six edges, the six corners).
//
// Hexes are pointy-top with odd-row offset: odd rows shift half a hex to
// the right. Directions and corners are numbered clockwise.
package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// HexID identifies a grid cell by offset coordinates.
// The canonical string form is "row.col".
type HexID struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String returns the canonical "row.col" form.
func (h HexID) String() string {
	return strconv.Itoa(h.Row) + "." + strconv.Itoa(h.Col)
}

// ParseHexID parses the canonical "row.col" form.
func ParseHexID(s string) (HexID, error) {
	row, col, ok := strings.Cut(s, ".")
	if !ok {
		return HexID{}, fmt.Errorf("parse hex id %q: missing separator", s)
	}
	r, err := strconv.Atoi(row)
	if err != nil {
		return HexID{}, fmt.Errorf("parse hex id %q: %w", s, err)
	}
	c, err := strconv.Atoi(col)
	if err != nil {
		return HexID{}, fmt.Errorf("parse hex id %q: %w", s, err)
	}
	return HexID{Row: r, Col: c}, nil
}

// Direction indexes the six hex edges, clockwise from the upper-right.
type Direction uint8

const (
	DirNE Direction = iota
	DirE
	DirSE
	DirSW
	DirW
	DirNW
)

// Opposite returns the direction pointing back across the same edge.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

func (d Direction) String() string {
	switch d {
	case DirNE:
		return "NE"
	case DirE:
		return "E"
	case DirSE:
		return "SE"
	case DirSW:
		return "SW"
	case DirW:
		return "W"
	case DirNW:
		return "NW"
	default:
		return "Dir?"
	}
}

// neighborOffsets holds the six adjacent cell offsets indexed by Direction,
// split by row parity. Odd rows sit half a hex to the right, so their
// diagonal neighbors land one column further over.
var neighborOffsets = [2][6]HexID{
	{ // even row
		{Row: -1, Col: 0},  // NE
		{Row: 0, Col: 1},   // E
		{Row: 1, Col: 0},   // SE
		{Row: 1, Col: -1},  // SW
		{Row: 0, Col: -1},  // W
		{Row: -1, Col: -1}, // NW
	},
	{ // odd row
		{Row: -1, Col: 1}, // NE
		{Row: 0, Col: 1},  // E
		{Row: 1, Col: 1},  // SE
		{Row: 1, Col: 0},  // SW
		{Row: 0, Col: -1}, // W
		{Row: -1, Col: 0}, // NW
	},
}

// Neighbors returns the six adjacent cells in clockwise Direction order.
func (h HexID) Neighbors() [6]HexID {
	parity := h.Row & 1
	var result [6]HexID
	for i, off := range neighborOffsets[parity] {
		result[i] = HexID{Row: h.Row + off.Row, Col: h.Col + off.Col}
	}
	return result
}

// Neighbor returns the adjacent cell across the given edge.
func (h HexID) Neighbor(d Direction) HexID {
	return h.Neighbors()[d]
}

// cube converts offset coordinates to cube coordinates (odd-r layout).
func (h HexID) cube() (q, r, s int) {
	q = h.Col - (h.Row-(h.Row&1))/2
	r = h.Row
	return q, r, -q - r
}

// Distance returns the hex-grid distance between two cells.
func Distance(a, b HexID) int {
	aq, ar, as := a.cube()
	bq, br, bs := b.cube()
	dq, dr, ds := abs(aq-bq), abs(ar-br), abs(as-bs)
	// Max of the three absolute differences in cube coordinates.
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// Adjacent reports whether two cells share an edge.
func Adjacent(a, b HexID) bool {
	return Distance(a, b) == 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
