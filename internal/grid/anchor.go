package grid

import "fmt"

// AnchorKind selects which connection point of a hex an Anchor refers to.
type AnchorKind uint8

const (
	AnchorCenter AnchorKind = iota
	AnchorEdge
	AnchorCorner
)

// Anchor names a connection point on a hex: its center, the midpoint of one
// of its six edges, or one of its six corner vertices. Waterway data pins
// river points, crossings, and waterfalls to anchors.
type Anchor struct {
	Kind AnchorKind `json:"kind"`
	// Index is the Direction for edges and the clockwise corner index
	// (0 = top) for corners. Ignored for centers.
	Index uint8 `json:"index,omitempty"`
}

// Center returns the center anchor.
func Center() Anchor {
	return Anchor{Kind: AnchorCenter}
}

// Edge returns the anchor for the edge in the given direction.
func Edge(d Direction) Anchor {
	return Anchor{Kind: AnchorEdge, Index: uint8(d)}
}

// Corner returns the anchor for the clockwise corner index 0..5.
func Corner(i uint8) Anchor {
	return Anchor{Kind: AnchorCorner, Index: i % 6}
}

// Valid reports whether the anchor's index is in range for its kind.
func (a Anchor) Valid() bool {
	switch a.Kind {
	case AnchorCenter:
		return true
	case AnchorEdge, AnchorCorner:
		return a.Index < 6
	default:
		return false
	}
}

func (a Anchor) String() string {
	switch a.Kind {
	case AnchorCenter:
		return "center"
	case AnchorEdge:
		return "edge:" + Direction(a.Index).String()
	case AnchorCorner:
		return fmt.Sprintf("corner:%d", a.Index)
	default:
		return "anchor?"
	}
}

// EdgeKey canonically identifies one shared edge of the grid. The two hexes
// on either side of an edge must resolve to the same key.
type EdgeKey struct {
	Hex HexID
	Dir Direction
}

// SharedEdge returns the canonical key for the edge of h in direction d.
// The lexicographically smaller of the two bordering hexes owns the key.
func SharedEdge(h HexID, d Direction) EdgeKey {
	n := h.Neighbor(d)
	if n.Row < h.Row || (n.Row == h.Row && n.Col < h.Col) {
		return EdgeKey{Hex: n, Dir: d.Opposite()}
	}
	return EdgeKey{Hex: h, Dir: d}
}
