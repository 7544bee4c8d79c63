package grid

import "math"

// Point is a pixel-space position. Y grows downward (screen convention).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GeometryProvider resolves hex connection points to pixel positions.
// Implementations report ok=false for positions they cannot resolve
// (map boundary, provider not ready); callers must treat that as
// non-fatal and skip the point.
type GeometryProvider interface {
	// Position returns the pixel position of the given anchor on h.
	Position(h HexID, a Anchor) (Point, bool)
	// Neighbors returns the six adjacent cells in clockwise order.
	Neighbors(h HexID) [6]HexID
}

// Layout is the default GeometryProvider: a pointy-top, odd-row-offset
// grid of Rows by Cols hexes with circumradius Size, origin at hex (0,0).
type Layout struct {
	Rows int
	Cols int
	Size float64 // circumradius in pixels
}

// DefaultLayout returns a layout large enough for typical territory maps.
func DefaultLayout(rows, cols int) Layout {
	return Layout{Rows: rows, Cols: cols, Size: 50}
}

// InBounds reports whether h lies on this layout's grid.
func (l Layout) InBounds(h HexID) bool {
	return h.Row >= 0 && h.Row < l.Rows && h.Col >= 0 && h.Col < l.Cols
}

// Center returns the pixel center of h, ignoring bounds.
func (l Layout) Center(h HexID) Point {
	w := l.Size * math.Sqrt(3)
	x := w * (float64(h.Col) + 0.5*float64(h.Row&1))
	y := l.Size * 1.5 * float64(h.Row)
	return Point{X: x, Y: y}
}

// corner returns corner i (clockwise, 0 = top) of the hex centered at c.
func (l Layout) corner(c Point, i uint8) Point {
	theta := float64(i) * math.Pi / 3 // 60 degrees per step, clockwise from top
	return Point{
		X: c.X + l.Size*math.Sin(theta),
		Y: c.Y - l.Size*math.Cos(theta),
	}
}

// Position implements GeometryProvider. Out-of-bounds hexes and malformed
// anchors resolve to ok=false.
func (l Layout) Position(h HexID, a Anchor) (Point, bool) {
	if !l.InBounds(h) || !a.Valid() {
		return Point{}, false
	}
	c := l.Center(h)
	switch a.Kind {
	case AnchorCenter:
		return c, true
	case AnchorCorner:
		return l.corner(c, a.Index), true
	case AnchorEdge:
		// Edge i spans corners i and i+1; its anchor is the midpoint.
		p1 := l.corner(c, a.Index)
		p2 := l.corner(c, (a.Index+1)%6)
		return Point{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}, true
	default:
		return Point{}, false
	}
}

// Neighbors implements GeometryProvider.
func (l Layout) Neighbors(h HexID) [6]HexID {
	return h.Neighbors()
}
