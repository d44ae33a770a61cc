// Package geometry provides the quadrilateral value type shared by detection,
// cropping and grouping, with scalar bounds precomputed at construction.
package geometry

import (
	"math"
	"sort"
)

// Point represents a 2D coordinate in float space.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(o Point) float64 { return math.Hypot(p.X-o.X, p.Y-o.Y) }

// Quad is a four-point quadrilateral in pixel coordinates. The derived scalar
// bounds are computed once in NewQuad and reused everywhere; clustering is
// O(n²) over these fields, so they must never be recomputed per comparison.
type Quad struct {
	Points [4]Point

	MinX    float64
	MinY    float64
	MaxX    float64
	MaxY    float64
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// NewQuad constructs a Quad from four corner points in any order.
func NewQuad(pts [4]Point) Quad {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Quad{
		Points:  pts,
		MinX:    minX,
		MinY:    minY,
		MaxX:    maxX,
		MaxY:    maxY,
		CenterX: (minX + maxX) / 2,
		CenterY: (minY + maxY) / 2,
		Width:   maxX - minX,
		Height:  maxY - minY,
	}
}

// NewRectQuad constructs an axis-aligned Quad from min/max coordinates,
// ensuring ordering.
func NewRectQuad(x1, y1, x2, y2 float64) Quad {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return NewQuad([4]Point{
		{X: x1, Y: y1},
		{X: x2, Y: y1},
		{X: x2, Y: y2},
		{X: x1, Y: y2},
	})
}

// Union returns the axis-aligned quad covering both q and o.
func (q Quad) Union(o Quad) Quad {
	return NewRectQuad(
		math.Min(q.MinX, o.MinX),
		math.Min(q.MinY, o.MinY),
		math.Max(q.MaxX, o.MaxX),
		math.Max(q.MaxY, o.MaxY),
	)
}

// Overlaps reports whether the axis-aligned bounds of q and o intersect.
// Two rectangles overlap unless they are fully separated on either axis.
func (q Quad) Overlaps(o Quad) bool {
	if q.MaxX < o.MinX || o.MaxX < q.MinX {
		return false
	}
	if q.MaxY < o.MinY || o.MaxY < q.MinY {
		return false
	}
	return true
}

// Expand grows the axis-aligned bounds by dx horizontally and dy vertically
// on all sides, returning a new axis-aligned quad.
func (q Quad) Expand(dx, dy float64) Quad {
	return NewRectQuad(q.MinX-dx, q.MinY-dy, q.MaxX+dx, q.MaxY+dy)
}

// VerticalOverlapRatio returns the vertical intersection of the two bounds
// divided by the smaller of the two heights; 0 when disjoint or degenerate.
func (q Quad) VerticalOverlapRatio(o Quad) float64 {
	top := math.Max(q.MinY, o.MinY)
	bot := math.Min(q.MaxY, o.MaxY)
	if bot <= top {
		return 0
	}
	minH := math.Min(q.Height, o.Height)
	if minH <= 0 {
		return 0
	}
	return (bot - top) / minH
}

// OrderCorners normalizes the corner points into (top-left, top-right,
// bottom-right, bottom-left) order: the two smallest-y points, sorted by x,
// form the top edge; the two largest-y points, sorted by x, the bottom edge.
func (q Quad) OrderCorners() [4]Point {
	pts := q.Points
	sort.Slice(pts[:], func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
	tl, tr := pts[0], pts[1]
	if tr.X < tl.X {
		tl, tr = tr, tl
	}
	bl, br := pts[2], pts[3]
	if br.X < bl.X {
		bl, br = br, bl
	}
	return [4]Point{tl, tr, br, bl}
}

// Bounded is anything carrying a Quad, used for reading-order sorting across
// detection candidates, glyphs and words.
type Bounded interface {
	Bounds() Quad
}

// Bounds implements Bounded for Quad itself.
func (q Quad) Bounds() Quad { return q }

// SortReadingOrder stable-sorts items top-to-bottom, then left-to-right, by
// (MinY, MinX). Downstream consumers rely on this total order and never
// re-derive it.
func SortReadingOrder[T Bounded](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		bi, bj := items[i].Bounds(), items[j].Bounds()
		if bi.MinY != bj.MinY {
			return bi.MinY < bj.MinY
		}
		return bi.MinX < bj.MinX
	})
}
