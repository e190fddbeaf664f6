package model

import "math"

// Point represents a 2D point in page space
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents a bounding box in top-down page space: FromY is the top
// edge and ToY the bottom edge.
type BBox struct {
	FromX float64
	FromY float64
	ToX   float64
	ToY   float64
}

// NewBBox creates a bounding box from its edges
func NewBBox(fromX, fromY, toX, toY float64) BBox {
	return BBox{FromX: fromX, FromY: fromY, ToX: toX, ToY: toY}
}

// NewBBoxFromPoints creates a bounding box from two opposite corners
func NewBBoxFromPoints(p1, p2 Point) BBox {
	return BBox{
		FromX: math.Min(p1.X, p2.X),
		FromY: math.Min(p1.Y, p2.Y),
		ToX:   math.Max(p1.X, p2.X),
		ToY:   math.Max(p1.Y, p2.Y),
	}
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.ToX - b.FromX
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.ToY - b.FromY
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: (b.FromX + b.ToX) / 2,
		Y: (b.FromY + b.ToY) / 2,
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// Contains reports whether other lies inside b expanded outward by
// tolerance on all sides.
func (b BBox) Contains(other BBox, tolerance float64) bool {
	return other.FromX >= b.FromX-tolerance &&
		other.FromY >= b.FromY-tolerance &&
		other.ToX <= b.ToX+tolerance &&
		other.ToY <= b.ToY+tolerance
}

// Intersects checks if two bounding boxes overlap or touch. Touching edges
// count as an intersection.
func (b BBox) Intersects(other BBox) bool {
	return !(b.ToX < other.FromX ||
		b.FromX > other.ToX ||
		b.ToY < other.FromY ||
		b.FromY > other.ToY)
}

// Union returns the smallest box enclosing both boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{
		FromX: math.Min(b.FromX, other.FromX),
		FromY: math.Min(b.FromY, other.FromY),
		ToX:   math.Max(b.ToX, other.ToX),
		ToY:   math.Max(b.ToY, other.ToY),
	}
}

// Expand expands the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		FromX: b.FromX - margin,
		FromY: b.FromY - margin,
		ToX:   b.ToX + margin,
		ToY:   b.ToY + margin,
	}
}

// VerticalOverlap returns the length of the shared Y range, or a negative
// value when the boxes are vertically apart.
func (b BBox) VerticalOverlap(other BBox) float64 {
	return math.Min(b.ToY, other.ToY) - math.Max(b.FromY, other.FromY)
}

// HorizontalOverlap returns the length of the shared X range, or a negative
// value when the boxes are horizontally apart.
func (b BBox) HorizontalOverlap(other BBox) float64 {
	return math.Min(b.ToX, other.ToX) - math.Max(b.FromX, other.FromX)
}

// IsFinite returns true if no coordinate is NaN or infinite
func (b BBox) IsFinite() bool {
	for _, v := range [4]float64{b.FromX, b.FromY, b.ToX, b.ToY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// IsValid returns true if the box is finite and its edges are ordered
func (b BBox) IsValid() bool {
	return b.IsFinite() && b.ToX >= b.FromX && b.ToY >= b.FromY
}
