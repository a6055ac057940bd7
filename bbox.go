// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package coral

import "math"

// BBox is an axis-aligned rectangle on the projected plane, spanning
// [X0, X1] horizontally and [Y0, Y1] vertically with X0 <= X1 and Y0 <= Y1.
// The zero value is the empty box.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// BBoxFromPoints returns the minimal box enclosing all given points.
// It panics on an empty slice.
func BBoxFromPoints(points []Point) BBox {
	b := BBox{points[0].X, points[0].Y, points[0].X, points[0].Y}
	for _, p := range points[1:] {
		b = b.grow(p)
	}
	return b
}

func (b BBox) grow(p Point) BBox {
	b.X0 = math.Min(b.X0, p.X)
	b.Y0 = math.Min(b.Y0, p.Y)
	b.X1 = math.Max(b.X1, p.X)
	b.Y1 = math.Max(b.Y1, p.Y)
	return b
}

// Empty reports whether the box has zero area.
func (b BBox) Empty() bool {
	return b.Area() == 0
}

// Union returns the minimal box enclosing both boxes.
// An empty box acts as the identity element.
func (b BBox) Union(o BBox) BBox {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return BBox{
		X0: math.Min(b.X0, o.X0),
		Y0: math.Min(b.Y0, o.Y0),
		X1: math.Max(b.X1, o.X1),
		Y1: math.Max(b.Y1, o.Y1),
	}
}

// Intersect returns the overlap of both boxes, or the empty box if they do
// not overlap.
func (b BBox) Intersect(o BBox) BBox {
	if b.Empty() || o.Empty() {
		return BBox{}
	}
	r := BBox{
		X0: math.Max(b.X0, o.X0),
		Y0: math.Max(b.Y0, o.Y0),
		X1: math.Min(b.X1, o.X1),
		Y1: math.Min(b.Y1, o.Y1),
	}
	if r.X0 >= r.X1 || r.Y0 >= r.Y1 {
		return BBox{}
	}
	return r
}

// Center returns the center point of the box.
func (b BBox) Center() Point {
	return Point{X: (b.X0 + b.X1) / 2, Y: (b.Y0 + b.Y1) / 2}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Area returns the area of the box.
func (b BBox) Area() float64 {
	return (b.X1 - b.X0) * (b.Y1 - b.Y0)
}

// Diagonal returns the length of the box's diagonal.
func (b BBox) Diagonal() float64 {
	return math.Hypot(b.X1-b.X0, b.Y1-b.Y0)
}

// Contains reports whether the point lies inside the box.
// The maximal edges are exclusive.
func (b BBox) Contains(p Point) bool {
	return b.X0 <= p.X && p.X < b.X1 && b.Y0 <= p.Y && p.Y < b.Y1
}

// ContainsBBox reports whether the other box lies entirely inside the box.
func (b BBox) ContainsBBox(o BBox) bool {
	return b.Contains(Point{o.X0, o.Y0}) && b.Contains(Point{o.X1, o.Y1})
}

// Collides reports whether the boxes overlap.
func (b BBox) Collides(o BBox) bool {
	xok := (b.X0 <= o.X0 && o.X0 < b.X1) || (o.X0 <= b.X0 && b.X0 < o.X1)
	yok := (b.Y0 <= o.Y0 && o.Y0 < b.Y1) || (o.Y0 <= b.Y0 && b.Y0 < o.Y1)
	return xok && yok
}

// Translate returns a copy of the box shifted by (dx, dy).
func (b BBox) Translate(dx, dy float64) BBox {
	return BBox{b.X0 + dx, b.Y0 + dy, b.X1 + dx, b.Y1 + dy}
}

// Scaled returns a copy of the box scaled about its center.
func (b BBox) Scaled(factor float64) BBox {
	c := b.Center()
	hw := b.Width() * factor / 2
	hh := b.Height() * factor / 2
	return BBox{c.X - hw, c.Y - hh, c.X + hw, c.Y + hh}
}
