// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package coral

import "fmt"

type pathKind int

const (
	polygonPath pathKind = iota
	polylinePath
	circlePath
)

type pathStyle struct {
	fill   *Color
	stroke *Color
}

type path struct {
	kind   pathKind
	points []Point
	center Point
	radius float64
	style  pathStyle
}

// PathOption styles a single path added to a Canvas.
type PathOption func(*pathStyle) error

// WithFill fills the path's interior with the given color.
func WithFill(c Color) PathOption {
	return func(s *pathStyle) error {
		if err := c.validate(); err != nil {
			return err
		}
		s.fill = &c
		return nil
	}
}

// WithStroke draws the path's outline with the given color.
func WithStroke(c Color) PathOption {
	return func(s *pathStyle) error {
		if err := c.validate(); err != nil {
			return err
		}
		s.stroke = &c
		return nil
	}
}

// CanvasOption configures a new Canvas.
type CanvasOption func(*Canvas) error

// WithBackground paints a full-extent backdrop rectangle of the given color
// behind all other geometry at save time.
func WithBackground(c Color) CanvasOption {
	return func(cv *Canvas) error {
		if err := c.validate(); err != nil {
			return err
		}
		cv.background = &c
		return nil
	}
}

// Canvas accumulates styled paths and tracks the bounding box of everything
// added to it. Paths are drawn in insertion order, later ones on top. The
// bounding box is grown automatically by each addition unless an override
// set through SetBBox is active.
//
// A Canvas is not safe for concurrent mutation; callers sharing one across
// goroutines must synchronize externally.
type Canvas struct {
	background *Color
	paths      []path

	auto     BBox  // grown by additions while no override is active
	hasGeom  bool  // auto is meaningless until the first addition
	override *BBox // nil when no override is active
}

// NewCanvas returns an empty canvas.
func NewCanvas(opts ...CanvasOption) (*Canvas, error) {
	c := &Canvas{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddPolygon appends a closed polygon. With no fill and no stroke option the
// polygon is drawn as a hairline outline so it remains visible. A polygon
// needs at least 2 points; otherwise an error wrapping ErrInvalidArgument is
// returned and the canvas is left unchanged.
func (c *Canvas) AddPolygon(points []Point, opts ...PathOption) error {
	return c.addPath(path{kind: polygonPath}, points, opts)
}

// AddPolyline appends an open stroked path. Polylines have no interior, so
// WithFill is rejected; with no options the line is drawn as a hairline.
func (c *Canvas) AddPolyline(points []Point, opts ...PathOption) error {
	return c.addPath(path{kind: polylinePath}, points, opts)
}

// AddCircle appends a circle with the given center and radius, styled like a
// polygon. The radius must be positive.
func (c *Canvas) AddCircle(center Point, radius float64, opts ...PathOption) error {
	if !(radius > 0) {
		return fmt.Errorf("%w: circle radius must be positive, got %v", ErrInvalidArgument, radius)
	}
	p := path{kind: circlePath, center: center, radius: radius}
	for _, opt := range opts {
		if err := opt(&p.style); err != nil {
			return err
		}
	}
	c.paths = append(c.paths, p)
	c.growBBox([]Point{
		{center.X - radius, center.Y - radius},
		{center.X + radius, center.Y + radius},
	})
	return nil
}

func (c *Canvas) addPath(p path, points []Point, opts []PathOption) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: path needs at least 2 points, got %d", ErrInvalidArgument, len(points))
	}
	for _, opt := range opts {
		if err := opt(&p.style); err != nil {
			return err
		}
	}
	if p.kind == polylinePath && p.style.fill != nil {
		return fmt.Errorf("%w: polyline cannot be filled", ErrInvalidArgument)
	}
	p.points = make([]Point, len(points))
	copy(p.points, points)
	c.paths = append(c.paths, p)
	c.growBBox(points)
	return nil
}

func (c *Canvas) growBBox(points []Point) {
	if c.override != nil {
		return
	}
	b := BBoxFromPoints(points)
	if !c.hasGeom {
		c.auto = b
		c.hasGeom = true
		return
	}
	c.auto = c.auto.grow(Point{b.X0, b.Y0}).grow(Point{b.X1, b.Y1})
}

// BBox returns the canvas's current bounding box: the override if one is
// active, the auto-grown box otherwise. It is the zero box before any
// geometry has been added.
func (c *Canvas) BBox() BBox {
	if c.override != nil {
		return *c.override
	}
	return c.auto
}

// SetBBox overrides the bounding box. While an override is active, additions
// no longer grow the box, so geometry can be drawn outside the visible frame
// without changing the output extent. Setting the box back to the value it
// had before the override clears the override and growth on add resumes.
func (c *Canvas) SetBBox(b BBox) {
	if b == c.auto {
		c.override = nil
		return
	}
	c.override = &b
}
