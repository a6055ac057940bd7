// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package coral

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustNewCanvas(t *testing.T, opts ...CanvasOption) *Canvas {
	t.Helper()
	c, err := NewCanvas(opts...)
	if err != nil {
		t.Fatalf("NewCanvas(...) error = %v", err)
	}
	return c
}

var unitSquare = []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func TestNewCanvas_BackgroundValidation(t *testing.T) {
	tests := []struct {
		name    string
		color   Color
		wantErr bool
	}{
		{"valid", Color{0.5, 0.8, 0.9}, false},
		{"component above one", Color{0, 1.5, 0}, true},
		{"negative component", Color{-0.1, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCanvas(WithBackground(tt.color))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCanvas(WithBackground(%v)) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("NewCanvas(WithBackground(%v)) error = %v, want ErrInvalidArgument", tt.color, err)
			}
		})
	}
}

func TestCanvas_AddPolygon_GrowsBBox(t *testing.T) {
	c := mustNewCanvas(t)
	if err := c.AddPolygon(unitSquare); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	if got, want := c.BBox(), (BBox{0, 0, 1, 1}); got != want {
		t.Errorf("BBox() = %v, want %v", got, want)
	}
	if err := c.AddPolygon([]Point{{-2, 3}, {0.5, 0.5}}); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	if got, want := c.BBox(), (BBox{-2, 0, 1, 3}); got != want {
		t.Errorf("BBox() after second polygon = %v, want %v", got, want)
	}
}

func TestCanvas_AddPolygon_TooFewPoints(t *testing.T) {
	c := mustNewCanvas(t)
	if err := c.AddPolygon(unitSquare); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	before, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	boxBefore := c.BBox()

	for _, points := range [][]Point{nil, {{5, 5}}} {
		if err := c.AddPolygon(points); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("AddPolygon(%v) error = %v, want ErrInvalidArgument", points, err)
		}
	}

	if got := c.BBox(); got != boxBefore {
		t.Errorf("BBox() after failed adds = %v, want %v", got, boxBefore)
	}
	after, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if diff := cmp.Diff(string(before), string(after)); diff != "" {
		t.Errorf("render changed by failed adds (-before +after):\n%v", diff)
	}
}

func TestCanvas_AddPolygon_BadStyle(t *testing.T) {
	c := mustNewCanvas(t)
	err := c.AddPolygon(unitSquare, WithFill(Color{2, 0, 0}))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddPolygon(..., WithFill(bad)) error = %v, want ErrInvalidArgument", err)
	}
	if got := c.BBox(); got != (BBox{}) {
		t.Errorf("BBox() after failed add = %v, want zero box", got)
	}
}

func TestCanvas_AddPolyline_RejectsFill(t *testing.T) {
	c := mustNewCanvas(t)
	err := c.AddPolyline([]Point{{0, 0}, {1, 1}}, WithFill(Color{0, 0, 0}))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddPolyline(..., WithFill(...)) error = %v, want ErrInvalidArgument", err)
	}
	if err := c.AddPolyline([]Point{{0, 0}, {1, 1}}, WithStroke(Color{0, 0, 0})); err != nil {
		t.Errorf("AddPolyline(..., WithStroke(...)) error = %v", err)
	}
}

func TestCanvas_AddCircle(t *testing.T) {
	c := mustNewCanvas(t)
	if err := c.AddCircle(Point{2, 3}, 1, WithFill(Color{1, 0, 0})); err != nil {
		t.Fatalf("AddCircle(...) error = %v", err)
	}
	if got, want := c.BBox(), (BBox{1, 2, 3, 4}); got != want {
		t.Errorf("BBox() = %v, want %v", got, want)
	}
	if err := c.AddCircle(Point{0, 0}, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddCircle(..., 0) error = %v, want ErrInvalidArgument", err)
	}
}

func TestCanvas_BBoxOverrideRestore(t *testing.T) {
	c := mustNewCanvas(t)
	if err := c.AddPolygon(unitSquare); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	box0 := c.BBox()

	custom := BBox{-10, -10, 10, 10}
	c.SetBBox(custom)
	if got := c.BBox(); got != custom {
		t.Errorf("BBox() under override = %v, want %v", got, custom)
	}

	// Off-frame geometry must not grow the box while overridden.
	far := []Point{{100, 100}, {101, 100}, {101, 101}}
	if err := c.AddPolygon(far); err != nil {
		t.Fatalf("AddPolygon(far) error = %v", err)
	}
	if got := c.BBox(); got != custom {
		t.Errorf("BBox() after add under override = %v, want %v", got, custom)
	}

	c.SetBBox(box0)
	if got := c.BBox(); got != box0 {
		t.Errorf("BBox() after restore = %v, want %v", got, box0)
	}

	// The far polygon is still part of the output.
	out, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := countPolygons(string(out)), 2; got != want {
		t.Errorf("rendered polygon count = %v, want %v", got, want)
	}

	// Growth on add resumes after the restore.
	if err := c.AddPolygon([]Point{{0, 0}, {2, 2}}); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	if got, want := c.BBox(), (BBox{0, 0, 2, 2}); got != want {
		t.Errorf("BBox() after growth resumed = %v, want %v", got, want)
	}
}
