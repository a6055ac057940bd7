// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package coral

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func countPolygons(doc string) int {
	return strings.Count(doc, "<polygon")
}

func TestCanvas_Render_EmptyCanvas(t *testing.T) {
	c := mustNewCanvas(t, WithBackground(Color{1, 1, 1}))
	if _, err := c.Render(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Render() on empty canvas error = %v, want ErrInvalidArgument", err)
	}

	// An explicit bounding box makes a background-only canvas renderable.
	c.SetBBox(BBox{0, 0, 100, 100})
	if _, err := c.Render(); err != nil {
		t.Errorf("Render() with explicit bbox error = %v", err)
	}
}

func TestCanvas_Render_BackgroundThenPolygon(t *testing.T) {
	c := mustNewCanvas(t, WithBackground(Color{0.5, 0.8, 0.9}))
	err := c.AddPolygon(unitSquare, WithFill(Color{0.4, 0.9, 0.2}), WithStroke(Color{1, 1, 1}))
	if err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	if got, want := c.BBox(), (BBox{0, 0, 1, 1}); got != want {
		t.Errorf("BBox() = %v, want %v", got, want)
	}

	out, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := string(out)

	rect := strings.Index(doc, "<rect")
	poly := strings.Index(doc, "<polygon")
	if rect < 0 || poly < 0 {
		t.Fatalf("render missing background rect or polygon:\n%v", doc)
	}
	if rect > poly {
		t.Errorf("background rect drawn after polygon:\n%v", doc)
	}
	if got, want := strings.Count(doc, "<rect"), 1; got != want {
		t.Errorf("rect count = %v, want %v", got, want)
	}
	if got, want := countPolygons(doc), 1; got != want {
		t.Errorf("polygon count = %v, want %v", got, want)
	}
	for _, want := range []string{"rgb(128,204,230)", "fill:rgb(102,230,51)", "stroke:rgb(255,255,255)"} {
		if !strings.Contains(doc, want) {
			t.Errorf("render missing %q:\n%v", want, doc)
		}
	}
}

func TestCanvas_Render_PaintOrder(t *testing.T) {
	c := mustNewCanvas(t)
	if err := c.AddPolygon(unitSquare, WithFill(Color{1, 0, 0})); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	if err := c.AddPolygon(unitSquare, WithFill(Color{0, 1, 0})); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	out, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := string(out)
	red := strings.Index(doc, "rgb(255,0,0)")
	green := strings.Index(doc, "rgb(0,255,0)")
	if red < 0 || green < 0 || red > green {
		t.Errorf("insertion order not preserved, red at %d, green at %d:\n%v", red, green, doc)
	}
}

func TestCanvas_Render_DefaultHairline(t *testing.T) {
	c := mustNewCanvas(t)
	if err := c.AddPolygon(unitSquare); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	out, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := string(out)
	if !strings.Contains(doc, "fill:none") {
		t.Errorf("unstyled polygon should not be filled:\n%v", doc)
	}
	if !strings.Contains(doc, "stroke:rgb(0,0,0)") {
		t.Errorf("unstyled polygon should get a default stroke:\n%v", doc)
	}
}

func TestCanvas_Render_Deterministic(t *testing.T) {
	c := mustNewCanvas(t, WithBackground(Color{1, 1, 1}))
	if err := c.AddPolygon(unitSquare, WithFill(Color{0.25, 0.5, 0.75})); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	if err := c.AddPolyline([]Point{{0, 0}, {0.5, 0.7}}, WithStroke(Color{0, 0, 0})); err != nil {
		t.Fatalf("AddPolyline(...) error = %v", err)
	}
	a, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := c.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("Render() not deterministic across calls")
	}
}

func TestCanvas_Save_Idempotent(t *testing.T) {
	c := mustNewCanvas(t, WithBackground(Color{0.5, 0.8, 0.9}))
	if err := c.AddPolygon(unitSquare, WithFill(Color{0.4, 0.9, 0.2})); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.svg")
	p2 := filepath.Join(dir, "b.svg")
	if err := c.Save(p1); err != nil {
		t.Fatalf("Save(%v) error = %v", p1, err)
	}
	if err := c.Save(p2); err != nil {
		t.Fatalf("Save(%v) error = %v", p2, err)
	}
	d1, err := os.ReadFile(p1)
	if err != nil {
		t.Fatalf("ReadFile(%v) error = %v", p1, err)
	}
	d2, err := os.ReadFile(p2)
	if err != nil {
		t.Fatalf("ReadFile(%v) error = %v", p2, err)
	}
	if !bytes.Equal(d1, d2) {
		t.Errorf("consecutive saves differ")
	}

	// Overwriting an existing file also yields identical bytes.
	if err := c.Save(p1); err != nil {
		t.Fatalf("Save(%v) again error = %v", p1, err)
	}
	d3, err := os.ReadFile(p1)
	if err != nil {
		t.Fatalf("ReadFile(%v) error = %v", p1, err)
	}
	if !bytes.Equal(d1, d3) {
		t.Errorf("overwriting save differs from original")
	}
}

func TestCanvas_Save_NoPartialFileOnFailure(t *testing.T) {
	c := mustNewCanvas(t)
	if err := c.AddPolygon(unitSquare); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "missing", "out.svg")
	if err := c.Save(path); err == nil {
		t.Fatalf("Save(%v) error = nil, want non-nil", path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Save failure left a file behind at %v", path)
	}
}

func TestCanvas_Save_LeavesNoTempFiles(t *testing.T) {
	c := mustNewCanvas(t)
	if err := c.AddPolygon(unitSquare); err != nil {
		t.Fatalf("AddPolygon(...) error = %v", err)
	}
	dir := t.TempDir()
	if err := c.Save(filepath.Join(dir, "out.svg")); err != nil {
		t.Fatalf("Save(...) error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%v) error = %v", dir, err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.svg" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory contents = %v, want [out.svg]", names)
	}
}
