// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package frame ties a map projection to a bounding box on the projected
// plane. A frame fully determines a map's geometry: every layer of entities
// drawn on the same map shares one frame. Frames can be persisted as JSON so
// that separately rendered layers line up.
package frame

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lecram/coral"
	"github.com/lecram/coral/proj"
)

// Frame is a projection plus a window on the projected plane, in meters.
type Frame struct {
	Projection proj.Projection
	Bounding   coral.BBox
}

// Point projects a single geographic point and scales it to output units
// (scale is in meters per output unit, e.g. meters per pixel).
func (f *Frame) Point(scale float64, g coral.GeoPoint) (coral.Point, error) {
	if !(scale > 0) {
		return coral.Point{}, fmt.Errorf("%w: scale must be positive, got %v", coral.ErrInvalidArgument, scale)
	}
	x, y, err := f.Projection.Geo2Rect(g.Lon, g.Lat)
	if err != nil {
		return coral.Point{}, err
	}
	return coral.Point{X: x / scale, Y: y / scale}, nil
}

// Planify projects a ring of geographic points onto the plane and thins it
// out at the given scale, which doubles as the simplification tolerance in
// meters. This is the standard pipeline between a shape source and a canvas.
func (f *Frame) Planify(scale float64, points []coral.GeoPoint) ([]coral.Point, error) {
	planar := make([]coral.Point, len(points))
	for i, g := range points {
		x, y, err := f.Projection.Geo2Rect(g.Lon, g.Lat)
		if err != nil {
			return nil, err
		}
		planar[i] = coral.Point{X: x, Y: y}
	}
	return coral.Simplify(planar, scale)
}

// Visible reports whether the projected bounding box of a ring collides with
// the frame's window, i.e. whether any part of the ring may be visible.
func (f *Frame) Visible(points []coral.GeoPoint) (bool, error) {
	if len(points) == 0 {
		return false, nil
	}
	planar := make([]coral.Point, len(points))
	for i, g := range points {
		x, y, err := f.Projection.Geo2Rect(g.Lon, g.Lat)
		if err != nil {
			return false, err
		}
		planar[i] = coral.Point{X: x, Y: y}
	}
	return f.Bounding.Collides(coral.BBoxFromPoints(planar)), nil
}

type frameJSON struct {
	Projection projectionJSON `json:"projection"`
	Bounding   boundingJSON   `json:"bounding"`
}

type projectionJSON struct {
	Type        string      `json:"type"`
	Center      [2]float64  `json:"center"`
	Parallels   *[2]float64 `json:"parallels,omitempty"`
	Orientation float64     `json:"orientation"`
	Model       modelJSON   `json:"model"`
}

type modelJSON struct {
	Type string  `json:"type"` // "sphere" or "ellipsoid"
	R    float64 `json:"r,omitempty"`
	A    float64 `json:"a,omitempty"`
	B    float64 `json:"b,omitempty"`
	E    float64 `json:"e,omitempty"`
	F    float64 `json:"f,omitempty"`
}

type boundingJSON struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

type spherical interface {
	Origin() (lon, lat float64)
	Radius() float64
}

// Save writes the frame definition to a JSON file.
// Only the projections of this module can be serialized.
func (f *Frame) Save(path string) error {
	var pj projectionJSON
	switch p := f.Projection.(type) {
	case *proj.Mercator:
		pj.Type = "Mercator"
	case *proj.TransverseMercator:
		pj.Type = "TransverseMercator"
	case *proj.ObliqueMercator:
		pj.Type = "ObliqueMercator"
	case *proj.EckertIV:
		pj.Type = "EckertIV"
	case *proj.Stereographic:
		pj.Type = "Stereographic"
	case *proj.AzimuthalEquidistant:
		pj.Type = "AzimuthalEquidistant"
	case *proj.AzimuthalEqualArea:
		pj.Type = "AzimuthalEqualArea"
	case *proj.ConicEqualArea:
		pj.Type = "ConicEqualArea"
		lat1, lat2 := p.Parallels()
		pj.Parallels = &[2]float64{lat1, lat2}
	case *proj.EllipsoidalMercator:
		pj.Type = "EllipsoidalMercator"
		e := p.Ellipsoid()
		pj.Model = modelJSON{Type: "ellipsoid", A: e.A, B: e.B, E: e.E, F: e.F}
	default:
		return fmt.Errorf("%w: cannot serialize projection %T", coral.ErrInvalidArgument, f.Projection)
	}
	if s, ok := f.Projection.(spherical); ok {
		lon, lat := s.Origin()
		pj.Center = [2]float64{lon, lat}
		pj.Model = modelJSON{Type: "sphere", R: s.Radius()}
	} else if em, ok := f.Projection.(*proj.EllipsoidalMercator); ok {
		lon, lat := em.Origin()
		pj.Center = [2]float64{lon, lat}
	}

	data, err := json.MarshalIndent(frameJSON{
		Projection: pj,
		Bounding: boundingJSON{
			X0: f.Bounding.X0,
			Y0: f.Bounding.Y0,
			X1: f.Bounding.X1,
			Y1: f.Bounding.Y1,
		},
	}, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Load reads a frame definition written by Save.
func Load(path string) (*Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fj frameJSON
	if err := json.Unmarshal(data, &fj); err != nil {
		return nil, fmt.Errorf("frame: parse %s: %w", path, err)
	}

	pj := fj.Projection
	opts := []proj.Option{proj.WithOrigin(pj.Center[0], pj.Center[1])}
	switch pj.Model.Type {
	case "sphere":
		opts = append(opts, proj.WithRadius(pj.Model.R))
	case "ellipsoid":
		opts = append(opts, proj.WithEllipsoid(proj.Ellipsoid{
			A: pj.Model.A, B: pj.Model.B, E: pj.Model.E, F: pj.Model.F,
		}))
	default:
		return nil, fmt.Errorf("%w: unknown earth model %q", coral.ErrInvalidArgument, pj.Model.Type)
	}

	var p proj.Projection
	switch pj.Type {
	case "Mercator":
		p, err = proj.NewMercator(opts...)
	case "EllipsoidalMercator":
		p, err = proj.NewEllipsoidalMercator(opts...)
	case "TransverseMercator":
		p, err = proj.NewTransverseMercator(opts...)
	case "ObliqueMercator":
		p, err = proj.NewObliqueMercator(opts...)
	case "EckertIV":
		p, err = proj.NewEckertIV(opts...)
	case "Stereographic":
		p, err = proj.NewStereographic(opts...)
	case "AzimuthalEquidistant":
		p, err = proj.NewAzimuthalEquidistant(opts...)
	case "AzimuthalEqualArea":
		p, err = proj.NewAzimuthalEqualArea(opts...)
	case "ConicEqualArea":
		if pj.Parallels == nil {
			return nil, fmt.Errorf("%w: ConicEqualArea frame without parallels", coral.ErrInvalidArgument)
		}
		p, err = proj.NewConicEqualArea(pj.Parallels[0], pj.Parallels[1], opts...)
	default:
		return nil, fmt.Errorf("%w: unknown projection %q", coral.ErrInvalidArgument, pj.Type)
	}
	if err != nil {
		return nil, err
	}

	return &Frame{
		Projection: p,
		Bounding: coral.BBox{
			X0: fj.Bounding.X0,
			Y0: fj.Bounding.Y0,
			X1: fj.Bounding.X1,
			Y1: fj.Bounding.Y1,
		},
	}, nil
}
