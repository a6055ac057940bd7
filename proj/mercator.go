// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package proj

import (
	"fmt"
	"math"
)

// Mercator is the Mercator projection of the spherical Earth. It is
// conformal; the poles have no image and are rejected with ErrOutsideDomain.
type Mercator struct {
	sphere
}

// NewMercator returns a Mercator projection. Accepted options: WithOrigin,
// WithRadius.
func NewMercator(opts ...Option) (*Mercator, error) {
	s, err := newSphere(opts)
	if err != nil {
		return nil, err
	}
	return &Mercator{sphere: s}, nil
}

func (m *Mercator) Geo2Rect(lon, lat float64) (float64, float64, error) {
	if lat <= -90 || lat >= 90 {
		return 0, 0, fmt.Errorf("%w: latitude %v has no Mercator image", ErrOutsideDomain, lat)
	}
	rlon, rlat := radians(lon), radians(lat)
	x := m.r * corAngle(rlon-m.lon0)
	y := m.r * math.Log(math.Tan(math.Pi/4+rlat/2))
	return x, y, nil
}

func (m *Mercator) Rect2Geo(x, y float64) (float64, float64, error) {
	lon := corAngle(x/m.r + m.lon0)
	lat := math.Atan(math.Sinh(y / m.r))
	return degrees(lon), degrees(lat), nil
}

// Scale returns the point scale factor, 1/cos(lat).
func (m *Mercator) Scale(lon, lat float64) float64 {
	return 1 / math.Cos(radians(lat))
}

// EllipsoidalMercator is the Mercator projection of the ellipsoidal Earth.
type EllipsoidalMercator struct {
	lon0, lat0 float64
	e          Ellipsoid
}

// NewEllipsoidalMercator returns a Mercator projection on a reference
// ellipsoid. Accepted options: WithOrigin, WithEllipsoid.
func NewEllipsoidalMercator(opts ...Option) (*EllipsoidalMercator, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return &EllipsoidalMercator{
		lon0: radians(o.Lon0),
		lat0: radians(o.Lat0),
		e:    o.Ellipsoid,
	}, nil
}

// Origin returns the projection's origin in degrees.
func (m *EllipsoidalMercator) Origin() (lon, lat float64) {
	return degrees(m.lon0), degrees(m.lat0)
}

// Ellipsoid returns the reference ellipsoid.
func (m *EllipsoidalMercator) Ellipsoid() Ellipsoid {
	return m.e
}

func (m *EllipsoidalMercator) Geo2Rect(lon, lat float64) (float64, float64, error) {
	if lat <= -90 || lat >= 90 {
		return 0, 0, fmt.Errorf("%w: latitude %v has no Mercator image", ErrOutsideDomain, lat)
	}
	rlon, rlat := radians(lon), radians(lat)
	x := m.e.A * corAngle(rlon-m.lon0)
	esinlat := m.e.E * math.Sin(rlat)
	t := math.Tan(math.Pi/4+rlat/2) * math.Pow((1-esinlat)/(1+esinlat), m.e.E/2)
	y := m.e.A * math.Log(t)
	return x, y, nil
}

func (m *EllipsoidalMercator) Rect2Geo(x, y float64) (float64, float64, error) {
	const (
		tol     = 1e-12
		maxIter = 64
	)
	lon := corAngle(x/m.e.A + m.lon0)
	t := math.Exp(-y / m.e.A)
	lat := math.Pi/2 - 2*math.Atan(t)
	for iter := 0; iter < maxIter; iter++ {
		esinlat := m.e.E * math.Sin(lat)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-esinlat)/(1+esinlat), m.e.E/2))
		if math.Abs(next-lat) <= tol {
			lat = next
			break
		}
		lat = next
	}
	return degrees(lon), degrees(lat), nil
}

// Scale returns the point scale factor, sqrt(1-e²sin²(lat))/cos(lat).
func (m *EllipsoidalMercator) Scale(lon, lat float64) float64 {
	rlat := radians(lat)
	sinlat := math.Sin(rlat)
	return math.Sqrt(1-m.e.E*m.e.E*sinlat*sinlat) / math.Cos(rlat)
}

// TransverseMercator is the transverse Mercator projection of the spherical
// Earth. The poles project to finite coordinates; the only invalid inputs
// are the two equatorial points 90° east and west of the central meridian,
// which are rejected with ErrOutsideDomain.
type TransverseMercator struct {
	sphere
}

// NewTransverseMercator returns a transverse Mercator projection. Accepted
// options: WithOrigin, WithRadius.
func NewTransverseMercator(opts ...Option) (*TransverseMercator, error) {
	s, err := newSphere(opts)
	if err != nil {
		return nil, err
	}
	return &TransverseMercator{sphere: s}, nil
}

func (m *TransverseMercator) Geo2Rect(lon, lat float64) (float64, float64, error) {
	rlon, rlat := radians(lon), radians(lat)
	b := math.Cos(rlat) * math.Sin(rlon-m.lon0)
	if b <= -1 || b >= 1 {
		return 0, 0, fmt.Errorf("%w: (%v, %v) is 90° from the central meridian on the equator",
			ErrOutsideDomain, lon, lat)
	}
	x := m.r * math.Atanh(b)
	y := m.r * corAngle(math.Atan2(math.Tan(rlat), math.Cos(rlon-m.lon0))-m.lat0)
	return x, y, nil
}

func (m *TransverseMercator) Rect2Geo(x, y float64) (float64, float64, error) {
	d := y/m.r + m.lat0
	lon := m.lon0 + math.Atan2(math.Sinh(x/m.r), math.Cos(d))
	lat := math.Asin(math.Sin(d) / math.Cosh(x/m.r))
	return degrees(lon), degrees(lat), nil
}

// Scale returns the point scale factor.
func (m *TransverseMercator) Scale(lon, lat float64) float64 {
	rlon, rlat := radians(lon), radians(lat)
	b := math.Cos(rlat) * math.Sin(rlon-m.lon0)
	return 1 / math.Sqrt(1-b*b)
}

// ObliqueMercator is the oblique Mercator projection of the spherical Earth,
// with the projection axis tilted to pass through the configured origin.
type ObliqueMercator struct {
	sphere
	coslat0, sinlat0 float64
}

// NewObliqueMercator returns an oblique Mercator projection. Accepted
// options: WithOrigin, WithRadius.
func NewObliqueMercator(opts ...Option) (*ObliqueMercator, error) {
	s, err := newSphere(opts)
	if err != nil {
		return nil, err
	}
	return &ObliqueMercator{
		sphere:  s,
		coslat0: math.Cos(s.lat0),
		sinlat0: math.Sin(s.lat0),
	}, nil
}

func (m *ObliqueMercator) Geo2Rect(lon, lat float64) (float64, float64, error) {
	rlon, rlat := radians(lon), radians(lat)
	a := m.sinlat0*math.Sin(rlat) - m.coslat0*math.Cos(rlat)*math.Sin(rlon-m.lon0)
	if a <= -1 || a >= 1 {
		return 0, 0, fmt.Errorf("%w: (%v, %v) lies on the oblique pole axis", ErrOutsideDomain, lon, lat)
	}
	v := math.Tan(rlat)*m.coslat0 + m.sinlat0*math.Sin(rlon-m.lon0)
	h := math.Cos(rlon - m.lon0)
	x := m.r * math.Atan(v/h)
	y := m.r * math.Atanh(a)
	return x, y, nil
}

func (m *ObliqueMercator) Rect2Geo(x, y float64) (float64, float64, error) {
	xr, yr := x/m.r, y/m.r
	lat := math.Asin(m.sinlat0*math.Tanh(yr) + m.coslat0*math.Sin(xr)/math.Cosh(yr))
	v := m.sinlat0*math.Sin(xr) - m.coslat0*math.Sinh(yr)
	h := math.Cos(xr)
	lon := m.lon0 + math.Atan(v/h)
	return degrees(lon), degrees(lat), nil
}

// Scale returns the point scale factor.
func (m *ObliqueMercator) Scale(lon, lat float64) float64 {
	rlon, rlat := radians(lon), radians(lat)
	a := m.sinlat0*math.Sin(rlat) - m.coslat0*math.Cos(rlat)*math.Sin(rlon-m.lon0)
	return 1 / math.Sqrt(1-a*a)
}
