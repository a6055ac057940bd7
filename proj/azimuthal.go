// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package proj

import (
	"fmt"
	"math"
)

// azimuthal holds the state shared by the azimuthal projections, which all
// map from a tangent point at the configured origin.
type azimuthal struct {
	sphere
	coslat0, sinlat0 float64
}

func newAzimuthal(opts []Option) (azimuthal, error) {
	s, err := newSphere(opts)
	if err != nil {
		return azimuthal{}, err
	}
	return azimuthal{
		sphere:  s,
		coslat0: math.Cos(s.lat0),
		sinlat0: math.Sin(s.lat0),
	}, nil
}

// cosC returns the cosine of the angular distance from the origin to the
// given point in radians.
func (a azimuthal) cosC(rlon, rlat float64) float64 {
	return a.sinlat0*math.Sin(rlat) + a.coslat0*math.Cos(rlat)*math.Cos(rlon-a.lon0)
}

// rect2geo inverts the common azimuthal form given the angular distance c
// matching a planar radius p.
func (a azimuthal) rect2geo(x, y, p, c float64) (float64, float64) {
	if p == 0 {
		return degrees(a.lon0), degrees(a.lat0)
	}
	cosc, sinc := math.Cos(c), math.Sin(c)
	var lon float64
	switch {
	case a.lat0 == math.Pi/2: // north polar aspect
		lon = a.lon0 + math.Atan(x/(-y))
	case a.lat0 == -math.Pi/2: // south polar aspect
		lon = a.lon0 + math.Atan(x/y)
	default:
		den := p*a.coslat0*cosc - y*a.sinlat0*sinc
		lon = a.lon0 + math.Atan(x*sinc/den)
	}
	lat := math.Asin(cosc*a.sinlat0 + y*sinc*a.coslat0/p)
	return degrees(lon), degrees(lat)
}

// Stereographic is the stereographic projection of the spherical Earth,
// conformal and centered on the configured origin. The point antipodal to
// the origin has no image.
type Stereographic struct {
	azimuthal
}

// NewStereographic returns a stereographic projection. Accepted options:
// WithOrigin, WithRadius.
func NewStereographic(opts ...Option) (*Stereographic, error) {
	a, err := newAzimuthal(opts)
	if err != nil {
		return nil, err
	}
	return &Stereographic{azimuthal: a}, nil
}

func (p *Stereographic) Geo2Rect(lon, lat float64) (float64, float64, error) {
	rlon, rlat := radians(lon), radians(lat)
	den := 1 + p.cosC(rlon, rlat)
	if den <= 0 {
		return 0, 0, fmt.Errorf("%w: (%v, %v) is antipodal to the projection origin",
			ErrOutsideDomain, lon, lat)
	}
	k := 2 / den
	x := p.r * k * math.Cos(rlat) * math.Sin(rlon-p.lon0)
	y := p.r * k * (p.coslat0*math.Sin(rlat) - p.sinlat0*math.Cos(rlat)*math.Cos(rlon-p.lon0))
	return x, y, nil
}

func (p *Stereographic) Rect2Geo(x, y float64) (float64, float64, error) {
	rho := math.Hypot(x, y)
	c := 2 * math.Atan(rho/(2*p.r))
	lon, lat := p.rect2geo(x, y, rho, c)
	return lon, lat, nil
}

// AzimuthalEquidistant is the azimuthal equidistant projection of the
// spherical Earth: distances from the origin are true. The point antipodal
// to the origin has no image.
type AzimuthalEquidistant struct {
	azimuthal
}

// NewAzimuthalEquidistant returns an azimuthal equidistant projection.
// Accepted options: WithOrigin, WithRadius.
func NewAzimuthalEquidistant(opts ...Option) (*AzimuthalEquidistant, error) {
	a, err := newAzimuthal(opts)
	if err != nil {
		return nil, err
	}
	return &AzimuthalEquidistant{azimuthal: a}, nil
}

func (p *AzimuthalEquidistant) Geo2Rect(lon, lat float64) (float64, float64, error) {
	rlon, rlat := radians(lon), radians(lat)
	cosc := p.cosC(rlon, rlat)
	if cosc >= 1 {
		// The origin itself; k has a removable singularity here.
		return 0, 0, nil
	}
	if cosc <= -1 {
		return 0, 0, fmt.Errorf("%w: (%v, %v) is antipodal to the projection origin",
			ErrOutsideDomain, lon, lat)
	}
	c := math.Acos(cosc)
	k := c / math.Sin(c)
	x := p.r * k * math.Cos(rlat) * math.Sin(rlon-p.lon0)
	y := p.r * k * (p.coslat0*math.Sin(rlat) - p.sinlat0*math.Cos(rlat)*math.Cos(rlon-p.lon0))
	return x, y, nil
}

func (p *AzimuthalEquidistant) Rect2Geo(x, y float64) (float64, float64, error) {
	rho := math.Hypot(x, y)
	c := rho / p.r
	if c > math.Pi {
		return 0, 0, fmt.Errorf("%w: point (%v, %v) is outside the projected globe", ErrOutsideDomain, x, y)
	}
	lon, lat := p.rect2geo(x, y, rho, c)
	return lon, lat, nil
}

// AzimuthalEqualArea is the Lambert azimuthal equal-area projection of the
// spherical Earth. The point antipodal to the origin has no image.
type AzimuthalEqualArea struct {
	azimuthal
}

// NewAzimuthalEqualArea returns a Lambert azimuthal equal-area projection.
// Accepted options: WithOrigin, WithRadius.
func NewAzimuthalEqualArea(opts ...Option) (*AzimuthalEqualArea, error) {
	a, err := newAzimuthal(opts)
	if err != nil {
		return nil, err
	}
	return &AzimuthalEqualArea{azimuthal: a}, nil
}

func (p *AzimuthalEqualArea) Geo2Rect(lon, lat float64) (float64, float64, error) {
	rlon, rlat := radians(lon), radians(lat)
	den := 1 + p.cosC(rlon, rlat)
	if den <= 0 {
		return 0, 0, fmt.Errorf("%w: (%v, %v) is antipodal to the projection origin",
			ErrOutsideDomain, lon, lat)
	}
	k := math.Sqrt(2 / den)
	x := p.r * k * math.Cos(rlat) * math.Sin(rlon-p.lon0)
	y := p.r * k * (p.coslat0*math.Sin(rlat) - p.sinlat0*math.Cos(rlat)*math.Cos(rlon-p.lon0))
	return x, y, nil
}

func (p *AzimuthalEqualArea) Rect2Geo(x, y float64) (float64, float64, error) {
	rho := math.Hypot(x, y)
	arg := rho / (2 * p.r)
	if arg > 1 {
		return 0, 0, fmt.Errorf("%w: point (%v, %v) is outside the projected globe", ErrOutsideDomain, x, y)
	}
	c := 2 * math.Asin(arg)
	lon, lat := p.rect2geo(x, y, rho, c)
	return lon, lat, nil
}
