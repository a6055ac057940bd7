// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package proj

import (
	"fmt"
	"math"
)

// ConicEqualArea is the Albers equal-area conic projection of the spherical
// Earth, defined by two standard parallels along which the scale is true.
type ConicEqualArea struct {
	lon0       float64
	lat1, lat2 float64 // standard parallels, radians
	r          float64

	n, c, p0 float64
}

// NewConicEqualArea returns an Albers equal-area conic projection with the
// given standard parallels in degrees. The parallels must be distinct,
// non-symmetric values in (-90, 90); otherwise the cone is degenerate and
// an error wrapping ErrOutsideDomain is returned. Accepted options:
// WithOrigin, WithRadius.
func NewConicEqualArea(lat1, lat2 float64, opts ...Option) (*ConicEqualArea, error) {
	if lat1 <= -90 || lat1 >= 90 || lat2 <= -90 || lat2 >= 90 {
		return nil, fmt.Errorf("%w: standard parallels (%v, %v) outside (-90, 90)",
			ErrOutsideDomain, lat1, lat2)
	}
	if lat1 == lat2 {
		return nil, fmt.Errorf("%w: degenerate cone, standard parallels %v = %v",
			ErrOutsideDomain, lat1, lat2)
	}
	s, err := newSphere(opts)
	if err != nil {
		return nil, err
	}
	p := &ConicEqualArea{
		lon0: s.lon0,
		lat1: radians(lat1),
		lat2: radians(lat2),
		r:    s.r,
	}
	coslat1 := math.Cos(p.lat1)
	sinlat1 := math.Sin(p.lat1)
	p.n = (sinlat1 + math.Sin(p.lat2)) / 2
	if p.n == 0 {
		// Symmetric parallels flatten the cone into a cylinder.
		return nil, fmt.Errorf("%w: degenerate cone, standard parallels %v and %v are symmetric",
			ErrOutsideDomain, lat1, lat2)
	}
	p.c = coslat1*coslat1 + 2*p.n*sinlat1
	p.p0 = p.r * math.Sqrt(p.c) / p.n
	return p, nil
}

// Parallels returns the standard parallels in degrees.
func (p *ConicEqualArea) Parallels() (lat1, lat2 float64) {
	return degrees(p.lat1), degrees(p.lat2)
}

// Origin returns the projection's central meridian and origin latitude in
// degrees. The origin latitude plays no role in this projection.
func (p *ConicEqualArea) Origin() (lon, lat float64) {
	return degrees(p.lon0), 0
}

// Radius returns the sphere radius in meters.
func (p *ConicEqualArea) Radius() float64 {
	return p.r
}

func (p *ConicEqualArea) Geo2Rect(lon, lat float64) (float64, float64, error) {
	rlon, rlat := radians(lon), radians(lat)
	under := p.c - 2*p.n*math.Sin(rlat)
	if under < 0 {
		return 0, 0, fmt.Errorf("%w: latitude %v is beyond the cone's reach", ErrOutsideDomain, lat)
	}
	rho := p.r * math.Sqrt(under) / p.n
	theta := p.n * corAngle(rlon-p.lon0)
	x := rho * math.Sin(theta)
	y := p.p0 - rho*math.Cos(theta)
	return x, y, nil
}

func (p *ConicEqualArea) Rect2Geo(x, y float64) (float64, float64, error) {
	rho := math.Hypot(x, p.p0-y)
	p0 := p.p0
	if p.n < 0 {
		p0 = -p0
		x, y = -x, -y
	}
	theta := math.Atan2(x, p0-y)
	lon := corAngle(theta/p.n + p.lon0)
	pnr := rho * p.n / p.r
	sinlat := (p.c - pnr*pnr) / (2 * p.n)
	if sinlat < -1 || sinlat > 1 {
		return 0, 0, fmt.Errorf("%w: point (%v, %v) is outside the projected globe", ErrOutsideDomain, x, y)
	}
	return degrees(lon), degrees(math.Asin(sinlat)), nil
}

// Scale returns the scale along meridians. The scale along parallels is its
// reciprocal.
func (p *ConicEqualArea) Scale(lon, lat float64) float64 {
	rlat := radians(lat)
	return math.Cos(rlat) / math.Sqrt(p.c-2*p.n*math.Sin(rlat))
}
