// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package proj implements closed-form map projections from geographic
// (longitude, latitude) coordinates to planar (x, y) coordinates.
//
// Every projection's parameters are fixed at construction and all methods
// are pure functions, so a single instance may be shared freely between
// goroutines. Projections do not correct longitude wrap-around: rings that
// cross the antimeridian must be split by the caller before projecting.
package proj

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// ErrOutsideDomain reports input outside a projection's mathematical
// domain, such as a pole under Mercator or degenerate conic parallels.
// Use errors.Is to test for it.
var ErrOutsideDomain = errors.New("proj: coordinates outside projection domain")

// Projection maps geographic coordinates in degrees to planar coordinates
// in meters and back. Geo2Rect(0, 0) is the planar origin for projections
// centered on the default origin.
type Projection interface {
	Geo2Rect(lon, lat float64) (x, y float64, err error)
	Rect2Geo(x, y float64) (lon, lat float64, err error)
}

// Scaler is implemented by projections with a closed-form point scale
// factor. For conformal projections this is the scale in every direction;
// for ConicEqualArea it is the scale along meridians.
type Scaler interface {
	Scale(lon, lat float64) float64
}

// Ellipsoid is an Earth reference ellipsoid.
// See http://www.epsg-registry.org/ for datums.
type Ellipsoid struct {
	A float64 // equatorial radius, meters
	B float64 // polar radius, meters
	E float64 // eccentricity
	F float64 // flattening
}

// NewEllipsoid derives an ellipsoid from its equatorial radius and
// flattening.
func NewEllipsoid(a, f float64) Ellipsoid {
	return Ellipsoid{
		A: a,
		B: a * (1 - f),
		E: math.Sqrt(2*f - f*f),
		F: f,
	}
}

var (
	// WGS84 is the World Geodetic System 1984 ellipsoid.
	WGS84 = NewEllipsoid(6378137, 1/298.257223563)
	// GRS80 is the Geodetic Reference System 1980 ellipsoid.
	GRS80 = NewEllipsoid(6378137, 1/298.257222101)
)

// MeanRadius returns the mean of the equatorial and polar radii.
func (e Ellipsoid) MeanRadius() float64 {
	return (e.A + e.B) / 2
}

// RadiusAt returns the geocentric radius of the ellipsoid at the given
// latitude in degrees.
// See http://en.wikipedia.org/wiki/Earth_radius#Geocentric_radius
func RadiusAt(lat float64, e Ellipsoid) float64 {
	coslat := math.Cos(radians(lat))
	sinlat := math.Sin(radians(lat))
	ac := e.A * e.A * coslat * coslat
	bs := e.B * e.B * sinlat * sinlat
	return math.Sqrt((e.A*e.A*ac + e.B*e.B*bs) / (ac + bs))
}

// Haversine returns the great-circle distance in meters between two
// geographic points given in degrees, on the geocentric radius at their mean
// latitude.
func Haversine(lon1, lat1, lon2, lat2 float64) float64 {
	d := s2.LatLngFromDegrees(lat1, lon1).Distance(s2.LatLngFromDegrees(lat2, lon2))
	return d.Radians() * RadiusAt((lat1+lat2)/2, WGS84)
}

// Bearing returns the initial great-circle bearing in degrees from the first
// point to the second: 0 is north, 90 east, ±180 south and -90 west.
func Bearing(lon1, lat1, lon2, lat2 float64) float64 {
	dLon := radians(lon2 - lon1)
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)
	y := math.Sin(dLon) * math.Cos(rlat2)
	x := math.Cos(rlat1)*math.Sin(rlat2) - math.Sin(rlat1)*math.Cos(rlat2)*math.Cos(dLon)
	return degrees(math.Atan2(y, x))
}

// Destination returns the point reached by traveling the given distance in
// meters from a starting point along an initial bearing in degrees.
func Destination(lon, lat, bearing, dist float64) (float64, float64) {
	rlon, rlat := radians(lon), radians(lat)
	tc := radians(bearing)
	d := dist / RadiusAt(lat, WGS84)
	coslat, sinlat := math.Cos(rlat), math.Sin(rlat)
	cosd, sind := math.Cos(d), math.Sin(d)
	rlat2 := math.Asin(sinlat*cosd + coslat*sind*math.Cos(tc))
	dlon := math.Atan2(math.Sin(tc)*sind*coslat, cosd-sinlat*math.Sin(rlat2))
	rlon2 := corAngle(rlon + dlon)
	return degrees(rlon2), degrees(rlat2)
}

// Options hold the construction parameters shared by all projections.
type Options struct {
	Lon0, Lat0 float64 // projection origin, degrees
	Radius     float64 // sphere radius, meters
	Ellipsoid  Ellipsoid
}

// Option configures a projection at construction time.
type Option func(*Options) error

// WithOrigin centers the projection on the given geographic point in
// degrees. The default origin is (0, 0).
func WithOrigin(lon, lat float64) Option {
	return func(o *Options) error {
		if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
			return fmt.Errorf("%w: origin (%v, %v)", ErrOutsideDomain, lon, lat)
		}
		o.Lon0, o.Lat0 = lon, lat
		return nil
	}
}

// WithRadius sets the sphere radius in meters for spherical projections.
// The default is the WGS84 mean radius.
func WithRadius(r float64) Option {
	return func(o *Options) error {
		if !(r > 0) {
			return fmt.Errorf("%w: sphere radius %v", ErrOutsideDomain, r)
		}
		o.Radius = r
		return nil
	}
}

// WithEllipsoid sets the reference ellipsoid for ellipsoidal projections.
// The default is WGS84.
func WithEllipsoid(e Ellipsoid) Option {
	return func(o *Options) error {
		if !(e.A > 0) || !(e.B > 0) || e.B > e.A {
			return fmt.Errorf("%w: ellipsoid %+v", ErrOutsideDomain, e)
		}
		o.Ellipsoid = e
		return nil
	}
}

func newOptions(opts []Option) (Options, error) {
	o := Options{
		Radius:    WGS84.MeanRadius(),
		Ellipsoid: WGS84,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, err
		}
	}
	return o, nil
}

// sphere holds the state shared by projections of the spherical Earth.
// Angles are kept in radians.
type sphere struct {
	lon0, lat0 float64
	r          float64
}

func newSphere(opts []Option) (sphere, error) {
	o, err := newOptions(opts)
	if err != nil {
		return sphere{}, err
	}
	return sphere{
		lon0: radians(o.Lon0),
		lat0: radians(o.Lat0),
		r:    o.Radius,
	}, nil
}

// Origin returns the projection's origin in degrees.
func (s sphere) Origin() (lon, lat float64) {
	return degrees(s.lon0), degrees(s.lat0)
}

// Radius returns the sphere radius in meters.
func (s sphere) Radius() float64 {
	return s.r
}

// corAngle wraps an angle in radians into [-pi, pi].
func corAngle(a float64) float64 {
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
