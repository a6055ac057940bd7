// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package coral turns geographic vector data into simplified planar geometry
// and renders it as SVG documents.
//
// The usual pipeline is: read rings of geographic points, project them onto
// the plane with one of the proj package projections, thin them out with
// Simplify at the output pixel scale, and accumulate the results on a Canvas
// that is finally written to disk with Save.
package coral

import "github.com/golang/geo/s2"

// Point is a position on the projected plane, in the projection's linear
// units (usually meters). +X points east and +Y points north.
type Point struct {
	X, Y float64
}

// GeoPoint is a geographic position in degrees.
// Longitude is in [-180, 180] and latitude in [-90, 90].
type GeoPoint struct {
	Lon, Lat float64
}

// LatLng converts the point to an s2.LatLng.
func (g GeoPoint) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(g.Lat, g.Lon)
}

// GeoPointFromLatLng converts an s2.LatLng to a GeoPoint.
func GeoPointFromLatLng(ll s2.LatLng) GeoPoint {
	return GeoPoint{Lon: ll.Lng.Degrees(), Lat: ll.Lat.Degrees()}
}
