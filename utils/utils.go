// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides helpers for generating geographic test data.

package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/lecram/coral"
)

// GenerateRandomGeoPoints generates random geographic points, uniform in
// longitude and latitude. The seed parameter ensures reproducibility.
func GenerateRandomGeoPoints(cnt int, seed int64) []coral.GeoPoint {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]coral.GeoPoint, cnt)

	for i := 0; i < cnt; i++ {
		ll := s2.LatLng{
			Lat: s1.Angle((random.Float64() - 0.5) * math.Pi),
			Lng: s1.Angle((random.Float64()*2 - 1) * math.Pi),
		}
		points[i] = coral.GeoPointFromLatLng(ll)
	}

	return points
}

// GenerateRandomRing generates a closed ring of cnt random points around a
// center, with angular radius up to maxRadius degrees. The vertices are
// ordered by azimuth, so the ring does not self-intersect. The center must
// be far enough from the poles that the ring stays within valid latitudes.
func GenerateRandomRing(center coral.GeoPoint, cnt int, maxRadius float64, seed int64) []coral.GeoPoint {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	ring := make([]coral.GeoPoint, cnt)

	for i := 0; i < cnt; i++ {
		azimuth := 2 * math.Pi * float64(i) / float64(cnt)
		radius := maxRadius * (0.5 + random.Float64()/2)
		lat := center.Lat + radius*math.Cos(azimuth)
		lon := center.Lon + radius*math.Sin(azimuth)/math.Cos(lat*math.Pi/180)
		ring[i] = coral.GeoPoint{Lon: lon, Lat: lat}
	}

	return ring
}
