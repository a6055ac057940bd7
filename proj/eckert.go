// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package proj

import (
	"fmt"
	"math"
)

// Eckert IV constants.
var (
	eckertCX = 2 / math.Sqrt(4*math.Pi+math.Pi*math.Pi)
	eckertCY = 2 * math.Sqrt(math.Pi/(4+math.Pi))
	eckertC  = 2 + math.Pi/2
)

// EckertIV is the Eckert IV pseudocylindrical equal-area projection of the
// spherical Earth. The whole globe maps to a finite ellipse-capped figure.
type EckertIV struct {
	sphere
}

// NewEckertIV returns an Eckert IV projection. Accepted options:
// WithOrigin, WithRadius.
func NewEckertIV(opts ...Option) (*EckertIV, error) {
	s, err := newSphere(opts)
	if err != nil {
		return nil, err
	}
	return &EckertIV{sphere: s}, nil
}

func (p *EckertIV) Geo2Rect(lon, lat float64) (float64, float64, error) {
	rlon, rlat := radians(lon), radians(lat)
	sinlat := math.Sin(rlat)

	// Solve theta + sin(theta)cos(theta) + 2sin(theta) = C sin(lat)
	// by Newton iteration.
	const (
		tol     = 1e-6
		maxIter = 50
	)
	theta := rlat / 2
	if sinlat >= 1 {
		theta = math.Pi / 2
	} else if sinlat <= -1 {
		theta = -math.Pi / 2
	} else {
		for iter := 0; iter < maxIter; iter++ {
			num := theta + math.Sin(theta)*math.Cos(theta) + 2*math.Sin(theta) - eckertC*sinlat
			den := 2 * math.Cos(theta) * (1 + math.Cos(theta))
			delta := -num / den
			theta += delta
			if math.Abs(delta) <= tol {
				break
			}
		}
	}
	costheta := math.Cos(theta)
	sintheta := math.Sin(theta)

	x := eckertCX * p.r * corAngle(rlon-p.lon0) * (1 + costheta)
	y := eckertCY * p.r * sintheta
	return x, y, nil
}

func (p *EckertIV) Rect2Geo(x, y float64) (float64, float64, error) {
	arg := y / (eckertCY * p.r)
	if arg < -1 || arg > 1 {
		return 0, 0, fmt.Errorf("%w: point (%v, %v) is outside the projected globe", ErrOutsideDomain, x, y)
	}
	theta := math.Asin(arg)
	costheta := math.Cos(theta)
	sintheta := math.Sin(theta)
	lon := p.lon0 + x/(eckertCX*p.r*(1+costheta))
	sinlat := (theta + sintheta*costheta + 2*sintheta) / eckertC
	if sinlat < -1 || sinlat > 1 {
		return 0, 0, fmt.Errorf("%w: point (%v, %v) is outside the projected globe", ErrOutsideDomain, x, y)
	}
	return degrees(corAngle(lon)), degrees(math.Asin(sinlat)), nil
}
