// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package coral

import (
	"fmt"
	"math"
)

// Simplify thins out an ordered sequence of planar points for rendering at a
// given resolution. A point is retained only if it lies strictly farther
// than tolerance (Euclidean distance, same linear units as the points) from
// the most recently retained point; the first and last input points are
// always retained. This is a single left-to-right pass, so it runs in linear
// time and never reorders points. The distance is measured to the last
// retained point, not perpendicularly to a retained segment, so every
// dropped point lies within tolerance of the retained path.
//
// Tolerance is typically the size of one output pixel in projected units.
// A non-positive tolerance is an error. Inputs of zero or one points are
// returned unchanged.
func Simplify(points []Point, tolerance float64) ([]Point, error) {
	if !(tolerance > 0) {
		return nil, fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidArgument, tolerance)
	}
	if len(points) <= 1 {
		return points, nil
	}
	kept := make([]Point, 1, len(points))
	kept[0] = points[0]
	last := points[0]
	for _, p := range points[1 : len(points)-1] {
		if math.Hypot(p.X-last.X, p.Y-last.Y) > tolerance {
			kept = append(kept, p)
			last = p
		}
	}
	return append(kept, points[len(points)-1]), nil
}
