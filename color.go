// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package coral

import (
	"fmt"
	"math"
)

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

func (c Color) validate() error {
	for _, v := range []float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: color component %v outside [0, 1]", ErrInvalidArgument, v)
		}
	}
	return nil
}

// rgb renders the color as an SVG rgb() value with 8-bit channels.
func (c Color) rgb() string {
	return fmt.Sprintf("rgb(%d,%d,%d)",
		int(math.Round(c.R*255)),
		int(math.Round(c.G*255)),
		int(math.Round(c.B*255)))
}
