// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package coral

import "errors"

// ErrInvalidArgument reports an argument outside a function's contract, such
// as a non-positive simplification tolerance, a polygon with fewer than two
// points or a color component outside [0, 1]. Use errors.Is to test for it.
var ErrInvalidArgument = errors.New("coral: invalid argument")
