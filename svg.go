// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package coral

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo/float"
)

// Number of decimal places for coordinates in the output document.
const svgDecimals = 6

// Strokes are sized relative to the frame so they stay visible at any map
// scale: one thousandth of the bounding box diagonal.
const strokeFraction = 1e-3

// Render serializes the canvas to an SVG document. It is a pure function of
// the canvas state: the same state always yields byte-identical output. The
// current bounding box becomes the document viewport; planar +Y points up,
// so y coordinates are flipped against the box's top edge (SVG y grows
// downward). Rendering an empty canvas (no geometry and no bounding box
// override) is an error.
func (c *Canvas) Render() ([]byte, error) {
	if !c.hasGeom && c.override == nil {
		return nil, fmt.Errorf("%w: cannot render an empty canvas", ErrInvalidArgument)
	}
	b := c.BBox()
	w, h := b.Width(), b.Height()
	strokeWidth := b.Diagonal() * strokeFraction
	if strokeWidth == 0 {
		strokeWidth = 1
	}

	var buf bytes.Buffer
	doc := svg.New(&buf)
	doc.Decimals = svgDecimals
	doc.Startview(w, h, 0, 0, w, h)
	if c.background != nil {
		doc.Rect(0, 0, w, h, "fill:"+c.background.rgb())
	}
	for _, p := range c.paths {
		style := p.style.svg(strokeWidth)
		switch p.kind {
		case circlePath:
			doc.Circle(p.center.X-b.X0, b.Y1-p.center.Y, p.radius, style)
		default:
			xs := make([]float64, len(p.points))
			ys := make([]float64, len(p.points))
			for i, pt := range p.points {
				xs[i] = pt.X - b.X0
				ys[i] = b.Y1 - pt.Y
			}
			if p.kind == polylinePath {
				doc.Polyline(xs, ys, style)
			} else {
				doc.Polygon(xs, ys, style)
			}
		}
	}
	doc.End()
	return buf.Bytes(), nil
}

// svg renders the style as an SVG style attribute value. A path with
// neither fill nor stroke falls back to a black hairline outline.
func (s pathStyle) svg(strokeWidth float64) string {
	fill, stroke := s.fill, s.stroke
	if fill == nil && stroke == nil {
		stroke = &Color{}
	}
	var parts []string
	if fill != nil {
		parts = append(parts, "fill:"+fill.rgb())
	} else {
		parts = append(parts, "fill:none")
	}
	if stroke != nil {
		parts = append(parts, "stroke:"+stroke.rgb(),
			fmt.Sprintf("stroke-width:%.*f", svgDecimals, strokeWidth))
	} else {
		parts = append(parts, "stroke:none")
	}
	return strings.Join(parts, ";")
}

// Save writes the rendered document to path, replacing any existing file.
// The document is rendered in memory and moved into place with a rename, so
// a failed save never leaves a partial file behind. Saving twice without
// mutating the canvas produces byte-identical files.
func (c *Canvas) Save(path string) error {
	data, err := c.Render()
	if err != nil {
		return err
	}
	dir, base := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, base+".tmp*")
	if err != nil {
		return fmt.Errorf("coral: save %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("coral: save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("coral: save %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("coral: save %s: %w", path, err)
	}
	return nil
}
