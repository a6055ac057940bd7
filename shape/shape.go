// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package shape loads geographic entities from ESRI shapefiles.
//
// Only polygon and polyline shapes carry geometry that the renderer can
// draw, so other shape types are skipped. Each shapefile record becomes one
// Record whose rings follow the part structure of the source shape.
package shape

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"github.com/lecram/coral"
)

// Record is a named group of rings read from one shapefile record.
type Record struct {
	Name  string
	Rings [][]coral.GeoPoint
}

// NameFunc derives an entity name from a record's attribute values, given
// in field order. Returning an empty string drops the record.
type NameFunc func(attrs []string) string

// FieldNames returns the attribute field names of a shapefile.
func FieldNames(path string) ([]string, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shape: open %s: %w", path, err)
	}
	defer r.Close()
	fields := r.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return names, nil
}

// NameField returns a NameFunc that picks the attribute in the named field,
// resolved case-insensitively against the shapefile's field names.
func NameField(path, field string) (NameFunc, error) {
	names, err := FieldNames(path)
	if err != nil {
		return nil, err
	}
	for i, n := range names {
		if strings.EqualFold(n, field) {
			idx := i
			return func(attrs []string) string {
				if idx >= len(attrs) {
					return ""
				}
				return attrs[idx]
			}, nil
		}
	}
	return nil, fmt.Errorf("shape: %s has no field %q (fields: %s)",
		path, field, strings.Join(names, ", "))
}

func rings(parts []int32, points []shp.Point) [][]coral.GeoPoint {
	out := make([][]coral.GeoPoint, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		ring := make([]coral.GeoPoint, 0, end-start)
		for _, p := range points[start:end] {
			ring = append(ring, coral.GeoPoint{Lon: p.X, Lat: p.Y})
		}
		out[i] = ring
	}
	return out
}

// Read loads all polygon and polyline records from a shapefile, naming each
// one through name. Records for which name returns an empty string are
// skipped.
func Read(path string, name NameFunc) ([]Record, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shape: open %s: %w", path, err)
	}
	defer r.Close()

	fields := r.Fields()
	var records []Record
	for r.Next() {
		row, s := r.Shape()
		attrs := make([]string, len(fields))
		for i := range fields {
			attrs[i] = r.ReadAttribute(row, i)
		}
		n := name(attrs)
		if n == "" {
			continue
		}
		switch g := s.(type) {
		case *shp.Polygon:
			records = append(records, Record{Name: n, Rings: rings(g.Parts, g.Points)})
		case *shp.PolyLine:
			records = append(records, Record{Name: n, Rings: rings(g.Parts, g.Points)})
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("shape: read %s: %w", path, err)
	}
	return records, nil
}
