// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package shape

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	shp "github.com/jonas-p/go-shp"

	"github.com/lecram/coral"
)

// writeTestShapefile creates a two-record polygon shapefile with NAME and
// CODE attributes and returns its path.
func writeTestShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.shp")
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatalf("shp.Create(%q) = %v", path, err)
	}
	w.SetFields([]shp.Field{
		shp.StringField("NAME", 32),
		shp.StringField("CODE", 8),
	})

	square := [][]shp.Point{{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 0},
	}}
	twoParts := [][]shp.Point{
		{{X: 10, Y: 10}, {X: 12, Y: 10}, {X: 11, Y: 12}, {X: 10, Y: 10}},
		{{X: 20, Y: 20}, {X: 22, Y: 20}, {X: 21, Y: 22}, {X: 20, Y: 20}},
	}

	w.Write((*shp.Polygon)(shp.NewPolyLine(square)))
	w.WriteAttribute(0, 0, "Square")
	w.WriteAttribute(0, 1, "SQ")

	w.Write((*shp.Polygon)(shp.NewPolyLine(twoParts)))
	w.WriteAttribute(1, 0, "Islands")
	w.WriteAttribute(1, 1, "IS")

	w.Close()
	return path
}

func TestFieldNames(t *testing.T) {
	path := writeTestShapefile(t)
	names, err := FieldNames(path)
	if err != nil {
		t.Fatalf("FieldNames(%q) = %v", path, err)
	}
	if diff := cmp.Diff([]string{"NAME", "CODE"}, names); diff != "" {
		t.Errorf("FieldNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestRead(t *testing.T) {
	path := writeTestShapefile(t)
	name, err := NameField(path, "name")
	if err != nil {
		t.Fatalf("NameField(%q, name) = %v", path, err)
	}
	records, err := Read(path, name)
	if err != nil {
		t.Fatalf("Read(%q) = %v", path, err)
	}

	want := []Record{
		{
			Name: "Square",
			Rings: [][]coral.GeoPoint{{
				{Lon: 0, Lat: 0}, {Lon: 4, Lat: 0}, {Lon: 4, Lat: 4},
				{Lon: 0, Lat: 4}, {Lon: 0, Lat: 0},
			}},
		},
		{
			Name: "Islands",
			Rings: [][]coral.GeoPoint{
				{{Lon: 10, Lat: 10}, {Lon: 12, Lat: 10}, {Lon: 11, Lat: 12}, {Lon: 10, Lat: 10}},
				{{Lon: 20, Lat: 20}, {Lon: 22, Lat: 20}, {Lon: 21, Lat: 22}, {Lon: 20, Lat: 20}},
			},
		},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadSkipsUnnamed(t *testing.T) {
	path := writeTestShapefile(t)
	records, err := Read(path, func(attrs []string) string {
		if attrs[1] == "SQ" {
			return ""
		}
		return attrs[0]
	})
	if err != nil {
		t.Fatalf("Read(%q) = %v", path, err)
	}
	if len(records) != 1 || records[0].Name != "Islands" {
		t.Errorf("Read() = %+v, want only the Islands record", records)
	}
}

func TestNameFieldUnknown(t *testing.T) {
	path := writeTestShapefile(t)
	if _, err := NameField(path, "POPULATION"); err == nil {
		t.Error("NameField(POPULATION) succeeded, want error")
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.shp"), func([]string) string { return "x" }); err == nil {
		t.Error("Read(missing) succeeded, want error")
	}
	if _, err := FieldNames(filepath.Join(t.TempDir(), "missing.shp")); err == nil {
		t.Error("FieldNames(missing) succeeded, want error")
	}
}
