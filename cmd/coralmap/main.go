// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Command coralmap renders the polygons of an ESRI shapefile as an SVG map.
//
//	coralmap --projection cea --origin -55,0 --parallels -5,-30 brazil.shp brazil.svg
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lecram/coral"
	"github.com/lecram/coral/frame"
	"github.com/lecram/coral/proj"
	"github.com/lecram/coral/shape"
)

var log = logrus.StandardLogger()

var (
	projName   string
	origin     []float64
	parallels  []float64
	tolerance  float64
	frameIn    string
	frameOut   string
	nameField  string
	fillHex    string
	strokeHex  string
	bgHex      string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "coralmap input.shp output.svg",
	Short: "Render a shapefile to an SVG map",
	Long: `coralmap projects the polygon and polyline records of a shapefile
onto a plane, simplifies them and writes the result as an SVG document.

The projection is chosen with --projection, or a previously saved frame
can be reused with --frame so that layers rendered separately line up.`,
	Args:          cobra.ExactArgs(2),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&projName, "projection", "p", "eckert4",
		"projection: mercator, emercator, tmercator, omercator, cea, eckert4, stereographic, aeqd, laea")
	f.Float64SliceVar(&origin, "origin", []float64{0, 0}, "projection origin as lon,lat in degrees")
	f.Float64SliceVar(&parallels, "parallels", []float64{30, 60}, "standard parallels for cea, in degrees")
	f.Float64VarP(&tolerance, "tolerance", "t", 1000, "simplification tolerance in projected meters")
	f.StringVar(&frameIn, "frame", "", "load projection and bounding box from a frame file")
	f.StringVar(&frameOut, "save-frame", "", "save the resulting frame to a file")
	f.StringVar(&nameField, "name-field", "NAME", "attribute field holding entity names")
	f.StringVar(&fillHex, "fill", "#c0d8b0", "polygon fill color as #rrggbb, or none")
	f.StringVar(&strokeHex, "stroke", "#000000", "polygon stroke color as #rrggbb, or none")
	f.StringVar(&bgHex, "background", "", "background color as #rrggbb (default transparent)")
	f.BoolVarP(&verbose, "verbose", "v", false, "log per-entity progress")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// parseColor turns "#rrggbb" into a color, "" and "none" into nil.
func parseColor(s string) (*coral.Color, error) {
	if s == "" || s == "none" {
		return nil, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return nil, fmt.Errorf("invalid color %q, want #rrggbb", s)
	}
	var c [3]float64
	for i := range c {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %v", s, err)
		}
		c[i] = float64(v) / 255
	}
	return &coral.Color{R: c[0], G: c[1], B: c[2]}, nil
}

func buildProjection() (proj.Projection, error) {
	if len(origin) != 2 {
		return nil, fmt.Errorf("--origin wants lon,lat, got %v", origin)
	}
	opts := []proj.Option{proj.WithOrigin(origin[0], origin[1])}
	switch strings.ToLower(projName) {
	case "mercator":
		return proj.NewMercator(opts...)
	case "emercator":
		return proj.NewEllipsoidalMercator(opts...)
	case "tmercator":
		return proj.NewTransverseMercator(opts...)
	case "omercator":
		return proj.NewObliqueMercator(opts...)
	case "cea":
		if len(parallels) != 2 {
			return nil, fmt.Errorf("--parallels wants lat1,lat2, got %v", parallels)
		}
		return proj.NewConicEqualArea(parallels[0], parallels[1], opts...)
	case "eckert4":
		return proj.NewEckertIV(opts...)
	case "stereographic":
		return proj.NewStereographic(opts...)
	case "aeqd":
		return proj.NewAzimuthalEquidistant(opts...)
	case "laea":
		return proj.NewAzimuthalEqualArea(opts...)
	default:
		return nil, fmt.Errorf("unknown projection %q", projName)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	input, output := args[0], args[1]

	fill, err := parseColor(fillHex)
	if err != nil {
		return err
	}
	stroke, err := parseColor(strokeHex)
	if err != nil {
		return err
	}
	background, err := parseColor(bgHex)
	if err != nil {
		return err
	}

	var fr *frame.Frame
	if frameIn != "" {
		fr, err = frame.Load(frameIn)
		if err != nil {
			return err
		}
		log.WithField("frame", frameIn).Info("loaded frame")
	} else {
		p, err := buildProjection()
		if err != nil {
			return err
		}
		fr = &frame.Frame{Projection: p}
	}

	name, err := shape.NameField(input, nameField)
	if err != nil {
		return err
	}
	records, err := shape.Read(input, name)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"input":    input,
		"entities": len(records),
	}).Info("loaded shapefile")

	var copts []coral.CanvasOption
	if background != nil {
		copts = append(copts, coral.WithBackground(*background))
	}
	canvas, err := coral.NewCanvas(copts...)
	if err != nil {
		return err
	}
	if frameIn != "" {
		canvas.SetBBox(fr.Bounding)
	}

	var popts []coral.PathOption
	if fill != nil {
		popts = append(popts, coral.WithFill(*fill))
	}
	if stroke != nil {
		popts = append(popts, coral.WithStroke(*stroke))
	}

	drawn, skipped := 0, 0
	for _, rec := range records {
		if frameIn != "" {
			visible, err := fr.Visible(rec.Rings[0])
			if err == nil && !visible {
				skipped++
				continue
			}
		}
		for _, ring := range rec.Rings {
			pts, err := fr.Planify(tolerance, ring)
			if err != nil {
				log.WithFields(logrus.Fields{
					"entity": rec.Name,
					"error":  err,
				}).Warn("cannot project ring, skipping")
				continue
			}
			if len(pts) < 2 {
				continue
			}
			if err := canvas.AddPolygon(pts, popts...); err != nil {
				return fmt.Errorf("draw %s: %w", rec.Name, err)
			}
		}
		drawn++
		log.WithField("entity", rec.Name).Debug("drawn")
	}
	log.WithFields(logrus.Fields{
		"drawn":   drawn,
		"skipped": skipped,
	}).Info("projected entities")

	if err := canvas.Save(output); err != nil {
		return err
	}
	log.WithField("output", output).Info("wrote SVG")

	if frameOut != "" {
		fr.Bounding = canvas.BBox()
		if err := fr.Save(frameOut); err != nil {
			return err
		}
		log.WithField("frame", frameOut).Info("saved frame")
	}
	return nil
}
