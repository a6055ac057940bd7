// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package pfile reads and writes P files (format version 0), a compact
// binary container for named geographic entities.
//
// A P file stores, for each entity, a name and one or more rings of
// (longitude, latitude) points. Coordinates are quantized: each entity
// carries a bounding box snapped to a global 16-bit grid over
// [-180, 180] x [-90, 90], and every point is stored as a pair of unsigned
// integers of 1, 2, 4 or 8 bytes interpolating that box. Smaller sizes trade
// positional accuracy for space; the Writer reports the error introduced for
// every point so callers can judge whether a size is acceptable.
//
// Layout: the bytes "PF", a version byte (0), the coordinate size byte, the
// total point count, the entity count, then per entity its NUL-terminated
// ASCII name, ring count, quantized bounding box (four big-endian uint16)
// and per-ring point counts, followed by all point data in file order.
// Unbounded counts are encoded as base-128 varints, most significant group
// first, with the high bit marking continuation.
package pfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"

	"github.com/lecram/coral"
	"github.com/lecram/coral/proj"
)

// ErrFormat reports a malformed or truncated P file.
var ErrFormat = errors.New("pfile: invalid P file")

const (
	version = 0
	gridMax = 1<<16 - 1 // entity bbox grid resolution
	lonSpan = 360.0
	latSpan = 180.0
)

func coordMax(size int) (uint64, error) {
	switch size {
	case 1, 2, 4, 8:
		return 1<<(8*size) - 1, nil
	default:
		return 0, fmt.Errorf("%w: coordinate size must be 1, 2, 4 or 8, got %d", coral.ErrInvalidArgument, size)
	}
}

// appendVLV appends v as a base-128 varint, most significant group first.
func appendVLV(b []byte, v uint64) []byte {
	var groups [10]byte
	n := 0
	for {
		groups[n] = byte(v & 0x7f)
		n++
		v >>= 7
		if v == 0 {
			break
		}
	}
	for i := n - 1; i > 0; i-- {
		b = append(b, groups[i]|0x80)
	}
	return append(b, groups[0])
}

func readVLV(data []byte, pos int) (uint64, int, error) {
	var v uint64
	// A uint64 fits in 10 base-128 groups; anything longer would silently
	// shift bits out.
	for n := 0; n < 10; n++ {
		if pos >= len(data) {
			return 0, pos, fmt.Errorf("%w: truncated varint", ErrFormat)
		}
		d := data[pos]
		pos++
		v = v<<7 | uint64(d&0x7f)
		if d&0x80 == 0 {
			return v, pos, nil
		}
	}
	return 0, pos, fmt.Errorf("%w: oversized varint", ErrFormat)
}

type entity struct {
	name     string
	partLens []int
	bbox     [4]uint16 // x0, x1, y0, y1 on the global grid
}

// Writer accumulates entities and writes them out as a single P file on
// Close. It buffers everything in memory; nothing touches the disk before
// Close succeeds.
type Writer struct {
	path     string
	size     int
	umax     uint64
	entities []entity
	data     []byte
	errs     []float64
	closed   bool
}

// NewWriter returns a Writer that will store coordinates with the given
// size in bytes (1, 2, 4 or 8).
func NewWriter(path string, size int) (*Writer, error) {
	umax, err := coordMax(size)
	if err != nil {
		return nil, err
	}
	return &Writer{path: path, size: size, umax: umax}, nil
}

// quantizeBox snaps an entity's geographic bounding box outward to the
// global 16-bit grid and returns both the grid cells and the snapped box in
// degrees.
func quantizeBox(bb [4]float64) (q [4]uint16, snapped [4]float64) {
	x0 := math.Floor((bb[0] + 180) * gridMax / lonSpan)
	x1 := math.Ceil((bb[1] + 180) * gridMax / lonSpan)
	y0 := math.Floor((bb[2] + 90) * gridMax / latSpan)
	y1 := math.Ceil((bb[3] + 90) * gridMax / latSpan)
	// A degenerate span cannot interpolate points; widen it by one cell.
	if x1 == x0 {
		if x1 < gridMax {
			x1++
		} else {
			x0--
		}
	}
	if y1 == y0 {
		if y1 < gridMax {
			y1++
		} else {
			y0--
		}
	}
	q = [4]uint16{uint16(x0), uint16(x1), uint16(y0), uint16(y1)}
	snapped = dequantizeBox(q)
	return q, snapped
}

// quantize maps v in [lo, hi] onto the integer grid [0, umax]. The result
// is clamped: for umax = 1<<64-1, float64(umax) rounds up to 2^64, so a
// point exactly on the box maximum would otherwise overflow the uint64
// conversion.
func quantize(v, lo, hi float64, umax uint64) uint64 {
	u := math.Round((v - lo) * float64(umax) / (hi - lo))
	if u >= float64(umax) {
		return umax
	}
	if u <= 0 {
		return 0
	}
	return uint64(u)
}

func dequantizeBox(q [4]uint16) [4]float64 {
	return [4]float64{
		float64(q[0])*lonSpan/gridMax - 180,
		float64(q[1])*lonSpan/gridMax - 180,
		float64(q[2])*latSpan/gridMax - 90,
		float64(q[3])*latSpan/gridMax - 90,
	}
}

func (w *Writer) appendCoord(u uint64) {
	switch w.size {
	case 1:
		w.data = append(w.data, byte(u))
	case 2:
		w.data = binary.BigEndian.AppendUint16(w.data, uint16(u))
	case 4:
		w.data = binary.BigEndian.AppendUint32(w.data, uint32(u))
	default:
		w.data = binary.BigEndian.AppendUint64(w.data, u)
	}
}

// Write appends an entity. Longitudes are wrapped into [-180, 180];
// latitudes outside [-90, 90] are rejected. A ring whose last point repeats
// its first is stored without the repetition. Names must be non-empty ASCII
// without NUL bytes.
func (w *Writer) Write(name string, rings [][]coral.GeoPoint) error {
	if w.closed {
		return fmt.Errorf("%w: writer already closed", coral.ErrInvalidArgument)
	}
	if name == "" {
		return fmt.Errorf("%w: empty entity name", coral.ErrInvalidArgument)
	}
	for _, r := range name {
		if r == 0 || r > 127 {
			return fmt.Errorf("%w: entity name %q is not ASCII", coral.ErrInvalidArgument, name)
		}
	}
	if len(rings) == 0 {
		return fmt.Errorf("%w: entity %q has no rings", coral.ErrInvalidArgument, name)
	}

	clean := make([][]coral.GeoPoint, len(rings))
	for i, ring := range rings {
		if len(ring) == 0 {
			return fmt.Errorf("%w: entity %q has an empty ring", coral.ErrInvalidArgument, name)
		}
		cr := make([]coral.GeoPoint, 0, len(ring))
		for _, g := range ring {
			lon := g.Lon
			for lon < -180 {
				lon += 360
			}
			for lon > 180 {
				lon -= 360
			}
			if g.Lat < -90 || g.Lat > 90 {
				return fmt.Errorf("%w: entity %q has latitude %v outside [-90, 90]",
					coral.ErrInvalidArgument, name, g.Lat)
			}
			cr = append(cr, coral.GeoPoint{Lon: lon, Lat: g.Lat})
		}
		if len(cr) > 1 && cr[0] == cr[len(cr)-1] {
			cr = cr[:len(cr)-1]
		}
		clean[i] = cr
	}

	bb := [4]float64{clean[0][0].Lon, clean[0][0].Lon, clean[0][0].Lat, clean[0][0].Lat}
	for _, ring := range clean {
		for _, g := range ring {
			bb[0] = math.Min(bb[0], g.Lon)
			bb[1] = math.Max(bb[1], g.Lon)
			bb[2] = math.Min(bb[2], g.Lat)
			bb[3] = math.Max(bb[3], g.Lat)
		}
	}
	q, snapped := quantizeBox(bb)
	x0, x1, y0, y1 := snapped[0], snapped[1], snapped[2], snapped[3]

	ent := entity{name: name, bbox: q, partLens: make([]int, len(clean))}
	for i, ring := range clean {
		ent.partLens[i] = len(ring)
		for _, g := range ring {
			ulon := quantize(g.Lon, x0, x1, w.umax)
			ulat := quantize(g.Lat, y0, y1, w.umax)
			w.appendCoord(ulon)
			w.appendCoord(ulat)
			lon2 := x0 + float64(ulon)*(x1-x0)/float64(w.umax)
			lat2 := y0 + float64(ulat)*(y1-y0)/float64(w.umax)
			w.errs = append(w.errs, proj.Haversine(g.Lon, g.Lat, lon2, lat2))
		}
	}
	w.entities = append(w.entities, ent)
	return nil
}

// Close assembles and writes the file, replacing any existing file at the
// writer's path without ever leaving a partial file behind. It returns the
// quantization error in meters for every point written, in file order.
// The writer cannot be used afterwards.
func (w *Writer) Close() ([]float64, error) {
	if w.closed {
		return nil, fmt.Errorf("%w: writer already closed", coral.ErrInvalidArgument)
	}
	w.closed = true

	var nrows uint64
	for _, ent := range w.entities {
		for _, n := range ent.partLens {
			nrows += uint64(n)
		}
	}

	buf := []byte{'P', 'F', version, byte(w.size)}
	buf = appendVLV(buf, nrows)
	buf = appendVLV(buf, uint64(len(w.entities)))
	for _, ent := range w.entities {
		buf = append(buf, ent.name...)
		buf = append(buf, 0)
		buf = appendVLV(buf, uint64(len(ent.partLens)))
		for _, v := range ent.bbox {
			buf = binary.BigEndian.AppendUint16(buf, v)
		}
		for _, n := range ent.partLens {
			buf = appendVLV(buf, uint64(n))
		}
	}
	buf = append(buf, w.data...)

	dir, base := filepath.Split(w.path)
	tmp, err := os.CreateTemp(dir, base+".tmp*")
	if err != nil {
		return nil, fmt.Errorf("pfile: write %s: %w", w.path, err)
	}
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("pfile: write %s: %w", w.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("pfile: write %s: %w", w.path, err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("pfile: write %s: %w", w.path, err)
	}
	return w.errs, nil
}

// Stats summarizes quantization errors reported by Close as their mean and
// population standard deviation, both in meters.
func Stats(errs []float64) (mean, stddev float64) {
	if len(errs) == 0 {
		return 0, 0
	}
	mean = stat.Mean(errs, nil)
	stddev = math.Sqrt(stat.PopVariance(errs, nil))
	return mean, stddev
}

// Reader provides access to the entities of a P file. The whole file is
// held in memory, so entities can be read in any order.
type Reader struct {
	size     int
	umax     uint64
	entities []entity
	index    map[string]int
	offsets  []int // byte offset of each entity's point data
	data     []byte
}

// Open reads a P file into memory.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) < 4 || data[0] != 'P' || data[1] != 'F' {
		return nil, fmt.Errorf("%w: bad signature", ErrFormat)
	}
	if data[2] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, data[2])
	}
	size := int(data[3])
	umax, err := coordMax(size)
	if err != nil {
		return nil, fmt.Errorf("%w: bad coordinate size %d", ErrFormat, size)
	}

	pos := 4
	nrows, pos, err := readVLV(data, pos)
	if err != nil {
		return nil, err
	}
	nentities, pos, err := readVLV(data, pos)
	if err != nil {
		return nil, err
	}
	// Each entity occupies at least one index byte, so a count beyond the
	// remaining bytes cannot be honest. Checked before allocating.
	if nentities > uint64(len(data)-pos) {
		return nil, fmt.Errorf("%w: %d entities in %d remaining bytes", ErrFormat, nentities, len(data)-pos)
	}

	r := &Reader{
		size:     size,
		umax:     umax,
		entities: make([]entity, 0, nentities),
		index:    make(map[string]int, nentities),
		offsets:  make([]int, 0, nentities),
		data:     data,
	}
	offset := 0
	var total uint64
	for i := uint64(0); i < nentities; i++ {
		var ent entity
		end := pos
		for end < len(data) && data[end] != 0 {
			end++
		}
		if end == len(data) {
			return nil, fmt.Errorf("%w: unterminated entity name", ErrFormat)
		}
		ent.name = string(data[pos:end])
		pos = end + 1
		nparts, next, err := readVLV(data, pos)
		if err != nil {
			return nil, err
		}
		pos = next
		// Each part length occupies at least one index byte; a count
		// beyond the remaining bytes cannot be honest. Checked before
		// allocating.
		if nparts > uint64(len(data)-pos) {
			return nil, fmt.Errorf("%w: %d parts in %d remaining bytes", ErrFormat, nparts, len(data)-pos)
		}
		if pos+8 > len(data) {
			return nil, fmt.Errorf("%w: truncated entity index", ErrFormat)
		}
		for j := range ent.bbox {
			ent.bbox[j] = binary.BigEndian.Uint16(data[pos : pos+2])
			pos += 2
		}
		ent.partLens = make([]int, nparts)
		for j := range ent.partLens {
			var n uint64
			n, pos, err = readVLV(data, pos)
			if err != nil {
				return nil, err
			}
			ent.partLens[j] = int(n)
			total += n
		}
		r.index[ent.name] = len(r.entities)
		r.entities = append(r.entities, ent)
		r.offsets = append(r.offsets, offset)
		offset += sum(ent.partLens) * size * 2
	}
	if total != nrows {
		return nil, fmt.Errorf("%w: index lists %d points, header says %d", ErrFormat, total, nrows)
	}
	if pos+offset > len(data) {
		return nil, fmt.Errorf("%w: truncated point data", ErrFormat)
	}
	r.data = data[pos:]
	return r, nil
}

func sum(ns []int) int {
	t := 0
	for _, n := range ns {
		t += n
	}
	return t
}

// Len returns the number of entities in the file.
func (r *Reader) Len() int {
	return len(r.entities)
}

// Names returns the entity names in file order.
func (r *Reader) Names() []string {
	names := make([]string, len(r.entities))
	for i, ent := range r.entities {
		names[i] = ent.name
	}
	return names
}

func (r *Reader) coord(pos int) uint64 {
	switch r.size {
	case 1:
		return uint64(r.data[pos])
	case 2:
		return uint64(binary.BigEndian.Uint16(r.data[pos : pos+2]))
	case 4:
		return uint64(binary.BigEndian.Uint32(r.data[pos : pos+4]))
	default:
		return binary.BigEndian.Uint64(r.data[pos : pos+8])
	}
}

// Read returns the rings of the i-th entity.
func (r *Reader) Read(i int) ([][]coral.GeoPoint, error) {
	if i < 0 || i >= len(r.entities) {
		return nil, fmt.Errorf("%w: entity index %d out of range", coral.ErrInvalidArgument, i)
	}
	ent := r.entities[i]
	bb := dequantizeBox(ent.bbox)
	x0, x1, y0, y1 := bb[0], bb[1], bb[2], bb[3]
	pos := r.offsets[i]
	rings := make([][]coral.GeoPoint, len(ent.partLens))
	for j, n := range ent.partLens {
		ring := make([]coral.GeoPoint, n)
		for k := range ring {
			ulon := r.coord(pos)
			pos += r.size
			ulat := r.coord(pos)
			pos += r.size
			ring[k] = coral.GeoPoint{
				Lon: x0 + float64(ulon)*(x1-x0)/float64(r.umax),
				Lat: y0 + float64(ulat)*(y1-y0)/float64(r.umax),
			}
		}
		rings[j] = ring
	}
	return rings, nil
}

// Get returns the rings of the entity with the given name.
func (r *Reader) Get(name string) ([][]coral.GeoPoint, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: no entity named %q", coral.ErrInvalidArgument, name)
	}
	return r.Read(i)
}
