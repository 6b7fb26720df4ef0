// Package synthetic generates deterministic region features from layered
// simplex noise.
//
// It is the stand-in for real data loaders in examples, tests, and
// benchmarks: the same seed and cell always produce the same features, and
// neighboring cells vary smoothly, so patch-level assertions stay stable
// across runs without shipping fixture files.
package synthetic

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/hupe1980/hexpatch/cell"
	"github.com/hupe1980/hexpatch/neighborhood"
	"github.com/hupe1980/hexpatch/regions"
)

// Features is a synthetic payload row: pseudo-terrain fields in [0, 1].
type Features struct {
	Elevation   float64 `json:"elevation"`
	Moisture    float64 `json:"moisture"`
	Temperature float64 `json:"temperature"`
}

// Generator produces Features deterministically from a seed. Safe for
// concurrent use.
type Generator struct {
	elevation   opensimplex.Noise
	moisture    opensimplex.Noise
	temperature opensimplex.Noise
}

// NewGenerator creates a Generator with three independent noise layers
// derived from the seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		elevation:   opensimplex.NewNormalized(seed),
		moisture:    opensimplex.NewNormalized(seed + 1),
		temperature: opensimplex.NewNormalized(seed + 2),
	}
}

// Row samples the features of a single cell.
//
// Axial coordinates are mapped to the cartesian plane (x = i + j/2,
// y = j·sqrt(3)/2) before sampling, so grid neighbors are also noise
// neighbors and the fields vary smoothly across the hex plane.
func (g *Generator) Row(id cell.ID) Features {
	i, j := id.Axial()
	x := float64(i) + float64(j)*0.5
	y := float64(j) * math.Sqrt(3.0) / 2.0

	return Features{
		Elevation:   octaveNoise(g.elevation, x, y, 4, 0.08, 0.5),
		Moisture:    octaveNoise(g.moisture, x, y, 3, 0.06, 0.5),
		Temperature: octaveNoise(g.temperature, x, y, 3, 0.05, 0.5),
	}
}

// Table builds a region table covering the full disk of the given radius
// around center, in ID order.
func (g *Generator) Table(center cell.ID, radius int) (*regions.Table[Features], error) {
	grid := neighborhood.NewGrid()

	ids, err := grid.Disk(center, radius, func(o *neighborhood.DiskOptions) {
		o.IncludeCenter = true
		o.Unchecked = true
	})
	if err != nil {
		return nil, err
	}

	rows := make([]Features, len(ids))
	for n, id := range ids {
		rows[n] = g.Row(id)
	}

	return regions.New(ids, rows)
}

// octaveNoise layers multiple noise frequencies into one fractal value.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
