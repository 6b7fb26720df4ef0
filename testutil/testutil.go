package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/hexpatch/cell"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// SampleCells returns the cells that survive an independent random keep
// test, preserving the input order. keepRate is the probability that a
// cell is kept (0.8 = ~80% kept). Useful for punching holes into a frame
// to exercise validity filtering.
func (r *RNG) SampleCells(cells []cell.ID, keepRate float64) []cell.ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]cell.ID, 0, len(cells))
	for _, id := range cells {
		if r.rand.Float64() < keepRate {
			kept = append(kept, id)
		}
	}

	return kept
}

// RectCells returns the cells of a width x height axial rectangle with
// the lower left corner at (0, 0). Cells are ordered j-major, matching
// how row scans usually assemble region tables.
func RectCells(zone uint8, res, width, height int) []cell.ID {
	cells := make([]cell.ID, 0, width*height)
	for j := range height {
		for i := range width {
			cells = append(cells, cell.MustNew(zone, res, i, j))
		}
	}

	return cells
}

// BruteForceValid computes the cells whose full neighborhood up to
// ringDistance is present in cells, by exhaustive set lookup. Results
// preserve the input order. This is an independent reference
// implementation used to cross-check dataset construction.
func BruteForceValid(cells []cell.ID, ringDistance int) []cell.ID {
	members := make(map[cell.ID]struct{}, len(cells))
	for _, id := range cells {
		members[id] = struct{}{}
	}

	valid := make([]cell.ID, 0, len(cells))
	for _, id := range cells {
		if hasFullNeighborhood(members, id, ringDistance) {
			valid = append(valid, id)
		}
	}

	return valid
}

func hasFullNeighborhood(members map[cell.ID]struct{}, id cell.ID, ringDistance int) bool {
	for dj := -ringDistance; dj <= ringDistance; dj++ {
		for di := -ringDistance; di <= ringDistance; di++ {
			if hexDist(di, dj) > ringDistance {
				continue
			}

			neighbor, err := id.Offset(di, dj)
			if err != nil {
				return false
			}

			if _, ok := members[neighbor]; !ok {
				return false
			}
		}
	}

	return true
}

// hexDist is the axial hex distance of the offset (di, dj) from the origin.
func hexDist(di, dj int) int {
	return max(abs(di), abs(dj), abs(di-dj))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
