package neighborhood

import (
	"slices"

	"github.com/hupe1980/hexpatch/cell"
)

// Compile-time check
var _ Neighborhood = (*Grid)(nil)

// Membership reports which cells exist in an underlying data source. It is
// satisfied by regions.Table.
type Membership interface {
	Contains(id cell.ID) bool
}

// GridOptions contains options for a Grid.
type GridOptions struct {
	// Membership restricts checked disk queries to cells present in a
	// data source. Nil means every well-formed cell is a member.
	// Default: nil
	Membership Membership
}

// Grid is the canonical Neighborhood over the regular hex grid itself:
// adjacency is the six axial unit steps, and a disk of distance d is every
// cell reachable in at most d steps.
type Grid struct {
	membership Membership
}

// NewGrid creates a new Grid.
func NewGrid(optFns ...func(o *GridOptions)) *Grid {
	opts := GridOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Grid{
		membership: opts.Membership,
	}
}

// Disk implements Neighborhood via breadth-first expansion of the frontier,
// one ring per step. Cells whose coordinates would leave the encodable
// range are dropped, so disks near the frame edge come back truncated.
func (g *Grid) Disk(center cell.ID, distance int, optFns ...func(o *DiskOptions)) ([]cell.ID, error) {
	opts := DiskOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	if !center.Valid() {
		return nil, &cell.ErrInvalidCell{ID: center}
	}

	if distance < 0 {
		return nil, &ErrNegativeDistance{Distance: distance}
	}

	visited := make(map[cell.ID]struct{}, DiskSize(distance))
	visited[center] = struct{}{}

	frontier := []cell.ID{center}
	next := make([]cell.ID, 0, 6*distance) // ring d holds at most 6d cells
	scratch := make([]cell.ID, 0, 6)

	for d := 0; d < distance; d++ {
		next = next[:0]

		for _, id := range frontier {
			scratch = id.AppendNeighbors(scratch[:0])

			for _, n := range scratch {
				if _, ok := visited[n]; ok {
					continue
				}

				visited[n] = struct{}{}
				next = append(next, n)
			}
		}

		frontier, next = next, frontier
	}

	out := make([]cell.ID, 0, len(visited))

	for id := range visited {
		if id == center && !opts.IncludeCenter {
			continue
		}

		if !opts.Unchecked && g.membership != nil && !g.membership.Contains(id) {
			continue
		}

		out = append(out, id)
	}

	slices.Sort(out)

	return out, nil
}
