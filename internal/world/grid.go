package world

import (
	"github.com/bits-and-blooms/bitset"
)

// Pos is an integer voxel coordinate in grid-local space.
type Pos [3]int

func (p Pos) X() int { return p[0] }
func (p Pos) Y() int { return p[1] }
func (p Pos) Z() int { return p[2] }

// Add returns the componentwise sum.
func (p Pos) Add(o Pos) Pos {
	return Pos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// Linearize maps pos to a flat index: z fastest, then x, y outermost.
func Linearize(bounds, pos Pos) int {
	return pos[2] + pos[0]*bounds[2] + pos[1]*bounds[0]*bounds[2]
}

// Delinearize is the inverse of Linearize.
func Delinearize(bounds Pos, index int) Pos {
	z := index % bounds[2]
	x := (index / bounds[2]) % bounds[0]
	y := index / (bounds[0] * bounds[2])
	return Pos{x, y, z}
}

// InBounds checks 0 <= pos < bounds componentwise.
func InBounds(bounds, pos Pos) bool {
	return pos[0] >= 0 && pos[0] < bounds[0] &&
		pos[1] >= 0 && pos[1] < bounds[1] &&
		pos[2] >= 0 && pos[2] < bounds[2]
}

// Grid is a dense, fixed-size voxel volume.
//
// Every write goes through Set (or the automaton), which records the cell in
// the modified set and raises the needs-remesh flag. A Grid is owned by a
// single terrain volume and is not safe for concurrent mutation.
type Grid struct {
	bounds      Pos
	cells       []Material
	modified    *bitset.BitSet
	deferred    *bitset.BitSet // dirty cells a budgeted pass did not reach
	needsRemesh bool
}

// NewGrid allocates an all-air grid. Each axis is clamped to at least 1.
func NewGrid(bounds Pos) *Grid {
	for i := range bounds {
		if bounds[i] < 1 {
			bounds[i] = 1
		}
	}
	volume := bounds[0] * bounds[1] * bounds[2]
	return &Grid{
		bounds:   bounds,
		cells:    make([]Material, volume),
		modified: bitset.New(uint(volume)),
		deferred: bitset.New(uint(volume)),
	}
}

// Bounds returns the grid extents.
func (g *Grid) Bounds() Pos { return g.bounds }

// Volume returns the number of cells.
func (g *Grid) Volume() int { return len(g.cells) }

// Cells exposes the backing slice for read-only scans.
func (g *Grid) Cells() []Material { return g.cells }

func (g *Grid) Linearize(pos Pos) int     { return Linearize(g.bounds, pos) }
func (g *Grid) Delinearize(index int) Pos { return Delinearize(g.bounds, index) }
func (g *Grid) InBounds(pos Pos) bool     { return InBounds(g.bounds, pos) }

// Get returns the material at pos, or false when pos is outside the grid.
func (g *Grid) Get(pos Pos) (Material, bool) {
	if !g.InBounds(pos) {
		return MaterialAir, false
	}
	return g.cells[g.Linearize(pos)], true
}

// IsAir reports whether pos is in bounds and holds air.
func (g *Grid) IsAir(pos Pos) bool {
	m, ok := g.Get(pos)
	return ok && m == MaterialAir
}

// Set writes a cell. Out of bounds positions are ignored.
func (g *Grid) Set(pos Pos, m Material) {
	if !g.InBounds(pos) {
		return
	}
	index := g.Linearize(pos)
	g.cells[index] = m
	g.markModified(index)
	g.needsRemesh = true
}

// SetRegion applies Set to every cell within radius of center
// (dx²+dy²+dz² <= radius²). A negative radius does nothing.
func (g *Grid) SetRegion(center Pos, radius int, m Material) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx*dx+dy*dy+dz*dz > r2 {
					continue
				}
				g.Set(center.Add(Pos{dx, dy, dz}), m)
			}
		}
	}
}

// FillLayers sets every cell with y < height to m.
func (g *Grid) FillLayers(m Material, height int) {
	if height > g.bounds[1] {
		height = g.bounds[1]
	}
	for y := range height {
		for x := range g.bounds[0] {
			for z := range g.bounds[2] {
				g.Set(Pos{x, y, z}, m)
			}
		}
	}
}

// AirRatio returns the fraction of cells holding air.
func (g *Grid) AirRatio() float32 {
	air := 0
	for _, m := range g.cells {
		if m == MaterialAir {
			air++
		}
	}
	return float32(air) / float32(len(g.cells))
}

// Occupied returns the positions of every non-air cell in index order.
func (g *Grid) Occupied() []Pos {
	var positions []Pos
	for i, m := range g.cells {
		if m != MaterialAir {
			positions = append(positions, g.Delinearize(i))
		}
	}
	return positions
}

// NeedsRemesh reports whether any cell changed since the last TakeRemesh.
func (g *Grid) NeedsRemesh() bool { return g.needsRemesh }

// TakeRemesh returns the needs-remesh flag and clears it.
func (g *Grid) TakeRemesh() bool {
	needs := g.needsRemesh
	g.needsRemesh = false
	return needs
}

// Quiescent reports whether no cell is waiting for relaxation.
func (g *Grid) Quiescent() bool { return g.modified.None() && g.deferred.None() }

// ModifiedCount returns the number of cells written since the last pass.
func (g *Grid) ModifiedCount() int { return int(g.modified.Count()) }

func (g *Grid) markModified(index int) {
	g.modified.Set(uint(index))
}
