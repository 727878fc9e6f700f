package world

import (
	"voxeldig/internal/profiling"
)

// diagonalFall lists the off-axis landing offsets tried, in order, when a
// cell cannot fall straight down.
var diagonalFall = [4]Pos{
	{-1, -2, 0},
	{1, -2, 0},
	{0, -2, -1},
	{0, -2, 1},
}

// Simulate runs one relaxation pass over the whole dirty set and returns the
// number of cells that moved.
func (g *Grid) Simulate(dirty *DirtyBuffer) int {
	return g.SimulateBudget(dirty, 0)
}

// SimulateBudget runs one relaxation pass evaluating at most budget dirty
// cells (0 = no limit). Dirty cells left over are carried into the next pass
// without being dilated again.
//
// Every move goes to a lower index, so a material moves at most once per pass
// while cells are visited in ascending index order.
func (g *Grid) SimulateBudget(dirty *DirtyBuffer, budget int) int {
	defer profiling.Track("world.Simulate")()

	dirty.Clear()
	dirty.DilateModified(g.modified)
	dirty.Include(g.deferred)
	g.modified.ClearAll()
	g.deferred.ClearAll()

	yStride := g.bounds[0] * g.bounds[2]
	moves := 0
	visited := 0

	for u, ok := dirty.dirty.NextSet(0); ok; u, ok = dirty.dirty.NextSet(u + 1) {
		if budget > 0 && visited == budget {
			for ; ok; u, ok = dirty.dirty.NextSet(u + 1) {
				g.deferred.Set(u)
			}
			break
		}
		visited++

		i := int(u)
		m := g.cells[i]
		if !m.Granular() {
			continue
		}

		// straight down
		if below := i - yStride; below >= 0 && g.cells[below] == MaterialAir {
			g.move(i, below)
			moves++
			continue
		}

		// diagonal slide
		pos := g.Delinearize(i)
		for _, offset := range diagonalFall {
			target := pos.Add(offset)
			if !g.InBounds(target) {
				continue
			}
			t := g.Linearize(target)
			if g.cells[t] == MaterialAir {
				g.move(i, t)
				moves++
				break
			}
		}
	}

	profiling.Count("world.Moves", moves)
	return moves
}

func (g *Grid) move(from, to int) {
	g.cells[to] = g.cells[from]
	g.cells[from] = MaterialAir
	g.markModified(from)
	g.markModified(to)
	g.needsRemesh = true
}
