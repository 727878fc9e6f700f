package world

import (
	"github.com/bits-and-blooms/bitset"
)

// neighbors18 holds the 6 face and 12 edge neighbor offsets.
var neighbors18 = [18]Pos{
	// face neighbors
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
	// edge neighbors
	{1, 1, 0},
	{-1, 1, 0},
	{1, -1, 0},
	{-1, -1, 0},
	{1, 0, 1},
	{-1, 0, 1},
	{1, 0, -1},
	{-1, 0, -1},
	{0, 1, 1},
	{0, -1, 1},
	{0, 1, -1},
	{0, -1, -1},
}

// DirtyBuffer is the per-tick work set of the automaton. It is rebuilt from
// the grid's modified set on every pass and never persisted.
type DirtyBuffer struct {
	bounds Pos
	dirty  *bitset.BitSet
}

// NewDirtyBuffer allocates an empty buffer sized for bounds.
func NewDirtyBuffer(bounds Pos) *DirtyBuffer {
	return &DirtyBuffer{
		bounds: bounds,
		dirty:  bitset.New(uint(bounds[0] * bounds[1] * bounds[2])),
	}
}

// Clear empties the buffer.
func (d *DirtyBuffer) Clear() { d.dirty.ClearAll() }

// Len returns the number of dirty cells.
func (d *DirtyBuffer) Len() int { return int(d.dirty.Count()) }

// Contains reports whether index is dirty.
func (d *DirtyBuffer) Contains(index int) bool { return d.dirty.Test(uint(index)) }

// Include marks every cell of set dirty without dilation.
func (d *DirtyBuffer) Include(set *bitset.BitSet) { d.dirty.InPlaceUnion(set) }

// DilateModified marks every modified cell and its 18-connected neighbors dirty.
func (d *DirtyBuffer) DilateModified(modified *bitset.BitSet) {
	for i, ok := modified.NextSet(0); ok; i, ok = modified.NextSet(i + 1) {
		d.dirty.Set(i)
		pos := Delinearize(d.bounds, int(i))
		for _, offset := range neighbors18 {
			neighbor := pos.Add(offset)
			if InBounds(d.bounds, neighbor) {
				d.dirty.Set(uint(Linearize(d.bounds, neighbor)))
			}
		}
	}
}
