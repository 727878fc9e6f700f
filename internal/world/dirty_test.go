package world

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
)

func TestDilateInterior(t *testing.T) {
	bounds := Pos{3, 3, 3}
	modified := bitset.New(27)
	modified.Set(uint(Linearize(bounds, Pos{1, 1, 1})))

	d := NewDirtyBuffer(bounds)
	d.DilateModified(modified)

	// the cell itself plus its 18 neighbors; the 8 corners stay clean
	if d.Len() != 19 {
		t.Fatalf("dirty = %d, want 19", d.Len())
	}
	for _, corner := range []Pos{{0, 0, 0}, {2, 2, 2}, {0, 2, 0}, {2, 0, 2}} {
		if d.Contains(Linearize(bounds, corner)) {
			t.Errorf("corner %v should not be dirty", corner)
		}
	}
	for _, edge := range []Pos{{0, 0, 1}, {2, 1, 2}, {1, 2, 0}} {
		if !d.Contains(Linearize(bounds, edge)) {
			t.Errorf("edge neighbor %v should be dirty", edge)
		}
	}
}

func TestDilateClipsAtBounds(t *testing.T) {
	bounds := Pos{2, 2, 2}
	modified := bitset.New(8)
	modified.Set(uint(Linearize(bounds, Pos{0, 0, 0})))

	d := NewDirtyBuffer(bounds)
	d.DilateModified(modified)
	// self + 3 face + 3 edge neighbors inside a 2x2x2 box
	if d.Len() != 7 {
		t.Fatalf("dirty = %d, want 7", d.Len())
	}
	d.Clear()
	if d.Len() != 0 {
		t.Fatalf("Clear left %d cells", d.Len())
	}
}
