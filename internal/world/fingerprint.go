package world

import (
	"encoding/binary"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the grid extents and cell contents. Two grids with the
// same bounds and materials always produce the same value.
func (g *Grid) Fingerprint() uint64 {
	d := xxhash.New()
	var header [12]byte
	binary.LittleEndian.PutUint32(header[0:], uint32(g.bounds[0]))
	binary.LittleEndian.PutUint32(header[4:], uint32(g.bounds[1]))
	binary.LittleEndian.PutUint32(header[8:], uint32(g.bounds[2]))
	_, _ = d.Write(header[:])
	// Material is a single byte, so the cell slice can be hashed in place
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&g.cells[0])), len(g.cells))
	_, _ = d.Write(raw)
	return d.Sum64()
}
