package physics

import (
	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// VoxelCollider describes a collision shape as a set of occupied grid cells,
// each a cube of VoxelSize. Positions are grid-local.
type VoxelCollider struct {
	VoxelSize float32
	Positions []world.Pos
}

// BuildVoxelCollider collects every non-air cell of g. It returns false when
// the grid is empty; callers must then remove the shape instead of submitting
// an empty one.
func BuildVoxelCollider(g *world.Grid, voxelSize float32) (*VoxelCollider, bool) {
	positions := g.Occupied()
	if len(positions) == 0 {
		return nil, false
	}
	return &VoxelCollider{VoxelSize: voxelSize, Positions: positions}, true
}

// Bounds returns the local-space AABB enclosing all cells.
func (c *VoxelCollider) Bounds() (min, max mgl32.Vec3) {
	if len(c.Positions) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo, hi := c.Positions[0], c.Positions[0]
	for _, p := range c.Positions[1:] {
		for i := range 3 {
			if p[i] < lo[i] {
				lo[i] = p[i]
			}
			if p[i] > hi[i] {
				hi[i] = p[i]
			}
		}
	}
	min = mgl32.Vec3{float32(lo[0]), float32(lo[1]), float32(lo[2])}.Mul(c.VoxelSize)
	max = mgl32.Vec3{float32(hi[0] + 1), float32(hi[1] + 1), float32(hi[2] + 1)}.Mul(c.VoxelSize)
	return min, max
}
