package physics

import (
	"math"

	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Collides checks whether a grid-local AABB overlaps any non-air cell.
// Touching faces do not count as overlap.
func Collides(g *world.Grid, voxelSize float32, min, max mgl32.Vec3) bool {
	lo := VoxelAt(min, voxelSize)
	hi := VoxelAt(max, voxelSize)

	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				m, ok := g.Get(world.Pos{x, y, z})
				if !ok || m == world.MaterialAir {
					continue
				}
				cellMin := mgl32.Vec3{float32(x), float32(y), float32(z)}.Mul(voxelSize)
				cellMax := cellMin.Add(mgl32.Vec3{voxelSize, voxelSize, voxelSize})
				if min[0] < cellMax[0] && max[0] > cellMin[0] &&
					min[1] < cellMax[1] && max[1] > cellMin[1] &&
					min[2] < cellMax[2] && max[2] > cellMin[2] {
					return true
				}
			}
		}
	}
	return false
}

// SurfaceHeight finds the top of the highest non-air cell in the column
// containing the grid-local point (x, z). It returns false for an empty or
// out-of-bounds column.
func SurfaceHeight(g *world.Grid, voxelSize float32, x, z float32) (float32, bool) {
	cx := int(math.Floor(float64(x / voxelSize)))
	cz := int(math.Floor(float64(z / voxelSize)))
	for y := g.Bounds()[1] - 1; y >= 0; y-- {
		m, ok := g.Get(world.Pos{cx, y, cz})
		if !ok {
			return 0, false
		}
		if m != world.MaterialAir {
			return float32(y+1) * voxelSize, true
		}
	}
	return 0, false
}
