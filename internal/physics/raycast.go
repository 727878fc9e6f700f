package physics

import (
	"math"

	"voxeldig/internal/profiling"
	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MinReachDistance is the closest a tool ray may register a hit.
	MinReachDistance = 0.1
	// stepFraction is the march step as a fraction of the voxel edge.
	stepFraction = 0.08
)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      world.Pos
	AdjacentPosition world.Pos
	// HasAdjacent is false when the ray started inside material.
	HasAdjacent bool
	Distance    float32
	Hit         bool
}

// Raycast marches a ray through g in grid-local world units (voxel cubes of
// edge voxelSize starting at the origin) and returns the first non-air cell.
// direction must be normalized.
func Raycast(g *world.Grid, voxelSize float32, start, direction mgl32.Vec3, minDist, maxDist float32) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	stepSize := voxelSize * stepFraction
	steps := int(maxDist / stepSize)

	var lastEmpty world.Pos
	result := RaycastResult{}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		if dist < minDist {
			continue
		}

		pos := start.Add(direction.Mul(dist))
		cell := VoxelAt(pos, voxelSize)

		if m, ok := g.Get(cell); ok && m != world.MaterialAir {
			result.HitPosition = cell
			result.AdjacentPosition = lastEmpty
			result.Distance = dist
			result.Hit = true
			return result
		}

		lastEmpty = cell
		result.HasAdjacent = true
	}

	result.HasAdjacent = false
	return result
}

// VoxelAt floors a grid-local point to the cell containing it.
func VoxelAt(p mgl32.Vec3, voxelSize float32) world.Pos {
	return world.Pos{
		int(math.Floor(float64(p[0] / voxelSize))),
		int(math.Floor(float64(p[1] / voxelSize))),
		int(math.Floor(float64(p[2] / voxelSize))),
	}
}
