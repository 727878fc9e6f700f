package meshing

import (
	"voxeldig/internal/profiling"
	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	fieldOutside = float32(0.5)
	fieldInside  = float32(-0.5)
)

// PaddedShape returns the sample field shape for a grid: one layer of padding
// on the negative side and two on the positive side, because SurfaceNets does
// not emit faces on the maximum boundary of its region.
func PaddedShape(bounds world.Pos) Shape {
	return Shape{bounds[0] + 3, bounds[1] + 3, bounds[2] + 3}
}

// Sample extracts one surface per meshed material. Every meshed material gets
// an entry; materials with no occupied cells map to an empty buffer. Positions
// are rescaled to local world units using voxelSize.
func Sample(g *world.Grid, voxelSize float32) map[world.Material]*SurfaceBuffer {
	defer profiling.Track("meshing.Sample")()

	shape := PaddedShape(g.Bounds())
	hi := [3]int{shape[0] - 1, shape[1] - 1, shape[2] - 1}
	sdf := make([]float32, shape.Size())

	results := make(map[world.Material]*SurfaceBuffer, len(world.MeshedMaterials))
	for _, material := range world.MeshedMaterials {
		buf := &SurfaceBuffer{}
		results[material] = buf

		if !fillField(sdf, shape, g, material) {
			continue
		}
		SurfaceNets(sdf, shape, [3]int{}, hi, buf)
		for i, p := range buf.Positions {
			buf.Positions[i] = p.Sub(mgl32.Vec3{0.5, 0.5, 0.5}).Mul(voxelSize)
		}
	}
	return results
}

// fillField writes the signed field for one material and reports whether any
// cell holds it.
func fillField(sdf []float32, shape Shape, g *world.Grid, material world.Material) bool {
	for i := range sdf {
		sdf[i] = fieldOutside
	}
	found := false
	for i, m := range g.Cells() {
		if m != material {
			continue
		}
		pos := g.Delinearize(i)
		sdf[shape.Linearize(pos[0]+1, pos[1]+1, pos[2]+1)] = fieldInside
		found = true
	}
	return found
}
