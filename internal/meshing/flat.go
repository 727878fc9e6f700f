package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a non-indexed, flat-shaded triangle list ready for upload.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Positions) / 3 }

// BuildFlatMesh duplicates every vertex per triangle so each face carries its
// own normal. UVs use a cheap triplanar projection: the plane is chosen from
// the dominant axis of the face normal and coordinates are divided by uvScale.
func BuildFlatMesh(buf *SurfaceBuffer, uvScale float32) *Mesh {
	numTris := len(buf.Indices) / 3
	mesh := &Mesh{
		Positions: make([]mgl32.Vec3, 0, numTris*3),
		Normals:   make([]mgl32.Vec3, 0, numTris*3),
		UVs:       make([]mgl32.Vec2, 0, numTris*3),
	}

	for tri := 0; tri < numTris; tri++ {
		p0 := buf.Positions[buf.Indices[tri*3]]
		p1 := buf.Positions[buf.Indices[tri*3+1]]
		p2 := buf.Positions[buf.Indices[tri*3+2]]

		n := FaceNormal(p0, p1, p2)
		ax, ay, az := abs32(n[0]), abs32(n[1]), abs32(n[2])

		for _, p := range [3]mgl32.Vec3{p0, p1, p2} {
			mesh.Positions = append(mesh.Positions, p)
			mesh.Normals = append(mesh.Normals, n)

			var uv mgl32.Vec2
			switch {
			case ax >= ay && ax >= az: // yz plane
				uv = mgl32.Vec2{p[1] / uvScale, p[2] / uvScale}
			case ay >= az && ay >= ax: // xz plane
				uv = mgl32.Vec2{p[0] / uvScale, p[2] / uvScale}
			default: // xy plane
				uv = mgl32.Vec2{p[0] / uvScale, p[1] / uvScale}
			}
			mesh.UVs = append(mesh.UVs, uv)
		}
	}
	return mesh
}

// FaceNormal returns the unit normal of a counter-clockwise triangle, or the
// zero vector for a degenerate one.
func FaceNormal(p0, p1, p2 mgl32.Vec3) mgl32.Vec3 {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	l := n.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return n.Mul(1 / l)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
