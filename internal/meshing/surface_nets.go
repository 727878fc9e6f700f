package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Shape describes a dense 3D sample array laid out x fastest, then y, then z.
type Shape [3]int

// Size returns the number of samples.
func (s Shape) Size() int { return s[0] * s[1] * s[2] }

// Linearize maps a sample coordinate to its array index.
func (s Shape) Linearize(x, y, z int) int {
	return x + y*s[0] + z*s[0]*s[1]
}

// Delinearize is the inverse of Linearize.
func (s Shape) Delinearize(i int) (x, y, z int) {
	x = i % s[0]
	y = (i / s[0]) % s[1]
	z = i / (s[0] * s[1])
	return
}

const nullVertex = ^uint32(0)

// SurfaceBuffer holds the raw output of a surface nets pass.
type SurfaceBuffer struct {
	Positions []mgl32.Vec3
	// Normals are unnormalized SDF gradients at each vertex.
	Normals []mgl32.Vec3
	// Indices form a triangle list over Positions.
	Indices []uint32

	// surfacePoints holds the minimum corner of every cell that produced a vertex.
	surfacePoints [][3]int
	// surfaceStrides holds the sample index of each surfacePoint.
	surfaceStrides []int
	// strideToIndex maps a cell's sample index to its vertex, or nullVertex.
	strideToIndex []uint32
}

// Reset empties the buffer and sizes its lookup table for numSamples.
func (b *SurfaceBuffer) Reset(numSamples int) {
	b.Positions = b.Positions[:0]
	b.Normals = b.Normals[:0]
	b.Indices = b.Indices[:0]
	b.surfacePoints = b.surfacePoints[:0]
	b.surfaceStrides = b.surfaceStrides[:0]
	if cap(b.strideToIndex) < numSamples {
		b.strideToIndex = make([]uint32, numSamples)
	}
	b.strideToIndex = b.strideToIndex[:numSamples]
	for i := range b.strideToIndex {
		b.strideToIndex[i] = nullVertex
	}
}

// Empty reports whether the pass produced no triangles.
func (b *SurfaceBuffer) Empty() bool { return len(b.Indices) == 0 }

// cubeCorners are ordered so bit 0 is x, bit 1 is y and bit 2 is z.
var cubeCorners = [8][3]int{
	{0, 0, 0},
	{1, 0, 0},
	{0, 1, 0},
	{1, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{0, 1, 1},
	{1, 1, 1},
}

var cubeEdges = [12][2]int{
	{0b000, 0b001},
	{0b000, 0b010},
	{0b000, 0b100},
	{0b001, 0b011},
	{0b001, 0b101},
	{0b010, 0b011},
	{0b010, 0b110},
	{0b011, 0b111},
	{0b100, 0b101},
	{0b100, 0b110},
	{0b101, 0b111},
	{0b110, 0b111},
}

// SurfaceNets extracts the zero isosurface of sdf (negative inside) over the
// cells whose minimum corner lies in [min, max). Samples up to max inclusive
// are read. Quads are never emitted on the max faces of the region, so callers
// wanting closed surfaces must pad the positive side.
//
// One vertex is placed per sign-changing cell at the centroid of its edge
// crossings, then every sign-changing edge is joined into a quad from the four
// cells around it.
func SurfaceNets(sdf []float32, shape Shape, min, max [3]int, out *SurfaceBuffer) {
	out.Reset(len(sdf))
	estimateSurface(sdf, shape, min, max, out)
	makeAllQuads(sdf, shape, min, max, out)
}

func estimateSurface(sdf []float32, shape Shape, min, max [3]int, out *SurfaceBuffer) {
	var cornerStrides [8]int
	for i, c := range cubeCorners {
		cornerStrides[i] = shape.Linearize(c[0], c[1], c[2])
	}

	for z := min[2]; z < max[2]; z++ {
		for y := min[1]; y < max[1]; y++ {
			for x := min[0]; x < max[0]; x++ {
				stride := shape.Linearize(x, y, z)

				var dists [8]float32
				negative := 0
				for i, cs := range cornerStrides {
					dists[i] = sdf[stride+cs]
					if dists[i] < 0 {
						negative++
					}
				}
				if negative == 0 || negative == 8 {
					continue
				}

				c := centroidOfEdgeIntersections(&dists)
				out.strideToIndex[stride] = uint32(len(out.Positions))
				out.Positions = append(out.Positions, mgl32.Vec3{float32(x), float32(y), float32(z)}.Add(c))
				out.Normals = append(out.Normals, sdfGradient(&dists, c))
				out.surfacePoints = append(out.surfacePoints, [3]int{x, y, z})
				out.surfaceStrides = append(out.surfaceStrides, stride)
			}
		}
	}
}

func cornerPos(corner int) mgl32.Vec3 {
	c := cubeCorners[corner]
	return mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
}

func centroidOfEdgeIntersections(dists *[8]float32) mgl32.Vec3 {
	count := 0
	var sum mgl32.Vec3
	for _, e := range cubeEdges {
		d1, d2 := dists[e[0]], dists[e[1]]
		if (d1 < 0) == (d2 < 0) {
			continue
		}
		count++
		t := d1 / (d1 - d2)
		sum = sum.Add(cornerPos(e[0]).Mul(1 - t)).Add(cornerPos(e[1]).Mul(t))
	}
	return sum.Mul(1 / float32(count))
}

// sdfGradient bilinearly interpolates the four edge deltas along each axis at s.
func sdfGradient(d *[8]float32, s mgl32.Vec3) mgl32.Vec3 {
	p00 := mgl32.Vec3{d[0b001], d[0b010], d[0b100]}
	n00 := mgl32.Vec3{d[0b000], d[0b000], d[0b000]}
	p10 := mgl32.Vec3{d[0b101], d[0b011], d[0b110]}
	n10 := mgl32.Vec3{d[0b100], d[0b001], d[0b010]}
	p01 := mgl32.Vec3{d[0b011], d[0b110], d[0b101]}
	n01 := mgl32.Vec3{d[0b010], d[0b100], d[0b001]}
	p11 := mgl32.Vec3{d[0b111], d[0b111], d[0b111]}
	n11 := mgl32.Vec3{d[0b110], d[0b101], d[0b011]}

	d00 := p00.Sub(n00)
	d10 := p10.Sub(n10)
	d01 := p01.Sub(n01)
	d11 := p11.Sub(n11)

	neg := mgl32.Vec3{1 - s[0], 1 - s[1], 1 - s[2]}
	negYZX, negZXY := yzx(neg), zxy(neg)
	sYZX, sZXY := yzx(s), zxy(s)

	return mulElem(mulElem(negYZX, negZXY), d00).
		Add(mulElem(mulElem(negYZX, sZXY), d10)).
		Add(mulElem(mulElem(sYZX, negZXY), d01)).
		Add(mulElem(mulElem(sYZX, sZXY), d11))
}

func yzx(v mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{v[1], v[2], v[0]} }
func zxy(v mgl32.Vec3) mgl32.Vec3 { return mgl32.Vec3{v[2], v[0], v[1]} }

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func makeAllQuads(sdf []float32, shape Shape, min, max [3]int, out *SurfaceBuffer) {
	xStride := shape.Linearize(1, 0, 0)
	yStride := shape.Linearize(0, 1, 0)
	zStride := shape.Linearize(0, 0, 1)

	for i, p := range out.surfacePoints {
		x, y, z := p[0], p[1], p[2]
		stride := out.surfaceStrides[i]

		// edges parallel to X
		if y != min[1] && z != min[2] && x != max[0]-1 {
			maybeMakeQuad(sdf, out, stride, stride+xStride, yStride, zStride)
		}
		// edges parallel to Y
		if x != min[0] && z != min[2] && y != max[1]-1 {
			maybeMakeQuad(sdf, out, stride, stride+yStride, zStride, xStride)
		}
		// edges parallel to Z
		if x != min[0] && y != min[1] && z != max[2]-1 {
			maybeMakeQuad(sdf, out, stride, stride+zStride, xStride, yStride)
		}
	}
}

// maybeMakeQuad emits two triangles across the edge p1-p2 if its endpoints
// differ in sign. The quad corners, viewed face-on, are:
//
//	v1 v3
//	v2 v4
func maybeMakeQuad(sdf []float32, out *SurfaceBuffer, p1, p2, axisB, axisC int) {
	d1, d2 := sdf[p1], sdf[p2]
	var negativeFace bool
	switch {
	case d1 < 0 && d2 >= 0:
		negativeFace = false
	case d1 >= 0 && d2 < 0:
		negativeFace = true
	default:
		return
	}

	v1 := out.strideToIndex[p1]
	v2 := out.strideToIndex[p1-axisB]
	v3 := out.strideToIndex[p1-axisC]
	v4 := out.strideToIndex[p1-axisB-axisC]
	if v1 == nullVertex || v2 == nullVertex || v3 == nullVertex || v4 == nullVertex {
		return
	}
	pos1, pos2 := out.Positions[v1], out.Positions[v2]
	pos3, pos4 := out.Positions[v3], out.Positions[v4]

	// split along the shorter diagonal
	var quad [6]uint32
	if distSq(pos1, pos4) < distSq(pos2, pos3) {
		if negativeFace {
			quad = [6]uint32{v1, v4, v2, v1, v3, v4}
		} else {
			quad = [6]uint32{v1, v2, v4, v1, v4, v3}
		}
	} else if negativeFace {
		quad = [6]uint32{v2, v3, v4, v2, v1, v3}
	} else {
		quad = [6]uint32{v2, v4, v3, v2, v3, v1}
	}
	out.Indices = append(out.Indices, quad[:]...)
}

func distSq(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}
