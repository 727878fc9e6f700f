package terrain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"voxeldig/internal/config"
	"voxeldig/internal/meshing"
	"voxeldig/internal/physics"
	"voxeldig/internal/profiling"
	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateBounds is returned when a volume's source bounds cannot produce a grid.
var ErrDegenerateBounds = errors.New("terrain: degenerate volume bounds")

// FillMode selects the initial occupancy of a new volume.
type FillMode int

const (
	FillFull FillMode = iota
	// FillHalf fills the lower half of the layers, rounded up.
	FillHalf
)

// VolumeSpec describes a volume to create from level geometry.
type VolumeSpec struct {
	Name     string
	Min, Max mgl32.Vec3
	Fill     world.Material
	Mode     FillMode
	// VoxelSize falls back to config.GetVoxelSize() when zero.
	VoxelSize float32
}

// Volume is one diggable terrain volume: the voxel grid plus everything
// needed to place it in the world and regenerate its geometry.
//
// A Volume is owned by a single goroutine at a time. Edits, ticks and
// remeshing must not run concurrently on the same Volume.
type Volume struct {
	name      string
	grid      *world.Grid
	dirty     *world.DirtyBuffer
	voxelSize float32

	transform mgl32.Mat4
	inverse   mgl32.Mat4
	worldMin  mgl32.Vec3
	worldMax  mgl32.Vec3

	stepper *Stepper

	collider     *physics.VoxelCollider
	shownMeshes  map[world.Material]bool
	published    uint64
	hasPublished bool
}

// NewVolume sizes a grid from the requested world bounds, fills it and centres
// it on the bounds.
func NewVolume(spec VolumeSpec) (*Volume, error) {
	voxelSize := spec.VoxelSize
	if voxelSize == 0 {
		voxelSize = config.GetVoxelSize()
	}
	if !finite(voxelSize) || voxelSize <= 0 {
		return nil, fmt.Errorf("%w: voxel size %v", ErrDegenerateBounds, voxelSize)
	}
	for i := range 3 {
		if !finite(spec.Min[i]) || !finite(spec.Max[i]) {
			return nil, fmt.Errorf("%w: non-finite bounds %v..%v", ErrDegenerateBounds, spec.Min, spec.Max)
		}
	}
	size := spec.Max.Sub(spec.Min)
	if size[0] < 0 || size[1] < 0 || size[2] < 0 || (size[0] == 0 && size[1] == 0 && size[2] == 0) {
		return nil, fmt.Errorf("%w: size %v", ErrDegenerateBounds, size)
	}

	var bounds world.Pos
	for i := range 3 {
		bounds[i] = int(math.Ceil(float64(size[i] / voxelSize)))
		if bounds[i] < 1 {
			bounds[i] = 1
		}
	}

	fill := spec.Fill
	if !fill.Granular() {
		fill = world.MaterialDirt
	}

	g := world.NewGrid(bounds)
	switch spec.Mode {
	case FillHalf:
		g.FillLayers(fill, (bounds[1]+1)/2)
	default:
		g.FillLayers(fill, bounds[1])
	}

	// centre the voxel mesh on the source AABB
	center := spec.Min.Add(spec.Max).Mul(0.5)
	meshCenter := mgl32.Vec3{float32(bounds[0]), float32(bounds[1]), float32(bounds[2])}.Mul(voxelSize * 0.5)
	translation := center.Sub(meshCenter)

	v := &Volume{
		name:        spec.Name,
		grid:        g,
		dirty:       world.NewDirtyBuffer(bounds),
		voxelSize:   voxelSize,
		worldMin:    spec.Min,
		worldMax:    spec.Max,
		stepper:     NewStepper(config.GetSimTPS(), config.GetMaxTicksPerUpdate()),
		shownMeshes: make(map[world.Material]bool),
	}
	v.SetTransform(mgl32.Translate3D(translation[0], translation[1], translation[2]))
	return v, nil
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func (v *Volume) Name() string          { return v.name }
func (v *Volume) Grid() *world.Grid     { return v.grid }
func (v *Volume) VoxelSize() float32    { return v.voxelSize }
func (v *Volume) Transform() mgl32.Mat4 { return v.transform }

// SetTransform places the volume's local origin (the grid's minimum corner)
// in the world. The transform must be invertible.
func (v *Volume) SetTransform(m mgl32.Mat4) {
	v.transform = m
	v.inverse = m.Inv()
}

// WorldBounds returns the source AABB the volume was created from.
func (v *Volume) WorldBounds() (min, max mgl32.Vec3) { return v.worldMin, v.worldMax }

// Contains reports whether a world point lies inside the source AABB.
func (v *Volume) Contains(p mgl32.Vec3) bool {
	for i := range 3 {
		if p[i] < v.worldMin[i] || p[i] > v.worldMax[i] {
			return false
		}
	}
	return true
}

// WorldToLocal applies the inverse transform to a world point.
func (v *Volume) WorldToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return v.inverse.Mul4x1(p.Vec4(1)).Vec3()
}

// LocalToWorld applies the transform to a grid-local point.
func (v *Volume) LocalToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return v.transform.Mul4x1(p.Vec4(1)).Vec3()
}

// WorldToVoxel converts a world point to the grid cell containing it. The
// result may lie outside the grid.
func (v *Volume) WorldToVoxel(p mgl32.Vec3) world.Pos {
	return physics.VoxelAt(v.WorldToLocal(p), v.voxelSize)
}

// DigAt clears a sphere of radius voxels around the cell holding a world point.
func (v *Volume) DigAt(p mgl32.Vec3, radius int) {
	v.grid.SetRegion(v.WorldToVoxel(p), radius, world.MaterialAir)
}

// FillAt fills a sphere of radius voxels with dirt around the cell holding a world point.
func (v *Volume) FillAt(p mgl32.Vec3, radius int) {
	v.grid.SetRegion(v.WorldToVoxel(p), radius, world.MaterialDirt)
}

// Raycast casts a world-space ray against the grid, ignoring hits closer than
// physics.MinReachDistance. direction must be normalized and the transform
// rigid for distances to stay in world units.
func (v *Volume) Raycast(origin, direction mgl32.Vec3, maxDist float32) physics.RaycastResult {
	localOrigin := v.WorldToLocal(origin)
	localDir := v.inverse.Mul4x1(direction.Vec4(0)).Vec3()
	if l := localDir.Len(); l > 0 {
		localDir = localDir.Mul(1 / l)
	}
	return physics.Raycast(v.grid, v.voxelSize, localOrigin, localDir, physics.MinReachDistance, maxDist)
}

// AirRatio returns the fraction of the volume that is empty.
func (v *Volume) AirRatio() float32 { return v.grid.AirRatio() }

// Emptied reports whether at least threshold of the volume has been dug out.
func (v *Volume) Emptied(threshold float32) bool { return v.grid.AirRatio() >= threshold }

// Filled reports whether at most threshold of the volume is still empty.
func (v *Volume) Filled(threshold float32) bool { return v.grid.AirRatio() <= threshold }

// Quiescent reports whether the automaton has nothing left to relax.
func (v *Volume) Quiescent() bool { return v.grid.Quiescent() }

// Tick runs one automaton pass and returns the number of cells moved.
func (v *Volume) Tick() int {
	return v.grid.SimulateBudget(v.dirty, config.GetDirtyBudget())
}

// Settle ticks until the volume is quiescent or limit ticks have run, and
// returns the number of ticks executed.
func (v *Volume) Settle(limit int) int {
	ticks := 0
	for ticks < limit && !v.grid.Quiescent() {
		v.Tick()
		ticks++
	}
	return ticks
}

// Update advances the automaton by the ticks due for dt and regenerates the
// output if anything changed. The tick rate and catch-up cap are re-read from
// config on every call.
func (v *Volume) Update(dt time.Duration) (*Output, bool) {
	v.stepper.SetTPS(config.GetSimTPS())
	v.stepper.SetMaxTicks(config.GetMaxTicksPerUpdate())
	for range v.stepper.Advance(dt) {
		v.Tick()
	}
	return v.Remesh()
}

// Remesh regenerates meshes and collider if the grid changed since the last
// call. The needs-remesh flag is cleared before extraction so edits made
// between two calls coalesce into a single rebuild.
func (v *Volume) Remesh() (*Output, bool) {
	if !v.grid.TakeRemesh() {
		return nil, false
	}
	defer profiling.Track("terrain.Remesh")()

	out := &Output{
		Meshes:      make(map[world.Material]*meshing.Mesh, len(world.MeshedMaterials)),
		Fingerprint: v.grid.Fingerprint(),
		AirRatio:    v.grid.AirRatio(),
	}
	uvScale := config.GetUVScale()
	for material, buf := range meshing.Sample(v.grid, v.voxelSize) {
		if buf.Empty() {
			continue
		}
		out.Meshes[material] = meshing.BuildFlatMesh(buf, uvScale)
	}
	if collider, ok := physics.BuildVoxelCollider(v.grid, v.voxelSize); ok {
		out.Collider = collider
	}
	profiling.Count("terrain.Remeshes", 1)
	return out, true
}

// Publish hands an output to the collaborators. Outputs identical to the last
// published one are dropped. Either sink may be nil.
func (v *Volume) Publish(out *Output, render RenderSink, phys PhysicsSink) {
	if out == nil {
		return
	}
	if v.hasPublished && out.Fingerprint == v.published {
		return
	}
	v.published = out.Fingerprint
	v.hasPublished = true

	for _, material := range world.MeshedMaterials {
		mesh, ok := out.Meshes[material]
		switch {
		case ok:
			if render != nil {
				render.ReplaceMesh(v.name, material, mesh)
			}
			v.shownMeshes[material] = true
		case v.shownMeshes[material]:
			// clear rather than skip so the last of a dug-out material does not linger
			if render != nil {
				render.ClearMesh(v.name, material)
			}
			v.shownMeshes[material] = false
		}
	}

	v.collider = out.Collider
	if phys == nil {
		return
	}
	if out.Collider != nil {
		phys.ReplaceCollider(v.name, out.Collider)
	} else {
		phys.RemoveCollider(v.name)
	}
}

// Collider returns the last published collision shape, or false when the
// volume has none.
func (v *Volume) Collider() (*physics.VoxelCollider, bool) {
	return v.collider, v.collider != nil
}
