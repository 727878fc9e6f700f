package terrain

import (
	"voxeldig/internal/meshing"
	"voxeldig/internal/physics"
	"voxeldig/internal/world"
)

// RenderSink receives regenerated display geometry. Each (volume, material)
// pair is one display slot; a new mesh replaces the previous one.
type RenderSink interface {
	ReplaceMesh(volume string, material world.Material, mesh *meshing.Mesh)
	ClearMesh(volume string, material world.Material)
}

// PhysicsSink receives regenerated collision shapes, one per volume.
type PhysicsSink interface {
	ReplaceCollider(volume string, collider *physics.VoxelCollider)
	RemoveCollider(volume string)
}

// Output is one regeneration of a volume's derived geometry.
type Output struct {
	// Meshes holds only materials with at least one triangle.
	Meshes map[world.Material]*meshing.Mesh
	// Collider is nil when the volume holds no material.
	Collider *physics.VoxelCollider
	// Fingerprint is the grid content hash at extraction time.
	Fingerprint uint64
	AirRatio    float32
}
