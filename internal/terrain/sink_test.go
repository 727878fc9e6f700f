package terrain

import (
	"voxeldig/internal/meshing"
	"voxeldig/internal/physics"
	"voxeldig/internal/world"
)

type slotKey struct {
	volume   string
	material world.Material
}

// recorder is an in-memory render and physics collaborator.
type recorder struct {
	meshes       map[slotKey]*meshing.Mesh
	meshUpdates  int
	clears       int
	colliders    map[string]*physics.VoxelCollider
	removals     int
	emptyColls   int
	colliderSets int
}

func newRecorder() *recorder {
	return &recorder{
		meshes:    make(map[slotKey]*meshing.Mesh),
		colliders: make(map[string]*physics.VoxelCollider),
	}
}

func (r *recorder) ReplaceMesh(volume string, material world.Material, mesh *meshing.Mesh) {
	r.meshes[slotKey{volume, material}] = mesh
	r.meshUpdates++
}

func (r *recorder) ClearMesh(volume string, material world.Material) {
	delete(r.meshes, slotKey{volume, material})
	r.clears++
}

func (r *recorder) ReplaceCollider(volume string, c *physics.VoxelCollider) {
	if len(c.Positions) == 0 {
		r.emptyColls++
	}
	r.colliders[volume] = c
	r.colliderSets++
}

func (r *recorder) RemoveCollider(volume string) {
	delete(r.colliders, volume)
	r.removals++
}
