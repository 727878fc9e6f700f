// Package export writes published terrain geometry to binary glTF.
package export

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"voxeldig/internal/meshing"
	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// baseColors are the flat PBR colours used per material.
var baseColors = map[world.Material][4]float32{
	world.MaterialDirt: {0.42, 0.29, 0.18, 1},
	world.MaterialSand: {0.86, 0.78, 0.55, 1},
}

type slot struct {
	volume   string
	material world.Material
}

// GLBWriter keeps the latest mesh of every (volume, material) slot it is handed
// and writes them as one scene. It satisfies terrain.RenderSink.
type GLBWriter struct {
	mu         sync.Mutex
	meshes     map[slot]*meshing.Mesh
	transforms map[string]mgl32.Mat4
}

func NewGLBWriter() *GLBWriter {
	return &GLBWriter{
		meshes:     make(map[slot]*meshing.Mesh),
		transforms: make(map[string]mgl32.Mat4),
	}
}

func (w *GLBWriter) ReplaceMesh(volume string, material world.Material, mesh *meshing.Mesh) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.meshes[slot{volume, material}] = mesh
}

func (w *GLBWriter) ClearMesh(volume string, material world.Material) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.meshes, slot{volume, material})
}

// SetTransform places every node of a volume. Volumes without one are written
// at the identity.
func (w *GLBWriter) SetTransform(volume string, m mgl32.Mat4) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.transforms[volume] = m
}

// Len returns the number of slots currently holding a mesh.
func (w *GLBWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.meshes)
}

// Document builds a glTF document with one node per slot, ordered by volume
// name then material.
func (w *GLBWriter) Document() *gltf.Document {
	w.mu.Lock()
	defer w.mu.Unlock()

	slots := make([]slot, 0, len(w.meshes))
	for s := range w.meshes {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].volume != slots[j].volume {
			return slots[i].volume < slots[j].volume
		}
		return slots[i].material < slots[j].material
	})

	doc := gltf.NewDocument()
	doc.Asset.Generator = "voxeldig"

	materialIndex := make(map[world.Material]int)
	for _, s := range slots {
		mesh := w.meshes[s]
		if mesh.TriangleCount() == 0 {
			continue
		}

		idx, ok := materialIndex[s.material]
		if !ok {
			color := baseColors[s.material]
			pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &color, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
			doc.Materials = append(doc.Materials, &gltf.Material{Name: s.material.String(), PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque})
			idx = len(doc.Materials) - 1
			materialIndex[s.material] = idx
		}

		positions := make([][3]float32, len(mesh.Positions))
		normals := make([][3]float32, len(mesh.Normals))
		uvs := make([][2]float32, len(mesh.UVs))
		indices := make([]uint32, len(mesh.Positions))
		for i := range mesh.Positions {
			positions[i] = mesh.Positions[i]
			indices[i] = uint32(i)
		}
		for i := range mesh.Normals {
			normals[i] = mesh.Normals[i]
		}
		for i := range mesh.UVs {
			uvs[i] = mesh.UVs[i]
		}

		posAccessor := modeler.WritePosition(doc, positions)
		normalAccessor := modeler.WriteNormal(doc, normals)
		uvAccessor := modeler.WriteTextureCoord(doc, uvs)
		indicesAccessor := modeler.WriteIndices(doc, indices)

		prim := &gltf.Primitive{
			Attributes: map[string]uint32{
				gltf.POSITION:   uint32(posAccessor),
				gltf.NORMAL:     uint32(normalAccessor),
				gltf.TEXCOORD_0: uint32(uvAccessor),
			},
			Indices:  gltf.Index(uint32(indicesAccessor)),
			Material: gltf.Index(uint32(idx)),
		}

		name := fmt.Sprintf("%s/%s", s.volume, s.material)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
		node := &gltf.Node{Name: name, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))}
		if m, ok := w.transforms[s.volume]; ok {
			node.Matrix = m
		}
		doc.Nodes = append(doc.Nodes, node)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	return doc
}

// Encode writes the current scene as GLB to out.
func (w *GLBWriter) Encode(out io.Writer) error {
	enc := gltf.NewEncoder(out)
	enc.AsBinary = true
	if err := enc.Encode(w.Document()); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

// Save writes the current scene to a .glb file.
func (w *GLBWriter) Save(path string) error {
	if err := gltf.SaveBinary(w.Document(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
