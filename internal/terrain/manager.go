package terrain

import (
	"context"
	"fmt"
	"sort"
	"time"

	"voxeldig/internal/config"
	"voxeldig/internal/physics"
	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/syncmap"
)

// Manager owns every live terrain volume of a level and drives them once per frame.
type Manager struct {
	volumes syncmap.Map // name -> *Volume
	render  RenderSink
	physics PhysicsSink
}

// NewManager creates a manager publishing to the given sinks. Either may be nil.
func NewManager(render RenderSink, phys PhysicsSink) *Manager {
	return &Manager{render: render, physics: phys}
}

// Add registers a volume under its name.
func (m *Manager) Add(v *Volume) error {
	if _, loaded := m.volumes.LoadOrStore(v.Name(), v); loaded {
		return fmt.Errorf("terrain: volume %q already registered", v.Name())
	}
	return nil
}

// Create builds a volume from spec and registers it.
func (m *Manager) Create(spec VolumeSpec) (*Volume, error) {
	v, err := NewVolume(spec)
	if err != nil {
		return nil, fmt.Errorf("create volume %q: %w", spec.Name, err)
	}
	if err := m.Add(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Remove drops a volume and retracts its geometry from the sinks.
func (m *Manager) Remove(name string) {
	val, ok := m.volumes.LoadAndDelete(name)
	if !ok {
		return
	}
	v := val.(*Volume)
	if m.render != nil {
		for material, shown := range v.shownMeshes {
			if shown {
				m.render.ClearMesh(name, material)
			}
		}
	}
	if m.physics != nil {
		m.physics.RemoveCollider(name)
	}
}

// Get looks a volume up by name.
func (m *Manager) Get(name string) (*Volume, bool) {
	val, ok := m.volumes.Load(name)
	if !ok {
		return nil, false
	}
	return val.(*Volume), true
}

// Volumes returns all registered volumes ordered by name.
func (m *Manager) Volumes() []*Volume {
	var out []*Volume
	m.volumes.Range(func(_, val any) bool {
		out = append(out, val.(*Volume))
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// VolumeAt returns the first volume (by name) whose source bounds contain p.
func (m *Manager) VolumeAt(p mgl32.Vec3) (*Volume, bool) {
	for _, v := range m.Volumes() {
		if v.Contains(p) {
			return v, true
		}
	}
	return nil, false
}

// Update advances every volume by dt. Volumes are independent, so each is
// ticked and remeshed on its own goroutine; outputs are then published on the
// calling goroutine in name order. Cancellation is only honoured before any
// volume starts: once a remesh has consumed a volume's flag its output must
// reach the sinks.
func (m *Manager) Update(ctx context.Context, dt time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	volumes := m.Volumes()
	outputs := make([]*Output, len(volumes))

	var g errgroup.Group
	for i, v := range volumes {
		g.Go(func() error {
			if out, ok := v.Update(dt); ok {
				outputs[i] = out
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, v := range volumes {
		v.Publish(outputs[i], m.render, m.physics)
	}
	return nil
}

// ToolHit identifies where a tool ray met a volume.
type ToolHit struct {
	Volume *Volume
	physics.RaycastResult
}

// Cast finds the nearest volume hit by a world-space ray within maxDist.
func (m *Manager) Cast(origin, direction mgl32.Vec3, maxDist float32) (ToolHit, bool) {
	if direction.Len() == 0 {
		return ToolHit{}, false
	}
	direction = direction.Normalize()
	best := ToolHit{}
	found := false
	for _, v := range m.Volumes() {
		r := v.Raycast(origin, direction, maxDist)
		if !r.Hit {
			continue
		}
		if !found || r.Distance < best.Distance {
			best = ToolHit{Volume: v, RaycastResult: r}
			found = true
		}
	}
	return best, found
}

// Dig clears a sphere of radius voxels around the first voxel hit by the ray.
func (m *Manager) Dig(origin, direction mgl32.Vec3, radius int) bool {
	hit, ok := m.Cast(origin, direction, config.GetDigDistance())
	if !ok {
		return false
	}
	hit.Volume.Grid().SetRegion(hit.HitPosition, radius, world.MaterialAir)
	return true
}

// Fill places dirt in a sphere of radius voxels around the empty cell in
// front of the first voxel hit by the ray.
func (m *Manager) Fill(origin, direction mgl32.Vec3, radius int) bool {
	hit, ok := m.Cast(origin, direction, config.GetDigDistance())
	if !ok || !hit.HasAdjacent {
		return false
	}
	hit.Volume.Grid().SetRegion(hit.AdjacentPosition, radius, world.MaterialDirt)
	return true
}
