package physics_test

import (
	"testing"

	"voxeldig/internal/physics"
	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCollides(t *testing.T) {
	g := world.NewGrid(world.Pos{4, 4, 4})
	g.Set(world.Pos{1, 1, 1}, world.MaterialDirt)

	tests := []struct {
		name     string
		min, max mgl32.Vec3
		want     bool
	}{
		{"overlapping", mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1.5, 1.5, 1.5}, true},
		{"inside", mgl32.Vec3{1.2, 1.2, 1.2}, mgl32.Vec3{1.8, 1.8, 1.8}, true},
		{"touching face", mgl32.Vec3{2, 1, 1}, mgl32.Vec3{3, 2, 2}, false},
		{"empty space", mgl32.Vec3{2.5, 2.5, 2.5}, mgl32.Vec3{3.5, 3.5, 3.5}, false},
		{"outside grid", mgl32.Vec3{-3, -3, -3}, mgl32.Vec3{-1, -1, -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := physics.Collides(g, 1, tt.min, tt.max); got != tt.want {
				t.Errorf("Collides(%v, %v) = %v, want %v", tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestSurfaceHeight(t *testing.T) {
	g := world.NewGrid(world.Pos{2, 6, 2})
	for y := range 3 {
		g.Set(world.Pos{0, y, 0}, world.MaterialDirt)
	}
	h, ok := physics.SurfaceHeight(g, 0.5, 0.2, 0.2)
	if !ok || h != 1.5 {
		t.Fatalf("SurfaceHeight = %v, %v; want 1.5, true", h, ok)
	}
	if _, ok := physics.SurfaceHeight(g, 0.5, 0.7, 0.7); ok {
		t.Fatalf("empty column reported a surface")
	}
	if _, ok := physics.SurfaceHeight(g, 0.5, -1, 0); ok {
		t.Fatalf("column outside the grid reported a surface")
	}
}

func TestBuildVoxelCollider(t *testing.T) {
	g := world.NewGrid(world.Pos{2, 2, 2})
	if c, ok := physics.BuildVoxelCollider(g, 0.25); ok || c != nil {
		t.Fatalf("empty grid should produce no collider")
	}

	g.Set(world.Pos{0, 0, 0}, world.MaterialDirt)
	g.Set(world.Pos{1, 1, 0}, world.MaterialBarrier)
	c, ok := physics.BuildVoxelCollider(g, 0.25)
	if !ok {
		t.Fatalf("expected a collider")
	}
	if len(c.Positions) != 2 || c.VoxelSize != 0.25 {
		t.Fatalf("collider = %+v", c)
	}
	min, max := c.Bounds()
	if min != (mgl32.Vec3{0, 0, 0}) || max != (mgl32.Vec3{0.5, 0.5, 0.25}) {
		t.Fatalf("bounds = %v..%v", min, max)
	}
}
