package terrain

import (
	"context"
	"fmt"
	"testing"
	"time"

	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestManager(t *testing.T, names ...string) (*Manager, *recorder) {
	t.Helper()
	rec := newRecorder()
	m := NewManager(rec, rec)
	for i, name := range names {
		offset := mgl32.Vec3{float32(i) * 10, 0, 0}
		_, err := m.Create(VolumeSpec{
			Name:      name,
			Min:       offset,
			Max:       offset.Add(mgl32.Vec3{1, 1, 1}),
			VoxelSize: 0.25,
		})
		if err != nil {
			t.Fatalf("Create(%q): %v", name, err)
		}
	}
	return m, rec
}

func TestManagerRegistry(t *testing.T) {
	m, _ := newTestManager(t, "b", "a", "c")
	var names []string
	for _, v := range m.Volumes() {
		names = append(names, v.Name())
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("Volumes() order = %v", names)
	}
	if _, err := m.Create(VolumeSpec{Name: "a", Max: mgl32.Vec3{1, 1, 1}, VoxelSize: 0.25}); err == nil {
		t.Fatalf("duplicate name was accepted")
	}
	if _, err := m.Create(VolumeSpec{Name: "bad", VoxelSize: 0.25}); err == nil {
		t.Fatalf("degenerate volume was accepted")
	}

	if v, ok := m.VolumeAt(mgl32.Vec3{10.5, 0.5, 0.5}); !ok || v.Name() != "b" {
		t.Fatalf("VolumeAt picked %v", v)
	}
	if _, ok := m.VolumeAt(mgl32.Vec3{5, 0.5, 0.5}); ok {
		t.Fatalf("VolumeAt matched a point between volumes")
	}
}

func TestManagerUpdatePublishes(t *testing.T) {
	m, rec := newTestManager(t, "a", "b")
	if err := m.Update(context.Background(), time.Second/30); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a", "b"} {
		if rec.meshes[slotKey{name, world.MaterialDirt}] == nil {
			t.Fatalf("no dirt mesh for %q", name)
		}
		if rec.colliders[name] == nil {
			t.Fatalf("no collider for %q", name)
		}
	}
	updates := rec.meshUpdates

	// nothing changed
	if err := m.Update(context.Background(), time.Second/30); err != nil {
		t.Fatal(err)
	}
	if rec.meshUpdates != updates {
		t.Fatalf("unchanged volumes were republished")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Update(ctx, time.Second/30); err == nil {
		t.Fatalf("cancelled update returned nil")
	}
}

func TestManagerUpdateCancelledMidwayKeepsOutputs(t *testing.T) {
	names := make([]string, 64)
	for i := range names {
		names[i] = fmt.Sprintf("v%03d", i)
	}
	m, rec := newTestManager(t, names...)

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(time.Millisecond, cancel)
	defer timer.Stop()
	// either refused up front or run to completion; never half done
	_ = m.Update(ctx, time.Second/30)
	cancel()

	if err := m.Update(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if rec.meshes[slotKey{name, world.MaterialDirt}] == nil {
			t.Fatalf("volume %s never published its mesh", name)
		}
		if rec.colliders[name] == nil {
			t.Fatalf("volume %s never published its collider", name)
		}
	}
}

func TestManagerDigAndFill(t *testing.T) {
	m, _ := newTestManager(t, "a")
	v, _ := m.Get("a")
	origin := mgl32.Vec3{0.6, 3, 0.6}
	down := mgl32.Vec3{0, -2, 0}

	if !m.Dig(origin, down, 0) {
		t.Fatalf("dig missed the volume")
	}
	if got, _ := v.Grid().Get(world.Pos{2, 3, 2}); got != world.MaterialAir {
		t.Fatalf("top cell under the ray = %v, want air", got)
	}
	if got, _ := v.Grid().Get(world.Pos{2, 2, 2}); got != world.MaterialDirt {
		t.Fatalf("dig went too deep")
	}

	if !m.Fill(origin, down, 0) {
		t.Fatalf("fill missed the volume")
	}
	if got, _ := v.Grid().Get(world.Pos{2, 3, 2}); got != world.MaterialDirt {
		t.Fatalf("fill did not restore the dug cell")
	}

	if m.Dig(origin, mgl32.Vec3{0, 1, 0}, 1) {
		t.Fatalf("dig pointing away reported a hit")
	}
	if m.Dig(origin, mgl32.Vec3{}, 1) {
		t.Fatalf("zero direction reported a hit")
	}
}

func TestManagerCastPicksNearest(t *testing.T) {
	m, _ := newTestManager(t, "a", "b")
	// ray along +x at mid height passes through a first, then b
	hit, ok := m.Cast(mgl32.Vec3{-1, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 20)
	if !ok || hit.Volume.Name() != "a" {
		t.Fatalf("cast hit %v, want a", hit.Volume)
	}
	if hit.HitPosition != (world.Pos{0, 2, 2}) {
		t.Fatalf("hit cell = %v", hit.HitPosition)
	}
	hit, ok = m.Cast(mgl32.Vec3{12, 0.5, 0.5}, mgl32.Vec3{-1, 0, 0}, 20)
	if !ok || hit.Volume.Name() != "b" {
		t.Fatalf("reverse cast hit %v, want b", hit.Volume)
	}
}

func TestManagerRemove(t *testing.T) {
	m, rec := newTestManager(t, "a")
	if err := m.Update(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	m.Remove("a")
	if _, ok := m.Get("a"); ok {
		t.Fatalf("volume still registered")
	}
	if len(rec.meshes) != 0 || len(rec.colliders) != 0 {
		t.Fatalf("removed volume left %d meshes and %d colliders", len(rec.meshes), len(rec.colliders))
	}
	m.Remove("a")
}
