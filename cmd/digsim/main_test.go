package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"voxeldig/internal/profiling"
	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseVec3(t *testing.T) {
	v, err := parseVec3("4, 2.5,1")
	if err != nil {
		t.Fatal(err)
	}
	if v != (mgl32.Vec3{4, 2.5, 1}) {
		t.Fatalf("parseVec3 = %v", v)
	}
	for _, bad := range []string{"", "1,2", "1,2,x", "1,2,3,4"} {
		if _, err := parseVec3(bad); err == nil {
			t.Fatalf("parseVec3(%q) accepted", bad)
		}
	}
}

func TestAppSettlesAndExports(t *testing.T) {
	opts := options{
		size:      mgl32.Vec3{1, 1, 1},
		volumes:   2,
		fill:      world.MaterialSand,
		digs:      3,
		digEvery:  1,
		seed:      7,
		goal:      0.5,
		seconds:   30 * time.Second,
		frameRate: 60,
		out:       filepath.Join(t.TempDir(), "out.glb"),
	}
	a, err := NewApp(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	if a.digsDone != 3 || !a.settled() {
		t.Fatalf("digs=%d settled=%v", a.digsDone, a.settled())
	}
	if a.glb.Len() != 2 {
		t.Fatalf("exported %d meshes, want one sand mesh per volume", a.glb.Len())
	}
}

func TestFrameBreakdown(t *testing.T) {
	profiling.ResetFrame()
	profiling.Count("world.Moves", 3)
	stop := profiling.Track("meshing.Sample")
	stop()
	got := frameBreakdown()
	for _, want := range []string{"world=", "meshing=", "terrain=", "physics=", "moves=3", "remeshes=0"} {
		if !strings.Contains(got, want) {
			t.Fatalf("frameBreakdown() = %q, missing %q", got, want)
		}
	}
}
