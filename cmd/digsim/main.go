// Command digsim runs diggable terrain volumes headless: it carves random
// holes from above, lets the automaton settle them at a fixed tick rate and
// writes the final meshes to a .glb file.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"voxeldig/internal/config"
	"voxeldig/internal/terrain"
	"voxeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

type options struct {
	size      mgl32.Vec3
	volumes   int
	fill      world.Material
	half      bool
	digs      int
	digEvery  int
	seed      uint64
	goal      float64
	seconds   time.Duration
	frameRate int
	realtime  bool
	out       string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatal(err)
	}
	app, err := NewApp(opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() (options, error) {
	var (
		size     = flag.String("size", "4,2,4", "volume size in world units as x,y,z")
		voxel    = flag.Float64("voxel", float64(config.GetVoxelSize()), "voxel edge length")
		uvScale  = flag.Float64("uv", float64(config.GetUVScale()), "triplanar texture scale")
		fill     = flag.String("fill", "dirt", "fill material: dirt or sand")
		half     = flag.Bool("half", false, "fill only the lower half of each volume")
		volumes  = flag.Int("volumes", 1, "number of volumes placed side by side")
		digs     = flag.Int("digs", 12, "number of random digs")
		digEvery = flag.Int("dig-every", 5, "frames between digs")
		radius   = flag.Int("radius", config.GetDigRadius(), "dig radius in voxels")
		tps      = flag.Int("tps", config.GetSimTPS(), "automaton ticks per second")
		budget   = flag.Int("budget", config.GetDirtyBudget(), "dirty cells evaluated per tick, 0 for all")
		seed     = flag.Uint64("seed", 1, "random seed for dig positions")
		goal     = flag.Float64("goal", 0.5, "air ratio at which a volume counts as emptied")
		seconds  = flag.Duration("seconds", 20*time.Second, "simulated time limit")
		fps      = flag.Int("fps", 60, "frame rate of the update loop")
		realtime = flag.Bool("realtime", false, "pace frames against the wall clock")
		out      = flag.String("out", "terrain.glb", "output .glb path, empty to skip")
	)
	flag.Parse()

	var opts options
	dims, err := parseVec3(*size)
	if err != nil {
		return opts, fmt.Errorf("-size: %w", err)
	}
	material, ok := world.ParseMaterial(*fill)
	if !ok || !material.Granular() {
		return opts, fmt.Errorf("-fill: unknown granular material %q", *fill)
	}
	if *volumes < 1 {
		return opts, fmt.Errorf("-volumes must be at least 1")
	}

	config.SetVoxelSize(float32(*voxel))
	config.SetUVScale(float32(*uvScale))
	config.SetDigRadius(*radius)
	config.SetSimTPS(*tps)
	config.SetDirtyBudget(*budget)

	if *fps < 1 {
		*fps = 1
	}
	if *digEvery < 1 {
		*digEvery = 1
	}

	opts = options{
		size:      dims,
		volumes:   *volumes,
		fill:      material,
		half:      *half,
		digs:      *digs,
		digEvery:  *digEvery,
		seed:      *seed,
		goal:      *goal,
		seconds:   *seconds,
		frameRate: *fps,
		realtime:  *realtime,
		out:       *out,
	}
	return opts, nil
}

func parseVec3(s string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("want x,y,z, got %q", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

func (o options) fillMode() terrain.FillMode {
	if o.half {
		return terrain.FillHalf
	}
	return terrain.FillFull
}
