package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"voxeldig/internal/config"
	"voxeldig/internal/export"
	"voxeldig/internal/profiling"
	"voxeldig/internal/terrain"

	"github.com/go-gl/mathgl/mgl32"
)

// App drives the terrain manager frame by frame.
type App struct {
	opts      options
	manager   *terrain.Manager
	glb       *export.GLBWriter
	colliders *colliderLog
	rng       *rand.Rand
	limiter   *FrameLimiter

	frame    int
	digsDone int
	elapsed  time.Duration
	lastTime time.Time
	emptied  map[string]bool
}

func NewApp(opts options) (*App, error) {
	a := &App{
		opts:      opts,
		glb:       export.NewGLBWriter(),
		colliders: newColliderLog(),
		rng:       rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15)),
		limiter:   NewFrameLimiter(opts.frameRate),
		emptied:   make(map[string]bool),
	}
	a.manager = terrain.NewManager(a.glb, a.colliders)

	// one unit gap between neighbouring volumes
	for i := range opts.volumes {
		lo := mgl32.Vec3{float32(i) * (opts.size[0] + 1), 0, 0}
		v, err := a.manager.Create(terrain.VolumeSpec{
			Name: fmt.Sprintf("volume-%d", i),
			Min:  lo,
			Max:  lo.Add(opts.size),
			Fill: opts.fill,
			Mode: opts.fillMode(),
		})
		if err != nil {
			return nil, err
		}
		a.glb.SetTransform(v.Name(), v.Transform())
		b := v.Grid().Bounds()
		log.Printf("volume %s: %dx%dx%d voxels of %s, air %.3f", v.Name(), b[0], b[1], b[2], opts.fill, v.AirRatio())
	}
	return a, nil
}

// Run steps frames until the time limit passes or every dig has been made
// and all volumes have settled, then writes the output file.
func (a *App) Run() error {
	ctx := context.Background()
	a.lastTime = time.Now()
	for a.elapsed < a.opts.seconds {
		if err := a.tick(ctx); err != nil {
			return err
		}
		if a.digsDone >= a.opts.digs && a.settled() {
			log.Printf("settled after %d frames (%v simulated)", a.frame, a.elapsed)
			break
		}
	}

	for _, v := range a.manager.Volumes() {
		log.Printf("volume %s: air %.3f fingerprint %016x quiescent=%v", v.Name(), v.AirRatio(), v.Grid().Fingerprint(), v.Quiescent())
	}
	if a.opts.out == "" {
		return nil
	}
	if err := a.glb.Save(a.opts.out); err != nil {
		return err
	}
	log.Printf("wrote %d meshes to %s", a.glb.Len(), a.opts.out)
	return nil
}

func (a *App) tick(ctx context.Context) error {
	profiling.ResetFrame()
	startTick := time.Now()

	dt := time.Second / time.Duration(a.opts.frameRate)
	if a.opts.realtime {
		dt = startTick.Sub(a.lastTime)
		a.lastTime = startTick
	}

	if a.frame%a.opts.digEvery == 0 && a.digsDone < a.opts.digs {
		a.dig()
	}
	if err := a.manager.Update(ctx, dt); err != nil {
		return fmt.Errorf("frame %d: %w", a.frame, err)
	}
	a.frame++
	a.elapsed += dt

	for _, v := range a.manager.Volumes() {
		if !a.emptied[v.Name()] && v.Emptied(float32(a.opts.goal)) {
			a.emptied[v.Name()] = true
			log.Printf("volume %s emptied past %.2f at frame %d", v.Name(), a.opts.goal, a.frame)
		}
	}

	processingDuration := time.Since(startTick)
	if processingDuration > 16*time.Millisecond {
		log.Printf("Slow frame: %v. %s top: %s", processingDuration, frameBreakdown(), profiling.TopN(5))
	}

	if a.opts.realtime {
		a.limiter.Wait()
	}
	return nil
}

// dig casts straight down at a random point above a random volume.
func (a *App) dig() {
	volumes := a.manager.Volumes()
	v := volumes[a.rng.IntN(len(volumes))]
	lo, hi := v.WorldBounds()
	origin := mgl32.Vec3{
		lo[0] + a.rng.Float32()*(hi[0]-lo[0]),
		hi[1] + 0.5,
		lo[2] + a.rng.Float32()*(hi[2]-lo[2]),
	}
	a.digsDone++
	if !a.manager.Dig(origin, mgl32.Vec3{0, -1, 0}, config.GetDigRadius()) {
		log.Printf("dig %d at %v missed", a.digsDone, origin)
	}
}

func (a *App) settled() bool {
	for _, v := range a.manager.Volumes() {
		if !v.Quiescent() {
			return false
		}
	}
	return true
}

// frameBreakdown summarises the current frame per subsystem.
func frameBreakdown() string {
	ms := func(d time.Duration) float64 { return float64(d.Microseconds()) / 1000.0 }
	return fmt.Sprintf("world=%.1fms meshing=%.1fms terrain=%.1fms physics=%.1fms moves=%d remeshes=%d",
		ms(profiling.SumWithPrefix("world.")),
		ms(profiling.SumWithPrefix("meshing.")),
		ms(profiling.SumWithPrefix("terrain.")),
		ms(profiling.SumWithPrefix("physics.")),
		profiling.Counter("world.Moves"),
		profiling.Counter("terrain.Remeshes"))
}
