package main

import (
	"log"

	"voxeldig/internal/physics"
)

// colliderLog stands in for a physics engine and reports collider changes.
type colliderLog struct {
	cells map[string]int
}

func newColliderLog() *colliderLog {
	return &colliderLog{cells: make(map[string]int)}
}

func (c *colliderLog) ReplaceCollider(volume string, collider *physics.VoxelCollider) {
	prev, had := c.cells[volume]
	n := len(collider.Positions)
	c.cells[volume] = n
	if !had {
		lo, hi := collider.Bounds()
		log.Printf("collider %s: %d cells, bounds %v..%v", volume, n, lo, hi)
		return
	}
	if n != prev {
		log.Printf("collider %s: %d -> %d cells", volume, prev, n)
	}
}

func (c *colliderLog) RemoveCollider(volume string) {
	delete(c.cells, volume)
	log.Printf("collider %s removed", volume)
}
