package config

import "sync"

// ToolSettings holds dig/fill tool configuration
type ToolSettings struct {
	mu          sync.RWMutex
	digDistance float32
	digRadius   int
}

var globalToolSettings = &ToolSettings{
	digDistance: 5.0,
	digRadius:   1,
}

// GetDigDistance returns the maximum tool reach in world units
func GetDigDistance() float32 {
	globalToolSettings.mu.RLock()
	defer globalToolSettings.mu.RUnlock()
	return globalToolSettings.digDistance
}

// SetDigDistance sets the maximum tool reach
func SetDigDistance(d float32) {
	globalToolSettings.mu.Lock()
	defer globalToolSettings.mu.Unlock()
	if d < 0.5 {
		d = 0.5
	}
	if d > 64 {
		d = 64
	}
	globalToolSettings.digDistance = d
}

// GetDigRadius returns the tool radius in voxels
func GetDigRadius() int {
	globalToolSettings.mu.RLock()
	defer globalToolSettings.mu.RUnlock()
	return globalToolSettings.digRadius
}

// SetDigRadius sets the tool radius in voxels
func SetDigRadius(r int) {
	globalToolSettings.mu.Lock()
	defer globalToolSettings.mu.Unlock()
	if r < 0 {
		r = 0
	}
	if r > 16 {
		r = 16
	}
	globalToolSettings.digRadius = r
}
