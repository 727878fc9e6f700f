package config

import "sync"

// VolumeSettings holds voxel volume geometry configuration
type VolumeSettings struct {
	mu        sync.RWMutex
	voxelSize float32
	uvScale   float32
}

var globalVolumeSettings = &VolumeSettings{
	voxelSize: 0.25, // 4 voxels per world unit
	uvScale:   1.0,  // world units per texture repeat
}

// GetVoxelSize returns the world-space edge length of a single voxel
func GetVoxelSize() float32 {
	globalVolumeSettings.mu.RLock()
	defer globalVolumeSettings.mu.RUnlock()
	return globalVolumeSettings.voxelSize
}

// SetVoxelSize sets the voxel edge length. Non-positive values are ignored.
func SetVoxelSize(size float32) {
	if size <= 0 {
		return
	}
	globalVolumeSettings.mu.Lock()
	defer globalVolumeSettings.mu.Unlock()
	globalVolumeSettings.voxelSize = size
}

// GetUVScale returns how many world units a full texture repeat spans
func GetUVScale() float32 {
	globalVolumeSettings.mu.RLock()
	defer globalVolumeSettings.mu.RUnlock()
	return globalVolumeSettings.uvScale
}

// SetUVScale sets the texture repeat distance. Non-positive values are ignored.
func SetUVScale(scale float32) {
	if scale <= 0 {
		return
	}
	globalVolumeSettings.mu.Lock()
	defer globalVolumeSettings.mu.Unlock()
	globalVolumeSettings.uvScale = scale
}
