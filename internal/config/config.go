package config

import "sync"

// SimSettings holds the automaton cadence configuration
type SimSettings struct {
	mu                sync.RWMutex
	simTPS            int
	maxTicksPerUpdate int
	dirtyBudget       int
}

var globalSimSettings = &SimSettings{
	simTPS:            30,
	maxTicksPerUpdate: 4,
	dirtyBudget:       0, // unbounded
}

// GetSimTPS returns the automaton tick rate in ticks per second
func GetSimTPS() int {
	globalSimSettings.mu.RLock()
	defer globalSimSettings.mu.RUnlock()
	return globalSimSettings.simTPS
}

// SetSimTPS sets the automaton tick rate
func SetSimTPS(tps int) {
	globalSimSettings.mu.Lock()
	defer globalSimSettings.mu.Unlock()

	if tps < 1 {
		tps = 1
	}
	if tps > 240 {
		tps = 240
	}

	globalSimSettings.simTPS = tps
}

// GetMaxTicksPerUpdate returns how many catch-up ticks a single update may run
func GetMaxTicksPerUpdate() int {
	globalSimSettings.mu.RLock()
	defer globalSimSettings.mu.RUnlock()
	return globalSimSettings.maxTicksPerUpdate
}

// SetMaxTicksPerUpdate sets the catch-up cap (minimum 1)
func SetMaxTicksPerUpdate(n int) {
	globalSimSettings.mu.Lock()
	defer globalSimSettings.mu.Unlock()
	if n < 1 {
		n = 1
	}
	globalSimSettings.maxTicksPerUpdate = n
}

// GetDirtyBudget returns the maximum number of dirty cells evaluated per tick.
// Zero means the whole dirty set is evaluated.
func GetDirtyBudget() int {
	globalSimSettings.mu.RLock()
	defer globalSimSettings.mu.RUnlock()
	return globalSimSettings.dirtyBudget
}

// SetDirtyBudget sets the per-tick dirty cell budget
func SetDirtyBudget(n int) {
	globalSimSettings.mu.Lock()
	defer globalSimSettings.mu.Unlock()
	if n < 0 {
		n = 0
	}
	globalSimSettings.dirtyBudget = n
}
