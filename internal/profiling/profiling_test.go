package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAndTopN(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["slow"] = 5 * time.Millisecond
	frameTotals["fast"] = 1 * time.Millisecond
	mu.Unlock()

	got := TopN(1)
	if got != "slow:5.0ms" {
		t.Fatalf("TopN(1) = %q, want %q", got, "slow:5.0ms")
	}
	if all := TopN(10); !strings.HasPrefix(all, "slow:") || !strings.Contains(all, "fast:1.0ms") {
		t.Fatalf("TopN(10) = %q", all)
	}

	stop := Track("tracked")
	stop()
	if _, ok := Snapshot()["tracked"]; !ok {
		t.Fatalf("Track did not record an entry")
	}
}

func TestCountResets(t *testing.T) {
	ResetFrame()
	Count("moves", 3)
	Count("moves", 2)
	Count("moves", 0)
	if got := Counter("moves"); got != 5 {
		t.Fatalf("Counter = %d, want 5", got)
	}
	ResetFrame()
	if got := Counter("moves"); got != 0 {
		t.Fatalf("Counter after reset = %d, want 0", got)
	}
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["world.Simulate"] = 2 * time.Millisecond
	frameTotals["world.Other"] = 3 * time.Millisecond
	frameTotals["meshing.Sample"] = 7 * time.Millisecond
	mu.Unlock()

	if got := SumWithPrefix("world."); got != 5*time.Millisecond {
		t.Fatalf("SumWithPrefix(world.) = %v", got)
	}
	if got := SumWithPrefix("physics."); got != 0 {
		t.Fatalf("SumWithPrefix(physics.) = %v", got)
	}
}
