package terrain

import "time"

// Stepper converts variable frame deltas into a whole number of fixed-rate
// automaton ticks, so settling speed does not depend on frame rate.
type Stepper struct {
	step        time.Duration
	accumulator time.Duration
	maxTicks    int
}

// NewStepper targets tps ticks per second and runs at most maxTicks per
// Advance call.
func NewStepper(tps, maxTicks int) *Stepper {
	s := &Stepper{}
	s.SetTPS(tps)
	s.SetMaxTicks(maxTicks)
	return s
}

// SetMaxTicks changes the per-Advance cap (minimum 1).
func (s *Stepper) SetMaxTicks(n int) {
	if n < 1 {
		n = 1
	}
	s.maxTicks = n
}

// SetTPS changes the tick rate.
func (s *Stepper) SetTPS(tps int) {
	if tps <= 0 {
		tps = 30
	}
	s.step = time.Second / time.Duration(tps)
}

// Step returns the fixed tick duration.
func (s *Stepper) Step() time.Duration { return s.step }

// Advance adds dt to the accumulator and returns how many ticks are due.
// Ticks beyond the cap are dropped rather than queued.
func (s *Stepper) Advance(dt time.Duration) int {
	if dt > 0 {
		s.accumulator += dt
	}
	n := int(s.accumulator / s.step)
	s.accumulator -= time.Duration(n) * s.step
	if n > s.maxTicks {
		n = s.maxTicks
	}
	return n
}
