package main

import "time"

// FrameLimiter paces the update loop to a target frame rate.
type FrameLimiter struct {
	target time.Duration
	next   time.Time
}

func NewFrameLimiter(fps int) *FrameLimiter {
	if fps < 1 {
		fps = 1
	}
	return &FrameLimiter{target: time.Second / time.Duration(fps)}
}

// Wait blocks until the next frame is due. Sleeps most of the way and spins
// the last few microseconds.
func (f *FrameLimiter) Wait() {
	if f.next.IsZero() {
		f.next = time.Now().Add(f.target)
	} else {
		f.next = f.next.Add(f.target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// resync after a hitch instead of bursting to catch up
	if late := -time.Until(f.next); late > f.target {
		f.next = time.Now().Add(f.target)
	}
}
