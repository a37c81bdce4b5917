package host

import (
	"time"

	"flappy-fish/internal/config"
)

// unfocusedFPS caps the frame rate while the window is in the background.
const unfocusedFPS = 30

// FPSLimiter paces the desktop loop when v-sync is off.
type FPSLimiter struct {
	next  time.Time
	limit func() int
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{limit: config.GetFPSLimit}
}

// delay advances the schedule by one frame and returns how long to wait.
// A zero limit disables pacing.
func (f *FPSLimiter) delay(now time.Time, unfocused bool) time.Duration {
	limit := f.limit()
	if unfocused && (limit <= 0 || limit > unfocusedFPS) {
		limit = unfocusedFPS
	}
	if limit <= 0 {
		f.next = time.Time{}
		return 0
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = now.Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	// resync after a hitch instead of rushing to catch up
	if late := now.Sub(f.next); late > target {
		f.next = now.Add(target)
	}
	return max(0, f.next.Sub(now))
}

// Wait blocks until the next frame is due. It sleeps most of the interval and
// spins the last few hundred microseconds.
func (f *FPSLimiter) Wait(unfocused bool) {
	d := f.delay(time.Now(), unfocused)
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	if d > 200*time.Microsecond {
		time.Sleep(d - 200*time.Microsecond)
	}
	for time.Now().Before(deadline) {
	}
}
