// Package clock provides the schedulers that drive playback: a virtual clock
// for tests and offline rendering, and a single-goroutine event loop for
// real-time native playback.
package clock

import "time"

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it already ran or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay. Implementations never run the
// callback synchronously from AfterFunc, and never run two callbacks at once.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Seconds converts a duration in seconds to a time.Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
