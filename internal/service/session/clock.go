package session

import "time"

// Clock supplies timestamps and the simulated responder latency.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Delay is the inclusive range the reply latency is drawn from.
type Delay struct {
	Min time.Duration
	Max time.Duration
}
