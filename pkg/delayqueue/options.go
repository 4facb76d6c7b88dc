package delayqueue

import "time"

// Option configures a Queue.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for maturity comparisons. Timers still run on
// the wall clock, so a fake clock is only useful for already-mature messages.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
