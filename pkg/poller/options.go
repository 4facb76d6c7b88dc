package poller

import "time"

// DefaultMultiplier is the interval growth factor applied after every check.
const DefaultMultiplier = 1.05

// Option configures a Scheduler.
type Option func(*options)

type options struct {
	multiplier float64
	now        func() time.Time
}

// WithMultiplier sets the interval growth factor. Values not above 1 are ignored.
func WithMultiplier(m float64) Option {
	return func(o *options) {
		if m > 1 {
			o.multiplier = m
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
