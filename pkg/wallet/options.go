package wallet

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Default policy values.
const (
	DefaultPollInterval      = 2 * time.Second
	DefaultPollMultiplier    = 1.05
	DefaultOperationDeadline = 5 * time.Minute
	DefaultCommandBuffer     = 100
)

// Option configures an Actor.
type Option func(*options)

type options struct {
	logger              *slog.Logger
	metrics             *Metrics
	registerer          prometheus.Registerer
	pollInterval        time.Duration
	pollMultiplier      float64
	operationDeadline   time.Duration
	commandBuffer       int
	qrCodeSize          int
	summaryRefreshDelay time.Duration
	now                 func() time.Time
}

func defaultOptions() options {
	return options{
		logger:            slog.Default(),
		pollInterval:      DefaultPollInterval,
		pollMultiplier:    DefaultPollMultiplier,
		operationDeadline: DefaultOperationDeadline,
		commandBuffer:     DefaultCommandBuffer,
		now:               time.Now,
	}
}

// WithLogger sets the logger. Handler records are logged with a context that
// carries the request id; install LogRequestID as a context extractor (as
// Config.Logger does) to have it on every record.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records actor metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithRegisterer creates metrics registered with reg. Ignored when
// WithMetrics is also given.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		if reg != nil {
			o.registerer = reg
		}
	}
}

// WithPollPolicy sets how confirmations are polled: the first re-check comes
// interval after the initial one, each following gap grows by multiplier, and
// polling stops once deadline has elapsed. Invalid values keep the defaults.
func WithPollPolicy(interval time.Duration, multiplier float64, deadline time.Duration) Option {
	return func(o *options) {
		if interval > 0 {
			o.pollInterval = interval
		}
		if multiplier > 1 {
			o.pollMultiplier = multiplier
		}
		if deadline > 0 {
			o.operationDeadline = deadline
		}
	}
}

// WithCommandBuffer sets the capacity of the command channel.
func WithCommandBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.commandBuffer = n
		}
	}
}

// WithArtifactQRCode renders payment requests as QR data URIs of size pixels.
func WithArtifactQRCode(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.qrCodeSize = size
		}
	}
}

// WithSummaryRefreshDelay delays the summary refresh that follows a
// completed operation.
func WithSummaryRefreshDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.summaryRefreshDelay = d
		}
	}
}

// WithClock replaces time.Now for scheduling and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
