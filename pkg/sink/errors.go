package sink

import "errors"

var (
	// ErrFull is returned when the subscriber's buffer cannot take another value.
	ErrFull = errors.New("sink buffer is full")

	// ErrClosed is returned after the sink has been closed.
	ErrClosed = errors.New("sink is closed")

	// ErrEncode is returned when a value cannot be serialized for transport.
	ErrEncode = errors.New("failed to encode value")

	// ErrPublish is returned when the transport rejects a value.
	ErrPublish = errors.New("failed to publish value")

	// ErrNilPublisher is returned by Redis.Deliver when the sink has no client.
	ErrNilPublisher = errors.New("redis publisher cannot be nil")

	ErrFailedToParseRedisURL = errors.New("failed to parse redis connection url")
	ErrRedisNotReady         = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed     = errors.New("redis healthcheck failed")
)
