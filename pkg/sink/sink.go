package sink

import "context"

// Sink accepts values for a single subscriber. Implementations must be safe
// for concurrent use and must not block on a slow subscriber.
type Sink[T any] interface {
	Deliver(ctx context.Context, v T) error
}

// Func adapts a callback to a Sink. The callback runs on the caller's goroutine
// and should return quickly.
type Func[T any] func(ctx context.Context, v T) error

// Deliver calls f.
func (f Func[T]) Deliver(ctx context.Context, v T) error {
	return f(ctx, v)
}
