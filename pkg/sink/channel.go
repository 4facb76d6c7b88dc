package sink

import (
	"context"
	"sync"
)

// Channel delivers values into a bounded buffered channel.
type Channel[T any] struct {
	ch     chan T
	closed bool
	mu     sync.RWMutex
}

// NewChannel creates a channel sink. A minimum buffer of 1 is enforced.
func NewChannel[T any](buffer int) *Channel[T] {
	return &Channel[T]{ch: make(chan T, max(buffer, 1))}
}

// C returns the receive side. It is closed by Close.
func (c *Channel[T]) C() <-chan T {
	return c.ch
}

// Deliver sends v without blocking. It returns ErrFull when the buffer is
// full and the value was dropped.
func (c *Channel[T]) Deliver(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClosed
	}

	select {
	case c.ch <- v:
		return nil
	default:
		return ErrFull
	}
}

// Len returns the number of buffered values.
func (c *Channel[T]) Len() int {
	return len(c.ch)
}

// Close closes the receive channel. Buffered values remain readable.
// It is safe to call Close multiple times.
func (c *Channel[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.ch)
		c.closed = true
	}
	return nil
}
