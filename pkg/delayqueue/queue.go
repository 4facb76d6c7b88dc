package delayqueue

import (
	"context"
	"sync"
	"time"
)

type item[M any] struct {
	msg      M
	maturity *time.Time
}

// Queue is a maturity-gated FIFO. Safe for concurrent producers and one consumer.
type Queue[M any] struct {
	mu     sync.Mutex
	items  []item[M]
	closed bool

	// signal coalesces arrivals into at most one pending wakeup.
	signal chan struct{}
	done   chan struct{}

	now func() time.Time
}

// New creates an empty queue.
func New[M any](opts ...Option) *Queue[M] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Queue[M]{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
		now:    o.now,
	}
}

// Producer is a lightweight enqueue-only handle. Copies share the same queue.
type Producer[M any] struct {
	q *Queue[M]
}

// Producer returns a handle that can only enqueue.
func (q *Queue[M]) Producer() Producer[M] {
	return Producer[M]{q: q}
}

// Enqueue adds msg to the queue. A nil maturity means deliverable now.
func (p Producer[M]) Enqueue(msg M, maturity *time.Time) error {
	return p.q.Enqueue(msg, maturity)
}

// EnqueueAfter adds msg with maturity now+d.
func (p Producer[M]) EnqueueAfter(msg M, d time.Duration) error {
	return p.q.EnqueueAfter(msg, d)
}

// Enqueue adds msg to the queue and wakes the consumer. It never blocks.
func (q *Queue[M]) Enqueue(msg M, maturity *time.Time) error {
	var m *time.Time
	if maturity != nil {
		t := *maturity
		m = &t
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, item[M]{msg: msg, maturity: m})
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return nil
}

// EnqueueAfter adds msg with maturity now+d. Non-positive d means deliverable now.
func (q *Queue[M]) EnqueueAfter(msg M, d time.Duration) error {
	if d <= 0 {
		return q.Enqueue(msg, nil)
	}
	at := q.now().Add(d)
	return q.Enqueue(msg, &at)
}

// Dequeue blocks until a message is mature and returns it. It returns
// ctx.Err() when ctx is done, and ErrClosed once a closed queue is empty.
func (q *Queue[M]) Dequeue(ctx context.Context) (M, error) {
	var zero M
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return zero, ErrClosed
			}
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-q.signal:
			case <-q.done:
			}
			continue
		}

		now := q.now()
		if msg, ok := q.popMature(now); ok {
			q.mu.Unlock()
			return msg, nil
		}
		// a clock that moved backward must not produce a negative wait
		wait := max(q.earliest(now).Sub(now), 0)
		closed := q.closed
		q.mu.Unlock()

		// a closed queue gets no new arrivals, only timers
		signal := q.signal
		if closed {
			signal = nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		case <-signal:
			timer.Stop()
		}
	}
}

// popMature removes and returns the first inserted message whose maturity
// has passed. Caller holds q.mu.
func (q *Queue[M]) popMature(now time.Time) (M, bool) {
	for i, it := range q.items {
		if it.maturity == nil || !it.maturity.After(now) {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return it.msg, true
		}
	}
	var zero M
	return zero, false
}

// earliest returns the minimum effective maturity. Caller holds q.mu and
// guarantees the queue is not empty.
func (q *Queue[M]) earliest(now time.Time) time.Time {
	var first time.Time
	for i, it := range q.items {
		at := now
		if it.maturity != nil {
			at = *it.maturity
		}
		if i == 0 || at.Before(first) {
			first = at
		}
	}
	return first
}

// Len returns the number of queued messages, mature or not.
func (q *Queue[M]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops accepting new messages. It is safe to call more than once.
func (q *Queue[M]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}
