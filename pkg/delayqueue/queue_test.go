package delayqueue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mintshell/pkg/delayqueue"
)

func dequeueWithin(t *testing.T, q *delayqueue.Queue[string], d time.Duration) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return q.Dequeue(ctx)
}

func TestQueue_ImmediateMessages(t *testing.T) {
	t.Parallel()

	q := delayqueue.New[string]()
	require.NoError(t, q.Enqueue("a", nil))
	require.NoError(t, q.Enqueue("b", nil))
	require.NoError(t, q.Enqueue("c", nil))
	assert.Equal(t, 3, q.Len())

	for _, want := range []string{"a", "b", "c"} {
		got, err := dequeueWithin(t, q, time.Second)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_MatureBeforeImmature(t *testing.T) {
	t.Parallel()

	q := delayqueue.New[string]()
	require.NoError(t, q.EnqueueAfter("later", 80*time.Millisecond))
	require.NoError(t, q.Enqueue("now", nil))

	start := time.Now()
	got, err := dequeueWithin(t, q, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "now", got)

	got, err = dequeueWithin(t, q, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "later", got)
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestQueue_TieBreakByInsertionOrder(t *testing.T) {
	t.Parallel()

	q := delayqueue.New[string]()
	past := time.Now().Add(-time.Minute)
	earlier := time.Now().Add(-2 * time.Minute)

	require.NoError(t, q.Enqueue("first", &past))
	require.NoError(t, q.Enqueue("second", &earlier))
	require.NoError(t, q.Enqueue("third", nil))

	for _, want := range []string{"first", "second", "third"} {
		got, err := dequeueWithin(t, q, time.Second)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestQueue_NeverDeliversEarly(t *testing.T) {
	t.Parallel()

	q := delayqueue.New[int]()
	delays := []time.Duration{60 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond}
	due := make(map[int]time.Time, len(delays))
	for i, d := range delays {
		at := time.Now().Add(d)
		due[i] = at
		require.NoError(t, q.Enqueue(i, &at))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var order []int
	for range delays {
		got, err := q.Dequeue(ctx)
		require.NoError(t, err)
		assert.False(t, time.Now().Before(due[got]), "message %d delivered before maturity", got)
		order = append(order, got)
	}
	assert.Equal(t, []int{1, 2, 0}, order)
}

func TestQueue_ArrivalWakesSleepingConsumer(t *testing.T) {
	t.Parallel()

	q := delayqueue.New[string]()
	require.NoError(t, q.EnqueueAfter("slow", time.Hour))

	result := make(chan string, 1)
	go func() {
		msg, err := dequeueWithin(t, q, 2*time.Second)
		if err == nil {
			result <- msg
		}
		close(result)
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, q.Producer().Enqueue("fast", nil))

	select {
	case got := <-result:
		assert.Equal(t, "fast", got)
	case <-time.After(time.Second):
		t.Fatal("consumer was not woken by a new arrival")
	}
	assert.Equal(t, 1, q.Len())
}

func TestQueue_ContextCancellation(t *testing.T) {
	t.Parallel()

	q := delayqueue.New[string]()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, q.EnqueueAfter("x", time.Hour))
	ctx2, cancel2 := context.WithCancel(context.Background())
	cancel2()
	_, err = q.Dequeue(ctx2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, q.Len())
}

func TestQueue_Close(t *testing.T) {
	t.Parallel()

	t.Run("rejects producers", func(t *testing.T) {
		t.Parallel()

		q := delayqueue.New[string]()
		q.Close()
		q.Close()
		assert.ErrorIs(t, q.Enqueue("x", nil), delayqueue.ErrClosed)
		assert.ErrorIs(t, q.Producer().EnqueueAfter("x", time.Second), delayqueue.ErrClosed)
	})

	t.Run("drains queued messages", func(t *testing.T) {
		t.Parallel()

		q := delayqueue.New[string]()
		require.NoError(t, q.Enqueue("ready", nil))
		require.NoError(t, q.EnqueueAfter("pending", 30*time.Millisecond))
		q.Close()

		got, err := dequeueWithin(t, q, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "ready", got)

		got, err = dequeueWithin(t, q, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "pending", got)

		_, err = dequeueWithin(t, q, time.Second)
		assert.ErrorIs(t, err, delayqueue.ErrClosed)
	})

	t.Run("wakes idle consumer", func(t *testing.T) {
		t.Parallel()

		q := delayqueue.New[string]()
		errCh := make(chan error, 1)
		go func() {
			_, err := dequeueWithin(t, q, 2*time.Second)
			errCh <- err
		}()

		time.Sleep(20 * time.Millisecond)
		q.Close()

		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, delayqueue.ErrClosed)
		case <-time.After(time.Second):
			t.Fatal("consumer not released by Close")
		}
	})
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	t.Parallel()

	const producers, perProducer = 8, 50
	q := delayqueue.New[int]()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(h delayqueue.Producer[int], base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				assert.NoError(t, h.Enqueue(base+i, nil))
			}
		}(q.Producer(), p*perProducer)
	}
	wg.Wait()

	seen := make(map[int]bool, producers*perProducer)
	for i := 0; i < producers*perProducer; i++ {
		msg, err := q.Dequeue(context.Background())
		require.NoError(t, err)
		seen[msg] = true
	}
	assert.Len(t, seen, producers*perProducer)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_WithClock(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	q := delayqueue.New[string](delayqueue.WithClock(func() time.Time { return fixed }))

	// mature relative to the injected clock even though it is in the wall-clock future
	at := fixed.Add(-time.Second)
	require.NoError(t, q.Enqueue("x", &at))

	got, err := dequeueWithin(t, q, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

// movableClock can be set anywhere, including backward.
type movableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *movableClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func TestQueue_ClockBeforeMaturity(t *testing.T) {
	t.Parallel()

	maturity := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &movableClock{now: maturity.Add(-time.Second)}
	q := delayqueue.New[string](delayqueue.WithClock(clock.Now))

	require.NoError(t, q.Enqueue("gated", &maturity))

	_, err := dequeueWithin(t, q, 50*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// moving the clock further back keeps the message gated
	clock.Set(maturity.Add(-time.Hour))
	_, err = dequeueWithin(t, q, 50*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, q.Len())

	// past maturity the older message goes first
	clock.Set(maturity.Add(time.Millisecond))
	require.NoError(t, q.Enqueue("now", nil))

	got, err := dequeueWithin(t, q, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "gated", got)

	got, err = dequeueWithin(t, q, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "now", got)
}
