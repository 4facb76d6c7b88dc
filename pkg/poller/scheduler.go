package poller

import (
	"context"
	"math"
	"sync"
	"time"
)

// NoPending is the wait hint returned by NextReady when nothing is registered.
const NoPending time.Duration = -1

// MinInterval is the smallest gap between two checks of one entry. Shorter
// intervals passed to Register are raised to it.
const MinInterval = time.Millisecond

// Ready is a due check handed out by NextReady.
type Ready[P any] struct {
	ID      string
	Payload P
	// Final marks the last check before the deadline; the entry is already removed.
	Final bool
}

// Entry is a read-only view of a registered operation.
type Entry[P any] struct {
	ID       string
	Payload  P
	Next     time.Time
	Interval time.Duration
	Deadline time.Time
}

type entry[P any] struct {
	payload  P
	next     time.Time
	interval time.Duration
	deadline time.Time
}

// Scheduler is a keyed registry of pending checks. Safe for concurrent use.
type Scheduler[P any] struct {
	mu      sync.Mutex
	entries map[string]*entry[P]
	wake    chan struct{}

	multiplier float64
	now        func() time.Time
}

// New creates an empty scheduler.
func New[P any](opts ...Option) *Scheduler[P] {
	o := options{multiplier: DefaultMultiplier, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Scheduler[P]{
		entries:    make(map[string]*entry[P]),
		wake:       make(chan struct{}),
		multiplier: o.multiplier,
		now:        o.now,
	}
}

// Register schedules a first check for now, then every interval (growing by
// the multiplier) until maxTotal has elapsed. A check that runs after the
// deadline is the final one. Registering an existing id replaces it and
// reports true.
func (s *Scheduler[P]) Register(id string, payload P, initial, maxTotal time.Duration) bool {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, replaced := s.entries[id]
	s.entries[id] = &entry[P]{
		payload:  payload,
		next:     now,
		interval: max(initial, MinInterval),
		deadline: now.Add(max(maxTotal, 0)),
	}
	s.notifyLocked()
	return replaced
}

// Remove deletes id. It reports whether the entry existed.
func (s *Scheduler[P]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[id]
	delete(s.entries, id)
	s.notifyLocked()
	return ok
}

// NextReady returns the earliest due check, if any. When nothing is due the
// duration is how long until the earliest check, or NoPending when the
// registry is empty.
func (s *Scheduler[P]) NextReady() (Ready[P], bool, time.Duration) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		id string
		e  *entry[P]
	)
	for k, v := range s.entries {
		if e == nil || v.next.Before(e.next) || (v.next.Equal(e.next) && k < id) {
			id, e = k, v
		}
	}
	if e == nil {
		return Ready[P]{}, false, NoPending
	}
	if e.next.After(now) {
		return Ready[P]{}, false, max(e.next.Sub(now), 0)
	}

	if e.next.After(e.deadline) || now.After(e.deadline) {
		delete(s.entries, id)
		return Ready[P]{ID: id, Payload: e.payload, Final: true}, true, 0
	}

	e.next = e.next.Add(e.interval)
	e.interval = grow(e.interval, s.multiplier)
	return Ready[P]{ID: id, Payload: e.payload}, true, 0
}

// Wake returns a channel closed by the next Register or Remove.
func (s *Scheduler[P]) Wake() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wake
}

// Wait blocks until a check is due or ctx is done.
func (s *Scheduler[P]) Wait(ctx context.Context) (Ready[P], error) {
	for {
		wake := s.Wake()
		ready, ok, wait := s.NextReady()
		if ok {
			return ready, nil
		}

		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)
		if wait != NoPending {
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return Ready[P]{}, ctx.Err()
		case <-wake:
			stopTimer(timer)
		case <-timerC:
		}
	}
}

// Len returns the number of registered operations.
func (s *Scheduler[P]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Contains reports whether id is registered.
func (s *Scheduler[P]) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	return ok
}

// Snapshot returns a copy of the entry registered under id.
func (s *Scheduler[P]) Snapshot(id string) (Entry[P], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return Entry[P]{}, false
	}
	return Entry[P]{
		ID:       id,
		Payload:  e.payload,
		Next:     e.next,
		Interval: e.interval,
		Deadline: e.deadline,
	}, true
}

func (s *Scheduler[P]) notifyLocked() {
	close(s.wake)
	s.wake = make(chan struct{})
}

// grow multiplies d by m, saturating at the largest Duration.
func grow(d time.Duration, m float64) time.Duration {
	next := math.Round(float64(d) * m)
	if next >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	return max(time.Duration(next), d)
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}
