package sink

import (
	"context"
	"errors"
)

// Fanout delivers every value to all of its sinks.
type Fanout[T any] struct {
	sinks []Sink[T]
}

// NewFanout combines sinks. Nil entries are skipped.
func NewFanout[T any](sinks ...Sink[T]) *Fanout[T] {
	f := &Fanout[T]{sinks: make([]Sink[T], 0, len(sinks))}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Deliver tries every sink and joins their errors. A failing sink does not
// prevent delivery to the others.
func (f *Fanout[T]) Deliver(ctx context.Context, v T) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Deliver(ctx, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
