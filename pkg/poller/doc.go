// Package poller schedules repeated status checks for long-running
// operations with exponential backoff and a per-operation deadline.
//
// A Scheduler is a keyed registry of pending operations. It never sleeps on
// its own: NextReady either hands out the next due check or reports how long
// the caller may sleep. Every returned check advances its entry, so a due
// entry cannot be returned twice for the same instant. Successive intervals
// grow by a multiplier (1.05 by default) and the check that falls past the
// deadline is marked Final and removes the entry.
//
// # Wake protocol
//
// Register and Remove close the channel returned by Wake. A waiter must take
// the wake channel before its last NextReady call and suspend only if that
// call returned nothing; a registration that races with the check then still
// wakes it. Wait implements this loop for callers that only need the next
// check:
//
//	s := poller.New[Quote]()
//	s.Register(q.ID, q, 2*time.Second, 5*time.Minute)
//
//	for {
//		ready, err := s.Wait(ctx)
//		if err != nil {
//			return err
//		}
//		check(ready.Payload, ready.Final)
//	}
//
// Callers that multiplex other channels (see pkg/wallet) use Wake and
// NextReady directly.
package poller
