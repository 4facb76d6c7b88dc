// Package delayqueue provides an in-process queue whose messages become
// deliverable only once their maturity time has passed.
//
// Any number of producers may enqueue concurrently; a single consumer calls
// Dequeue. A message without a maturity is deliverable immediately. Among
// messages that are mature at the same time, the one enqueued first is
// delivered first. The consumer never spins: while nothing is mature it sleeps
// on a timer armed for the earliest maturity, and a new arrival wakes it early
// so the timer can be re-armed.
//
// # Usage
//
//	q := delayqueue.New[string]()
//	defer q.Close()
//
//	_ = q.EnqueueAfter("refresh", 2*time.Second)
//	_ = q.Enqueue("now", nil)
//
//	msg, err := q.Dequeue(ctx) // "now", then "refresh" two seconds later
//
// After Close producers receive ErrClosed, while the consumer keeps draining
// queued messages as they mature and gets ErrClosed once the queue is empty.
package delayqueue
