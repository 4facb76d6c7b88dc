// Package sink delivers values to a single subscriber on a best-effort basis.
//
// A Sink never blocks its caller for long: the channel implementation drops a
// value when the subscriber's buffer is full and reports ErrFull, and every
// implementation reports ErrClosed once the subscriber has gone away. Callers
// treat delivery errors as non-fatal, log them and carry on.
//
// Implementations:
//
//   - Channel: a bounded Go channel read by an in-process subscriber.
//   - Redis: publishes JSON-encoded values to a Redis pub/sub channel.
//   - Fanout: delivers to several sinks as if they were one subscriber.
//   - Func: adapts a callback.
//
// # Usage
//
//	events := sink.NewChannel[wallet.Envelope](100)
//	defer events.Close()
//
//	go func() {
//		for env := range events.C() {
//			render(env)
//		}
//	}()
//
//	client, err := sink.ConnectRedis(ctx, sink.RedisConfig{URL: "redis://localhost:6379/0"})
//	if err != nil {
//		return err
//	}
//	mirror := sink.NewRedis[wallet.Envelope](client, "mintshell:events")
//	target := sink.NewFanout[wallet.Envelope](events, mirror)
package sink
