// Package wallet runs a wallet client as a single-goroutine command actor.
//
// An Actor owns the wallet session and handles one command at a time.
// Commands come from three places: Submit (external callers), follow-ups the
// actor queues for itself (such as a balance refresh after a payment), and
// status checks produced by a poll scheduler for operations awaiting
// confirmation. Results are delivered as Envelopes to one subscriber through
// a sink.Sink, on a best-effort basis: a full or closed sink is logged and
// counted, never fatal.
//
// # Lifecycle
//
//	a, err := wallet.New(connect, wallet.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	go a.Run(ctx)
//
//	events := sink.NewChannel[wallet.Envelope](100)
//	_, _ = a.Submit(wallet.Init{Sink: events})
//	_, _ = a.Submit(wallet.BeginConfirmReceive{Amount: 1000})
//
//	for env := range events.C() {
//		switch ev := env.Event.(type) {
//		case wallet.ConfirmArtifactReady:
//			show(ev.Request)
//		case wallet.OperationCompleted:
//			fmt.Println("received", ev.Value)
//		}
//	}
//
// Commands submitted before a successful Init are logged and dropped. A
// failed Init is reported as an Initialized event carrying a Failure and may
// be retried.
//
// # Confirmations
//
// BeginConfirmReceive creates a quote, emits its payment request and
// registers it with the scheduler. The quote is checked immediately, then
// after the poll interval, with every following gap 5% longer by default.
// A paid quote is finalized and reported as OperationCompleted; a quote still
// unpaid when its deadline passes is reported as OperationFailed with
// FailureTimeout. The default deadline is five minutes.
//
// # Configuration
//
// Config reads MINTSHELL_* environment variables through pkg/config;
// Config.Options converts it to actor options.
package wallet
