package wallet

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mintshell/pkg/delayqueue"
	"github.com/dmitrymomot/mintshell/pkg/logger"
	"github.com/dmitrymomot/mintshell/pkg/poller"
	"github.com/dmitrymomot/mintshell/pkg/sink"
)

// receiveOperation is the scheduler payload of a pending confirm-receive.
type receiveOperation struct {
	requestID uuid.UUID
	source    string
	quote     Quote
}

// Actor serializes every wallet operation on one goroutine. External
// commands, follow-up commands and scheduled status checks are handled one
// at a time, each to completion, in the order they become ready.
type Actor struct {
	connector Connector
	opts      options
	logger    *slog.Logger
	metrics   *Metrics

	commands  chan request
	followups *delayqueue.Queue[request]
	checks    *poller.Scheduler[receiveOperation]

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
	inflight atomic.Int32

	// owned by the Run goroutine
	sess *session
	sink sink.Sink[Envelope]
}

// New creates an actor. Call Run to start it and submit Init before anything else.
func New(connector Connector, opts ...Option) (*Actor, error) {
	if connector == nil {
		return nil, ErrConnectorNil
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	metrics := o.metrics
	if metrics == nil && o.registerer != nil {
		m, err := NewMetrics(o.registerer)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	return &Actor{
		connector: connector,
		opts:      o,
		logger:    o.logger.With(logger.Component("wallet")),
		metrics:   metrics,
		commands:  make(chan request, o.commandBuffer),
		followups: delayqueue.New[request](delayqueue.WithClock(o.now)),
		checks: poller.New[receiveOperation](
			poller.WithMultiplier(o.pollMultiplier),
			poller.WithClock(o.now),
		),
		done: make(chan struct{}),
	}, nil
}

// Submit queues cmd without blocking and returns the request id that the
// resulting events will carry.
func (a *Actor) Submit(cmd Command) (uuid.UUID, error) {
	switch c := cmd.(type) {
	case nil:
		return uuid.Nil, ErrNilCommand
	case CheckOperation, *CheckOperation:
		return uuid.Nil, ErrInternalCommand
	case Init:
		if c.Sink == nil {
			return uuid.Nil, ErrNilSink
		}
	}

	select {
	case <-a.done:
		return uuid.Nil, ErrNotRunning
	default:
	}

	req := request{id: uuid.New(), cmd: cmd}
	select {
	case a.commands <- req:
		return req.id, nil
	default:
		return uuid.Nil, ErrCommandQueueFull
	}
}

// Pending returns the number of operations awaiting confirmation.
func (a *Actor) Pending() int {
	return a.checks.Len()
}

// Run handles commands until ctx is done. It returns nil on cancellation and
// ErrAlreadyRunning if the actor has been started before.
func (a *Actor) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.doneOnce.Do(func() { close(a.done) })

	followups := make(chan request)
	pumpCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.pump(pumpCtx, followups)
	}()
	defer func() {
		cancel()
		a.followups.Close()
		wg.Wait()
	}()

	a.logger.Info("wallet actor started",
		slog.Int("command_buffer", cap(a.commands)),
		logger.Group("poll",
			slog.Duration("interval", a.opts.pollInterval),
			slog.Float64("multiplier", a.opts.pollMultiplier),
			slog.Duration("deadline", a.opts.operationDeadline)))
	defer a.logger.Info("wallet actor stopped", slog.Int("pending_operations", a.checks.Len()))

	for {
		// take the wake channel first so a registration racing with the
		// check below still wakes the select
		wake := a.checks.Wake()
		ready, ok, wait := a.checks.NextReady()
		if ok {
			a.dispatch(ctx, a.checkRequest(ready))
			continue
		}

		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)
		if wait != poller.NoPending {
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return nil
		case req := <-a.commands:
			stopTimer(timer)
			a.dispatch(ctx, req)
		case req := <-followups:
			stopTimer(timer)
			a.dispatch(ctx, req)
		case <-wake:
			stopTimer(timer)
		case <-timerC:
		}
	}
}

// pump moves matured follow-ups to the actor loop.
func (a *Actor) pump(ctx context.Context, out chan<- request) {
	for {
		req, err := a.followups.Dequeue(ctx)
		if err != nil {
			return
		}
		select {
		case out <- req:
		case <-ctx.Done():
			return
		}
	}
}

func (a *Actor) checkRequest(ready poller.Ready[receiveOperation]) request {
	op := ready.Payload
	return request{
		id: op.requestID,
		cmd: CheckOperation{
			ID:     ready.ID,
			Source: op.source,
			Quote:  op.quote,
			Final:  ready.Final,
		},
	}
}

// dispatch runs exactly one handler.
func (a *Actor) dispatch(ctx context.Context, req request) {
	ctx = WithRequestID(ctx, req.id)

	n := a.inflight.Add(1)
	defer a.inflight.Add(-1)
	if n > 1 {
		a.metrics.handlerReentered()
		a.logger.ErrorContext(ctx, "handler started while another is running",
			logger.Command(string(req.cmd.Kind())),
			slog.Int("inflight", int(n)))
	}

	kind := req.cmd.Kind()
	log := a.logger.With(logger.Command(string(kind)))

	if _, isInit := req.cmd.(Init); !isInit && a.sess == nil {
		a.metrics.commandDroppedBeforeInit()
		log.WarnContext(ctx, "command dropped: wallet not initialized")
		return
	}

	a.metrics.commandHandled(kind)
	start := a.opts.now()

	switch c := req.cmd.(type) {
	case Init:
		a.handleInit(ctx, req.id, c)
	case GetSummary:
		a.handleGetSummary(ctx, req.id)
	case ListSources:
		a.handleListSources(ctx, req.id)
	case SelectSource:
		a.handleSelectSource(ctx, req.id, c)
	case AddSource:
		a.handleAddSource(ctx, req.id, c)
	case BeginConfirmReceive:
		a.handleBeginConfirmReceive(ctx, req.id, c)
	case CheckOperation:
		a.handleCheckOperation(ctx, req.id, c)
	case TransferOut:
		a.handleTransferOut(ctx, req.id, c)
	case TransferIn:
		a.handleTransferIn(ctx, req.id, c)
	case PayRequest:
		a.handlePayRequest(ctx, req.id, c)
	default:
		log.ErrorContext(ctx, "unsupported command type", slog.String("type", string(kind)))
		return
	}

	log.DebugContext(ctx, "command handled", logger.Duration(a.opts.now().Sub(start)))
}

// deliver sends ev to the subscriber. Failures are logged and counted only.
func (a *Actor) deliver(ctx context.Context, requestID uuid.UUID, ev Event) {
	kind := ev.Kind()
	log := a.logger.With(logger.EventKind(string(kind)))

	if f := ev.Failed(); f != nil {
		log.InfoContext(ctx, "operation failed", slog.String("failure", string(f.Kind)), logger.Error(f))
	}

	if a.sink == nil {
		a.metrics.eventDropped(kind)
		log.WarnContext(ctx, "event dropped: no subscriber")
		return
	}

	env := Envelope{
		ID:        uuid.New(),
		RequestID: requestID,
		Kind:      kind,
		At:        a.opts.now(),
		Event:     ev,
	}
	if err := a.sink.Deliver(ctx, env); err != nil {
		a.metrics.eventDropped(kind)
		level := slog.LevelWarn
		if errors.Is(err, context.Canceled) {
			level = slog.LevelDebug
		}
		log.Log(ctx, level, "event not delivered", logger.Error(err))
		return
	}
	a.metrics.eventDelivered(kind)
}

// followUp queues cmd to run after delay on behalf of requestID.
func (a *Actor) followUp(ctx context.Context, requestID uuid.UUID, cmd Command, delay time.Duration) {
	if err := a.followups.EnqueueAfter(request{id: requestID, cmd: cmd}, delay); err != nil {
		a.logger.WarnContext(ctx, "follow-up not queued",
			logger.Command(string(cmd.Kind())),
			logger.Error(err))
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}
