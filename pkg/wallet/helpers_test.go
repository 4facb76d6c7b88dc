package wallet_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mintshell/pkg/logger"
	"github.com/dmitrymomot/mintshell/pkg/sink"
	"github.com/dmitrymomot/mintshell/pkg/wallet"
)

const (
	mintA = "https://mint-a.example.com"
	mintB = "https://mint-b.example.com"

	eventTimeout = 3 * time.Second
)

const reentriesMetric = `
# HELP mintshell_wallet_handler_reentries_total Handlers that started while another was running. Always zero in a healthy actor.
# TYPE mintshell_wallet_handler_reentries_total counter
mintshell_wallet_handler_reentries_total 0
`

type harness struct {
	actor  *wallet.Actor
	events *sink.Channel[wallet.Envelope]
	reg    *prometheus.Registry
}

// start runs an actor until the test ends and checks that no handler ever
// overlapped another.
func start(t *testing.T, connector wallet.Connector, opts ...wallet.Option) *harness {
	t.Helper()

	reg := prometheus.NewRegistry()
	base := []wallet.Option{
		wallet.WithLogger(logger.Discard()),
		wallet.WithRegisterer(reg),
		wallet.WithPollPolicy(10*time.Millisecond, 1.05, time.Minute),
	}
	a, err := wallet.New(connector, append(base, opts...)...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	h := &harness{actor: a, events: sink.NewChannel[wallet.Envelope](256), reg: reg}

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(eventTimeout):
			t.Error("actor did not stop")
		}
		assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(reentriesMetric),
			"mintshell_wallet_handler_reentries_total"))
	})
	return h
}

// init submits Init and waits for its answer.
func (h *harness) init(t *testing.T) wallet.Initialized {
	t.Helper()
	id := h.submit(t, wallet.Init{Sink: h.events})
	ev, env := waitFor[wallet.Initialized](t, h.events.C())
	assert.Equal(t, id, env.RequestID)
	return ev
}

func (h *harness) submit(t *testing.T, cmd wallet.Command) uuid.UUID {
	t.Helper()
	id, err := h.actor.Submit(cmd)
	require.NoError(t, err)
	return id
}

// waitFor skips events until one of type E arrives.
func waitFor[E wallet.Event](t *testing.T, events <-chan wallet.Envelope) (E, wallet.Envelope) {
	t.Helper()
	return waitForMatch[E](t, events, func(E) bool { return true })
}

// waitForMatch skips events until one of type E satisfies match.
func waitForMatch[E wallet.Event](t *testing.T, events <-chan wallet.Envelope, match func(E) bool) (E, wallet.Envelope) {
	t.Helper()
	timeout := time.After(eventTimeout)
	for {
		select {
		case env, ok := <-events:
			if !ok {
				var zero E
				t.Fatalf("event channel closed while waiting for %T", zero)
			}
			if ev, ok := env.Event.(E); ok && match(ev) {
				return ev, env
			}
		case <-timeout:
			var zero E
			t.Fatalf("timed out waiting for %T", zero)
		}
	}
}

// drain collects events until none arrives for quiet.
func drain(events <-chan wallet.Envelope, quiet time.Duration) []wallet.Envelope {
	var out []wallet.Envelope
	for {
		select {
		case env, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, env)
		case <-time.After(quiet):
			return out
		}
	}
}

func countKind(envs []wallet.Envelope, kind wallet.EventKind) int {
	n := 0
	for _, e := range envs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// waitForRequest skips events until one of type E answers request id.
func waitForRequest[E wallet.Event](t *testing.T, events <-chan wallet.Envelope, id uuid.UUID) E {
	t.Helper()
	timeout := time.After(eventTimeout)
	for {
		select {
		case env, ok := <-events:
			if !ok {
				var zero E
				t.Fatalf("event channel closed while waiting for %T", zero)
			}
			if ev, ok := env.Event.(E); ok && env.RequestID == id {
				return ev
			}
		case <-timeout:
			var zero E
			t.Fatalf("timed out waiting for %T answering %s", zero, id)
		}
	}
}
