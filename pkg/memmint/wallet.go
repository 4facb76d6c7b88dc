package memmint

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mintshell/pkg/wallet"
)

// Op names a collaborator call for failure injection.
type Op string

const (
	OpConnect            Op = "connect"
	OpSummary            Op = "summary"
	OpAddSource          Op = "add_source"
	OpMint               Op = "mint"
	OpCreateConfirmation Op = "create_confirmation"
	OpCheckStatus        Op = "check_status"
	OpFinalize           Op = "finalize"
	OpTransferOut        Op = "transfer_out"
	OpTransferIn         Op = "transfer_in"
	OpPayRequest         Op = "pay_request"
)

type quote struct {
	source string
	quote  wallet.Quote
	state  wallet.QuoteState
}

type token struct {
	source string
	amount uint64
}

// Wallet implements wallet.Wallet in memory. Safe for concurrent use.
type Wallet struct {
	mu       sync.Mutex
	sources  []string
	balances map[string]uint64
	quotes   map[string]*quote
	tokens   map[string]token
	invoices map[string]uint64
	failures map[Op][]error
	calls    map[Op]int

	quoteTTL time.Duration
	now      func() time.Time
}

var _ wallet.Wallet = (*Wallet)(nil)

// New creates an empty wallet.
func New(opts ...Option) *Wallet {
	w := &Wallet{
		balances: make(map[string]uint64),
		quotes:   make(map[string]*quote),
		tokens:   make(map[string]token),
		invoices: make(map[string]uint64),
		failures: make(map[Op][]error),
		calls:    make(map[Op]int),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Connector opens this wallet. FailNext(OpConnect, err) makes the next open fail.
func (w *Wallet) Connector() wallet.Connector {
	return func(ctx context.Context) (wallet.Wallet, error) {
		w.mu.Lock()
		defer w.mu.Unlock()
		if err := w.enterLocked(OpConnect); err != nil {
			return nil, err
		}
		return w, nil
	}
}

// FailNext makes the next call of op return err. Calls queue up.
func (w *Wallet) FailNext(op Op, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.failures[op] = append(w.failures[op], err)
}

// Calls returns how many times op has been invoked.
func (w *Wallet) Calls(op Op) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls[op]
}

// Summary implements wallet.Wallet.
func (w *Wallet) Summary(ctx context.Context) (wallet.Summary, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enterLocked(OpSummary); err != nil {
		return wallet.Summary{}, err
	}

	s := wallet.Summary{Sources: make([]wallet.Source, 0, len(w.sources))}
	for _, url := range w.sources {
		b := w.balances[url]
		s.Balance += b
		s.Sources = append(s.Sources, wallet.Source{URL: url, Balance: b})
	}
	return s, nil
}

// AddSource implements wallet.Wallet. Adding a known source is a no-op.
func (w *Wallet) AddSource(ctx context.Context, url string) (wallet.Source, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enterLocked(OpAddSource); err != nil {
		return wallet.Source{}, err
	}
	w.addSourceLocked(url)
	return wallet.Source{URL: url, Balance: w.balances[url]}, nil
}

// Mint implements wallet.Wallet.
func (w *Wallet) Mint(ctx context.Context, url string) (wallet.MintClient, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enterLocked(OpMint); err != nil {
		return nil, err
	}
	if !w.knownLocked(url) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, url)
	}
	return &client{w: w, source: url}, nil
}

// Balance returns the balance held at url.
func (w *Wallet) Balance(url string) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[url]
}

// Quote returns a quote and its current state.
func (w *Wallet) Quote(id string) (wallet.Quote, wallet.QuoteState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	q, ok := w.quotes[id]
	if !ok {
		return wallet.Quote{}, "", false
	}
	return q.quote, w.stateLocked(q), true
}

// Pay marks an unpaid quote as paid, as if the payer had paid its request.
func (w *Wallet) Pay(quoteID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	q, ok := w.quotes[quoteID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuote, quoteID)
	}
	switch w.stateLocked(q) {
	case wallet.QuoteExpired:
		return ErrQuoteExpired
	case wallet.QuoteIssued:
		return ErrQuoteIssued
	}
	q.state = wallet.QuotePaid
	return nil
}

// Expire expires a quote that has not been issued.
func (w *Wallet) Expire(quoteID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	q, ok := w.quotes[quoteID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuote, quoteID)
	}
	if q.state == wallet.QuoteIssued {
		return ErrQuoteIssued
	}
	q.state = wallet.QuoteExpired
	return nil
}

// Invoice creates an external payment request for amount that PayRequest accepts once.
func (w *Wallet) Invoice(amount uint64) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	req := fmt.Sprintf("lnbc%dn1%s", amount, compactID())
	w.invoices[req] = amount
	return req
}

func (w *Wallet) addSourceLocked(url string) {
	if !w.knownLocked(url) {
		w.sources = append(w.sources, url)
	}
}

func (w *Wallet) knownLocked(url string) bool {
	for _, s := range w.sources {
		if s == url {
			return true
		}
	}
	return false
}

func (w *Wallet) stateLocked(q *quote) wallet.QuoteState {
	if q.state == wallet.QuoteUnpaid && !q.quote.Expiry.IsZero() && w.now().After(q.quote.Expiry) {
		q.state = wallet.QuoteExpired
	}
	return q.state
}

// enterLocked counts the call and pops an injected failure.
func (w *Wallet) enterLocked(op Op) error {
	w.calls[op]++
	queued := w.failures[op]
	if len(queued) == 0 {
		return nil
	}
	w.failures[op] = queued[1:]
	return queued[0]
}

func compactID() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:8])
}
