package wallet

import (
	"context"
	"time"
)

// Connector opens a wallet session. It is called by the actor on Init and
// again on every retried Init after a failure.
type Connector func(ctx context.Context) (Wallet, error)

// Source is a known mint together with the balance held there.
type Source struct {
	URL     string `json:"url"`
	Balance uint64 `json:"balance"`
}

// Summary is a snapshot of the whole wallet.
type Summary struct {
	Balance uint64   `json:"balance"`
	Sources []Source `json:"sources"`
}

// Wallet is a multi-source wallet. Implementations are called only from the
// actor goroutine but may be shared with other code, so they should be safe
// for concurrent use.
type Wallet interface {
	// Summary returns balances and known sources in a stable order.
	Summary(ctx context.Context) (Summary, error)
	// AddSource registers a new source and returns it.
	AddSource(ctx context.Context, url string) (Source, error)
	// Mint returns a client bound to a known source.
	Mint(ctx context.Context, url string) (MintClient, error)
}

// QuoteState is the collaborator's view of a confirmation handle.
type QuoteState string

const (
	QuoteUnpaid  QuoteState = "unpaid"
	QuotePending QuoteState = "pending"
	QuotePaid    QuoteState = "paid"
	QuoteIssued  QuoteState = "issued"
	QuoteExpired QuoteState = "expired"
)

// Confirmed reports whether the quote can be finalized.
func (s QuoteState) Confirmed() bool {
	return s == QuotePaid || s == QuoteIssued
}

// Quote is a confirmation handle. Request is the artifact shown to the payer.
type Quote struct {
	ID      string    `json:"id"`
	Request string    `json:"request"`
	Amount  uint64    `json:"amount"`
	Expiry  time.Time `json:"expiry,omitzero"`
}

// MintClient performs value-transfer operations against one source.
type MintClient interface {
	// CreateConfirmation asks the source for a payment request worth amount.
	CreateConfirmation(ctx context.Context, amount uint64) (Quote, error)
	// CheckStatus reports whether the quote's request has been paid.
	CheckStatus(ctx context.Context, q Quote) (QuoteState, error)
	// Finalize claims a paid quote and returns the value received.
	Finalize(ctx context.Context, q Quote) (uint64, error)
	// TransferOut takes amount out of the wallet as a bearer token.
	TransferOut(ctx context.Context, amount uint64) (string, error)
	// TransferIn redeems a bearer token and returns its value.
	TransferIn(ctx context.Context, token string) (uint64, error)
	// PayRequest pays an external payment request and returns the amount spent.
	PayRequest(ctx context.Context, request string) (uint64, error)
}
