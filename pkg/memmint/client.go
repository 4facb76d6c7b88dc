package memmint

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/mintshell/pkg/wallet"
)

// client is a wallet.MintClient bound to one source.
type client struct {
	w      *Wallet
	source string
}

func (c *client) CreateConfirmation(ctx context.Context, amount uint64) (wallet.Quote, error) {
	c.w.mu.Lock()
	defer c.w.mu.Unlock()
	if err := c.w.enterLocked(OpCreateConfirmation); err != nil {
		return wallet.Quote{}, err
	}
	if amount == 0 {
		return wallet.Quote{}, ErrInvalidAmount
	}

	id := compactID()
	q := wallet.Quote{
		ID:      id,
		Request: fmt.Sprintf("lnbc%dn1%s", amount, id),
		Amount:  amount,
	}
	if c.w.quoteTTL > 0 {
		q.Expiry = c.w.now().Add(c.w.quoteTTL)
	}
	c.w.quotes[id] = &quote{source: c.source, quote: q, state: wallet.QuoteUnpaid}
	return q, nil
}

func (c *client) CheckStatus(ctx context.Context, q wallet.Quote) (wallet.QuoteState, error) {
	c.w.mu.Lock()
	defer c.w.mu.Unlock()
	if err := c.w.enterLocked(OpCheckStatus); err != nil {
		return "", err
	}
	stored, err := c.quoteLocked(q.ID)
	if err != nil {
		return "", err
	}
	return c.w.stateLocked(stored), nil
}

func (c *client) Finalize(ctx context.Context, q wallet.Quote) (uint64, error) {
	c.w.mu.Lock()
	defer c.w.mu.Unlock()
	if err := c.w.enterLocked(OpFinalize); err != nil {
		return 0, err
	}
	stored, err := c.quoteLocked(q.ID)
	if err != nil {
		return 0, err
	}
	switch c.w.stateLocked(stored) {
	case wallet.QuotePaid:
	case wallet.QuoteIssued:
		return 0, ErrQuoteIssued
	case wallet.QuoteExpired:
		return 0, ErrQuoteExpired
	default:
		return 0, ErrQuoteNotPaid
	}

	stored.state = wallet.QuoteIssued
	c.w.balances[c.source] += stored.quote.Amount
	return stored.quote.Amount, nil
}

func (c *client) TransferOut(ctx context.Context, amount uint64) (string, error) {
	c.w.mu.Lock()
	defer c.w.mu.Unlock()
	if err := c.w.enterLocked(OpTransferOut); err != nil {
		return "", err
	}
	if amount == 0 {
		return "", ErrInvalidAmount
	}
	if c.w.balances[c.source] < amount {
		return "", fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, c.w.balances[c.source], amount)
	}

	c.w.balances[c.source] -= amount
	tok := "cashuA" + compactID()
	c.w.tokens[tok] = token{source: c.source, amount: amount}
	return tok, nil
}

func (c *client) TransferIn(ctx context.Context, tok string) (uint64, error) {
	c.w.mu.Lock()
	defer c.w.mu.Unlock()
	if err := c.w.enterLocked(OpTransferIn); err != nil {
		return 0, err
	}
	t, ok := c.w.tokens[tok]
	if !ok {
		return 0, ErrUnknownToken
	}
	// tokens are redeemable only at the source that issued them
	if t.source != c.source {
		return 0, fmt.Errorf("%w: token issued by %s", ErrUnknownSource, t.source)
	}

	delete(c.w.tokens, tok)
	c.w.balances[c.source] += t.amount
	return t.amount, nil
}

func (c *client) PayRequest(ctx context.Context, request string) (uint64, error) {
	c.w.mu.Lock()
	defer c.w.mu.Unlock()
	if err := c.w.enterLocked(OpPayRequest); err != nil {
		return 0, err
	}
	amount, ok := c.w.invoices[request]
	if !ok {
		return 0, ErrUnknownRequest
	}
	if c.w.balances[c.source] < amount {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, c.w.balances[c.source], amount)
	}

	delete(c.w.invoices, request)
	c.w.balances[c.source] -= amount
	return amount, nil
}

func (c *client) quoteLocked(id string) (*quote, error) {
	q, ok := c.w.quotes[id]
	if !ok || q.source != c.source {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuote, id)
	}
	return q, nil
}
