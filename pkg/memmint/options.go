package memmint

import "time"

// Option configures a Wallet.
type Option func(*Wallet)

// WithSource adds a known source with an initial balance.
func WithSource(url string, balance uint64) Option {
	return func(w *Wallet) {
		w.addSourceLocked(url)
		w.balances[url] += balance
	}
}

// WithQuoteTTL expires unpaid quotes ttl after creation.
func WithQuoteTTL(ttl time.Duration) Option {
	return func(w *Wallet) {
		if ttl > 0 {
			w.quoteTTL = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(w *Wallet) {
		if now != nil {
			w.now = now
		}
	}
}
