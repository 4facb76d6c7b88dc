package wallet

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// session is the wallet-facing state. Only the actor goroutine touches it.
type session struct {
	wallet   Wallet
	selected string
}

// mint returns a client for the selected source.
func (s *session) mint(ctx context.Context) (MintClient, string, error) {
	if s.selected == "" {
		return nil, "", ErrNoSourceSelected
	}
	mc, err := s.wallet.Mint(ctx, s.selected)
	if err != nil {
		return nil, "", fmt.Errorf("open source %s: %w", s.selected, err)
	}
	return mc, s.selected, nil
}

// normalizeSourceURL validates an http(s) source url and strips trailing slashes.
func normalizeSourceURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidSource)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an http(s) url", ErrInvalidSource, raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

// indexOf returns the 1-based position of url in sources, or 0.
func indexOf(sources []Source, url string) int {
	for i, s := range sources {
		if s.URL == url {
			return i + 1
		}
	}
	return 0
}
