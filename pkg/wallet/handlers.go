package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mintshell/pkg/logger"
	"github.com/dmitrymomot/mintshell/pkg/qrcode"
)

func (a *Actor) handleInit(ctx context.Context, id uuid.UUID, c Init) {
	// the sink survives a failed connect so the failure can be reported
	a.sink = c.Sink

	if a.sess != nil {
		a.logger.InfoContext(ctx, "event sink replaced")
		a.deliver(ctx, id, Initialized{Selected: a.sess.selected})
		return
	}

	w, err := a.connector(ctx)
	if err == nil && w == nil {
		err = ErrNoWallet
	}
	if err != nil {
		a.logger.ErrorContext(ctx, "wallet session not opened", logger.Error(err))
		a.deliver(ctx, id, Initialized{result: failed(FailureInit, err)})
		return
	}

	sess := &session{wallet: w}
	if summary, err := w.Summary(ctx); err != nil {
		a.logger.WarnContext(ctx, "initial summary failed, no source selected", logger.Error(err))
	} else if len(summary.Sources) > 0 {
		sess.selected = summary.Sources[0].URL
	}
	a.sess = sess

	a.logger.InfoContext(ctx, "wallet session opened", logger.Source(sess.selected))
	a.deliver(ctx, id, Initialized{Selected: sess.selected})

	a.followUp(ctx, id, GetSummary{}, 0)
	a.followUp(ctx, id, ListSources{}, 0)
}

func (a *Actor) handleGetSummary(ctx context.Context, id uuid.UUID) {
	summary, err := a.sess.wallet.Summary(ctx)
	if err != nil {
		a.deliver(ctx, id, SummaryResult{result: failed(FailureCollaborator, err)})
		return
	}
	a.deliver(ctx, id, SummaryResult{
		Balance:  summary.Balance,
		Sources:  summary.Sources,
		Selected: a.sess.selected,
	})
}

func (a *Actor) handleListSources(ctx context.Context, id uuid.UUID) {
	summary, err := a.sess.wallet.Summary(ctx)
	if err != nil {
		a.deliver(ctx, id, SourcesResult{result: failed(FailureCollaborator, err)})
		return
	}
	a.deliver(ctx, id, SourcesResult{
		Sources:     summary.Sources,
		Selected:    a.sess.selected,
		Recommended: a.suggestions(ctx, summary.Sources),
	})
}

// suggestions returns the recommended sources missing from known.
func (a *Actor) suggestions(ctx context.Context, known []Source) []RecommendedSource {
	all, err := RecommendedSources()
	if err != nil {
		a.logger.WarnContext(ctx, "recommended sources unavailable", logger.Error(err))
		return nil
	}
	out := make([]RecommendedSource, 0, len(all))
	for _, r := range all {
		if indexOf(known, r.URL) == 0 {
			out = append(out, r)
		}
	}
	return out
}

func (a *Actor) handleSelectSource(ctx context.Context, id uuid.UUID, c SelectSource) {
	summary, err := a.sess.wallet.Summary(ctx)
	if err != nil {
		a.deliver(ctx, id, SourceSelected{result: failed(FailureCollaborator, err)})
		return
	}

	var url string
	index := c.Index
	if strings.TrimSpace(c.URL) != "" {
		url, err = normalizeSourceURL(c.URL)
		if err == nil {
			if index = indexOf(summary.Sources, url); index == 0 {
				err = fmt.Errorf("%w: unknown source %s", ErrInvalidSource, url)
			}
		}
	} else {
		switch {
		case index < 1:
			err = fmt.Errorf("%w: %d, the first is 1", ErrSourceIndex, index)
		case index > len(summary.Sources):
			err = fmt.Errorf("%w: %d, maximum is %d", ErrSourceIndex, index, len(summary.Sources))
		default:
			url = summary.Sources[index-1].URL
		}
	}
	if err != nil {
		a.deliver(ctx, id, SourceSelected{result: failed(FailureCollaborator, err)})
		return
	}

	a.sess.selected = url
	a.logger.InfoContext(ctx, "source selected", logger.Source(url), slog.Int("index", index))
	a.deliver(ctx, id, SourceSelected{URL: url, Index: index})
}

func (a *Actor) handleAddSource(ctx context.Context, id uuid.UUID, c AddSource) {
	url, err := normalizeSourceURL(c.URL)
	if err != nil {
		a.deliver(ctx, id, SourceAdded{result: failed(FailureInput, err)})
		return
	}

	src, err := a.sess.wallet.AddSource(ctx, url)
	if err != nil {
		a.deliver(ctx, id, SourceAdded{result: failed(FailureCollaborator, err)})
		return
	}
	if src.URL == "" {
		src.URL = url
	}

	a.sess.selected = src.URL
	a.logger.InfoContext(ctx, "source added", logger.Source(src.URL))
	a.deliver(ctx, id, SourceAdded{Source: src})
}

func (a *Actor) handleBeginConfirmReceive(ctx context.Context, id uuid.UUID, c BeginConfirmReceive) {
	fail := func(err error) {
		a.deliver(ctx, id, ConfirmArtifactReady{result: failed(FailureCollaborator, err), Amount: c.Amount})
	}

	if c.Amount == 0 {
		fail(ErrInvalidAmount)
		return
	}
	mc, source, err := a.sess.mint(ctx)
	if err != nil {
		fail(err)
		return
	}

	quote, err := mc.CreateConfirmation(ctx, c.Amount)
	if err != nil {
		fail(err)
		return
	}
	if quote.ID == "" || quote.Request == "" {
		fail(fmt.Errorf("%w: quote without id or request", ErrIncompleteResponse))
		return
	}
	if quote.Amount == 0 {
		quote.Amount = c.Amount
	}

	ev := ConfirmArtifactReady{
		OperationID: quote.ID,
		Source:      source,
		Amount:      quote.Amount,
		Request:     quote.Request,
	}
	if a.opts.qrCodeSize > 0 {
		uri, err := qrcode.DataURI(quote.Request, a.opts.qrCodeSize)
		if err != nil {
			a.logger.WarnContext(ctx, "payment request QR code not rendered", logger.OperationID(quote.ID), logger.Error(err))
		} else {
			ev.QRCode = uri
		}
	}
	a.deliver(ctx, id, ev)

	op := receiveOperation{requestID: id, source: source, quote: quote}
	if replaced := a.checks.Register(quote.ID, op, a.opts.pollInterval, a.opts.operationDeadline); replaced {
		a.logger.WarnContext(ctx, "pending operation replaced", logger.OperationID(quote.ID))
	}
	a.metrics.setPending(a.checks.Len())

	a.logger.InfoContext(ctx, "awaiting confirmation",
		logger.OperationID(quote.ID),
		logger.Source(source),
		logger.Amount(quote.Amount))
}

func (a *Actor) handleCheckOperation(ctx context.Context, id uuid.UUID, c CheckOperation) {
	log := a.logger.With(logger.OperationID(c.ID), logger.Source(c.Source))
	defer func() { a.metrics.setPending(a.checks.Len()) }()

	// terminal failure: the entry is gone and the subscriber is told why
	finish := func(kind FailureKind, outcome string, err error) {
		a.checks.Remove(c.ID)
		a.metrics.operationOutcome(outcome)
		a.deliver(ctx, id, OperationFailed{
			result:      failed(kind, err),
			OperationID: c.ID,
			Source:      c.Source,
		})
	}

	mc, err := a.sess.wallet.Mint(ctx, c.Source)
	var state QuoteState
	if err == nil {
		state, err = mc.CheckStatus(ctx, c.Quote)
	}
	if err != nil {
		if !c.Final {
			log.WarnContext(ctx, "status check failed, will retry", logger.Error(err))
			return
		}
		finish(FailureCollaborator, OutcomeFailed, err)
		return
	}

	switch {
	case state.Confirmed():
		value, err := mc.Finalize(ctx, c.Quote)
		if err != nil {
			finish(FailureCollaborator, OutcomeFailed, fmt.Errorf("finalize: %w", err))
			return
		}

		a.checks.Remove(c.ID)
		a.metrics.operationOutcome(OutcomeCompleted)
		log.InfoContext(ctx, "operation completed", logger.Amount(value))
		a.deliver(ctx, id, OperationCompleted{OperationID: c.ID, Source: c.Source, Value: value})
		a.followUp(ctx, id, GetSummary{}, a.opts.summaryRefreshDelay)

	case state == QuoteExpired:
		finish(FailureCollaborator, OutcomeFailed, ErrQuoteExpired)

	case c.Final:
		log.InfoContext(ctx, "operation timed out", slog.String("state", string(state)))
		finish(FailureTimeout, OutcomeTimeout, ErrOperationTimeout)

	default:
		log.DebugContext(ctx, "operation still pending", slog.String("state", string(state)))
	}
}

func (a *Actor) handleTransferOut(ctx context.Context, id uuid.UUID, c TransferOut) {
	fail := func(err error) {
		a.deliver(ctx, id, TransferOutResult{result: failed(FailureCollaborator, err), Amount: c.Amount})
	}

	if c.Amount == 0 {
		fail(ErrInvalidAmount)
		return
	}
	mc, _, err := a.sess.mint(ctx)
	if err != nil {
		fail(err)
		return
	}
	token, err := mc.TransferOut(ctx, c.Amount)
	if err != nil {
		fail(err)
		return
	}
	if token == "" {
		fail(fmt.Errorf("%w: empty token", ErrIncompleteResponse))
		return
	}

	a.deliver(ctx, id, TransferOutResult{Amount: c.Amount, Token: token})
	a.followUp(ctx, id, GetSummary{}, a.opts.summaryRefreshDelay)
}

func (a *Actor) handleTransferIn(ctx context.Context, id uuid.UUID, c TransferIn) {
	fail := func(err error) {
		a.deliver(ctx, id, TransferInResult{result: failed(FailureCollaborator, err)})
	}

	token := strings.TrimSpace(c.Token)
	if token == "" {
		fail(ErrEmptyArtifact)
		return
	}
	mc, _, err := a.sess.mint(ctx)
	if err != nil {
		fail(err)
		return
	}
	value, err := mc.TransferIn(ctx, token)
	if err != nil {
		fail(err)
		return
	}

	a.deliver(ctx, id, TransferInResult{Value: value})
	a.followUp(ctx, id, GetSummary{}, a.opts.summaryRefreshDelay)
}

func (a *Actor) handlePayRequest(ctx context.Context, id uuid.UUID, c PayRequest) {
	fail := func(err error) {
		a.deliver(ctx, id, PayResult{result: failed(FailureCollaborator, err)})
	}

	req := strings.TrimSpace(c.Request)
	if req == "" {
		fail(ErrEmptyArtifact)
		return
	}
	mc, _, err := a.sess.mint(ctx)
	if err != nil {
		fail(err)
		return
	}
	value, err := mc.PayRequest(ctx, req)
	if err != nil {
		fail(err)
		return
	}

	a.deliver(ctx, id, PayResult{Value: value})
	a.followUp(ctx, id, GetSummary{}, a.opts.summaryRefreshDelay)
}

// failed builds the result of a failed event.
func failed(kind FailureKind, err error) result {
	return result{Err: newFailure(kind, err)}
}
