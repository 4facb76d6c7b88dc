package wallet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EventKind names an event on the wire and in metrics.
type EventKind string

const (
	EventInitialized          EventKind = "initialized"
	EventSummary              EventKind = "summary"
	EventSources              EventKind = "sources"
	EventSourceSelected       EventKind = "source_selected"
	EventSourceAdded          EventKind = "source_added"
	EventConfirmArtifactReady EventKind = "confirm_artifact_ready"
	EventOperationCompleted   EventKind = "operation_completed"
	EventOperationFailed      EventKind = "operation_failed"
	EventTransferOut          EventKind = "transfer_out"
	EventTransferIn           EventKind = "transfer_in"
	EventPay                  EventKind = "pay"
)

// Event is an outcome delivered to the subscriber.
type Event interface {
	Kind() EventKind
	// Failed returns the failure carried by the event, or nil on success.
	Failed() *Failure
}

// Envelope wraps every delivered event.
type Envelope struct {
	ID uuid.UUID `json:"id"`
	// RequestID is the id Submit returned for the command that caused the event.
	RequestID uuid.UUID `json:"request_id"`
	Kind      EventKind `json:"kind"`
	At        time.Time `json:"at"`
	Event     Event     `json:"event"`
}

// FailureKind classifies a failed event.
type FailureKind string

const (
	FailureInput        FailureKind = "input"
	FailureCollaborator FailureKind = "collaborator"
	FailureTimeout      FailureKind = "timeout"
	FailureInit         FailureKind = "init"
)

// Failure is the uniform error payload of failed events.
type Failure struct {
	Kind   FailureKind `json:"kind"`
	Reason string      `json:"reason"`
	err    error
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Reason
}

func (f *Failure) Unwrap() error {
	return f.err
}

// newFailure wraps err. Input errors are detected by sentinel; anything else
// gets the fallback kind.
func newFailure(fallback FailureKind, err error) *Failure {
	kind := fallback
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			kind = FailureInput
			break
		}
	}
	return &Failure{Kind: kind, Reason: err.Error(), err: err}
}

type result struct {
	Err *Failure `json:"error,omitempty"`
}

func (r result) Failed() *Failure { return r.Err }

// Initialized answers Init.
type Initialized struct {
	result
	Selected string `json:"selected,omitempty"`
}

// SummaryResult answers GetSummary.
type SummaryResult struct {
	result
	Balance  uint64   `json:"balance"`
	Sources  []Source `json:"sources,omitempty"`
	Selected string   `json:"selected,omitempty"`
}

// SourcesResult answers ListSources. Recommended lists the built-in
// suggestions that are not known sources yet.
type SourcesResult struct {
	result
	Sources     []Source            `json:"sources,omitempty"`
	Selected    string              `json:"selected,omitempty"`
	Recommended []RecommendedSource `json:"recommended,omitempty"`
}

// SourceSelected answers SelectSource. Index is 1-based.
type SourceSelected struct {
	result
	URL   string `json:"url,omitempty"`
	Index int    `json:"index,omitempty"`
}

// SourceAdded answers AddSource.
type SourceAdded struct {
	result
	Source Source `json:"source"`
}

// ConfirmArtifactReady answers BeginConfirmReceive with the payment request
// to show the payer. QRCode is a PNG data URI when QR rendering is enabled.
type ConfirmArtifactReady struct {
	result
	OperationID string `json:"operation_id,omitempty"`
	Source      string `json:"source,omitempty"`
	Amount      uint64 `json:"amount"`
	Request     string `json:"request,omitempty"`
	QRCode      string `json:"qr_code,omitempty"`
}

// OperationCompleted reports a confirmed and finalized operation.
type OperationCompleted struct {
	result
	OperationID string `json:"operation_id"`
	Source      string `json:"source"`
	Value       uint64 `json:"value"`
}

// OperationFailed reports a tracked operation that will never complete.
type OperationFailed struct {
	result
	OperationID string `json:"operation_id"`
	Source      string `json:"source"`
}

// TransferOutResult answers TransferOut.
type TransferOutResult struct {
	result
	Amount uint64 `json:"amount"`
	Token  string `json:"token,omitempty"`
}

// TransferInResult answers TransferIn.
type TransferInResult struct {
	result
	Value uint64 `json:"value"`
}

// PayResult answers PayRequest.
type PayResult struct {
	result
	Value uint64 `json:"value"`
}

func (Initialized) Kind() EventKind          { return EventInitialized }
func (SummaryResult) Kind() EventKind        { return EventSummary }
func (SourcesResult) Kind() EventKind        { return EventSources }
func (SourceSelected) Kind() EventKind       { return EventSourceSelected }
func (SourceAdded) Kind() EventKind          { return EventSourceAdded }
func (ConfirmArtifactReady) Kind() EventKind { return EventConfirmArtifactReady }
func (OperationCompleted) Kind() EventKind   { return EventOperationCompleted }
func (OperationFailed) Kind() EventKind      { return EventOperationFailed }
func (TransferOutResult) Kind() EventKind    { return EventTransferOut }
func (TransferInResult) Kind() EventKind     { return EventTransferIn }
func (PayResult) Kind() EventKind            { return EventPay }
