package wallet

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/mintshell/pkg/sink"
)

// CommandKind names a command in logs and metrics.
type CommandKind string

const (
	KindInit                CommandKind = "init"
	KindGetSummary          CommandKind = "get_summary"
	KindListSources         CommandKind = "list_sources"
	KindSelectSource        CommandKind = "select_source"
	KindAddSource           CommandKind = "add_source"
	KindBeginConfirmReceive CommandKind = "begin_confirm_receive"
	KindCheckOperation      CommandKind = "check_operation"
	KindTransferOut         CommandKind = "transfer_out"
	KindTransferIn          CommandKind = "transfer_in"
	KindPayRequest          CommandKind = "pay_request"
)

// Command is a request handled by the actor.
type Command interface {
	Kind() CommandKind
	isCommand()
}

// Init supplies the event destination and opens the wallet session.
// It may be resubmitted after a failed attempt, or later to swap the sink.
type Init struct {
	Sink sink.Sink[Envelope]
}

// GetSummary asks for the total balance and known sources.
type GetSummary struct{}

// ListSources asks for every known source with its balance.
type ListSources struct{}

// SelectSource selects a known source by URL or, when URL is empty, by
// 1-based Index.
type SelectSource struct {
	URL   string
	Index int
}

// AddSource registers a new source and selects it.
type AddSource struct {
	URL string
}

// BeginConfirmReceive requests a payment request for Amount from the selected
// source and tracks it until it is paid or its deadline passes.
type BeginConfirmReceive struct {
	Amount uint64
}

// CheckOperation is issued by the poll scheduler only.
type CheckOperation struct {
	ID     string
	Source string
	Quote  Quote
	Final  bool
}

// TransferOut takes Amount out of the selected source as a bearer token.
type TransferOut struct {
	Amount uint64
}

// TransferIn redeems a bearer token into the selected source.
type TransferIn struct {
	Token string
}

// PayRequest pays an external payment request from the selected source.
type PayRequest struct {
	Request string
}

func (Init) Kind() CommandKind                { return KindInit }
func (GetSummary) Kind() CommandKind          { return KindGetSummary }
func (ListSources) Kind() CommandKind         { return KindListSources }
func (SelectSource) Kind() CommandKind        { return KindSelectSource }
func (AddSource) Kind() CommandKind           { return KindAddSource }
func (BeginConfirmReceive) Kind() CommandKind { return KindBeginConfirmReceive }
func (CheckOperation) Kind() CommandKind      { return KindCheckOperation }
func (TransferOut) Kind() CommandKind         { return KindTransferOut }
func (TransferIn) Kind() CommandKind          { return KindTransferIn }
func (PayRequest) Kind() CommandKind          { return KindPayRequest }

func (Init) isCommand()                {}
func (GetSummary) isCommand()          {}
func (ListSources) isCommand()         {}
func (SelectSource) isCommand()        {}
func (AddSource) isCommand()           {}
func (BeginConfirmReceive) isCommand() {}
func (CheckOperation) isCommand()      {}
func (TransferOut) isCommand()         {}
func (TransferIn) isCommand()          {}
func (PayRequest) isCommand()          {}

// request is a command with the id returned by Submit. Follow-ups and
// scheduled checks carry the id of the request that caused them.
type request struct {
	id  uuid.UUID
	cmd Command
}
