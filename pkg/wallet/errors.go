package wallet

import "errors"

// Input errors, reported to the subscriber with FailureInput.
var (
	// ErrNoSourceSelected is returned when an operation needs a source and none is selected
	ErrNoSourceSelected = errors.New("no source selected")

	// ErrInvalidAmount is returned for zero amounts
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidSource is returned for malformed or unknown source urls
	ErrInvalidSource = errors.New("invalid source")

	// ErrSourceIndex is returned when a 1-based source index is out of range
	ErrSourceIndex = errors.New("invalid source index")

	// ErrEmptyArtifact is returned for empty tokens and payment requests
	ErrEmptyArtifact = errors.New("artifact cannot be empty")
)

// Operation outcomes.
var (
	// ErrOperationTimeout is reported when an operation is still unconfirmed at its deadline
	ErrOperationTimeout = errors.New("operation not confirmed before deadline")

	// ErrQuoteExpired is reported when the collaborator expires a pending quote
	ErrQuoteExpired = errors.New("quote expired")

	// ErrIncompleteResponse is reported when the collaborator omits a required field
	ErrIncompleteResponse = errors.New("incomplete response from collaborator")

	// ErrNoWallet is reported when a connector succeeds without returning a wallet
	ErrNoWallet = errors.New("connector returned no wallet")
)

// Actor API errors.
var (
	// ErrCommandQueueFull is returned by Submit when the command buffer is saturated
	ErrCommandQueueFull = errors.New("command queue is full")

	// ErrInternalCommand is returned by Submit for commands only the actor may issue
	ErrInternalCommand = errors.New("command cannot be submitted externally")

	// ErrNilCommand is returned by Submit for a nil command
	ErrNilCommand = errors.New("command cannot be nil")

	// ErrNilSink is returned by Submit for an Init without an event sink
	ErrNilSink = errors.New("init requires an event sink")

	// ErrAlreadyRunning is returned by a second call to Run
	ErrAlreadyRunning = errors.New("actor is already running")

	// ErrNotRunning is returned by Submit after Run has returned
	ErrNotRunning = errors.New("actor is not running")

	// ErrConnectorNil is returned by New without a connector
	ErrConnectorNil = errors.New("connector cannot be nil")
)

// inputErrors classify failures as FailureInput.
var inputErrors = []error{
	ErrNoSourceSelected,
	ErrInvalidAmount,
	ErrInvalidSource,
	ErrSourceIndex,
	ErrEmptyArtifact,
}
