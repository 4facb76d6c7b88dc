// Package logger builds the *slog.Logger used across mintshell and provides
// attribute helpers that keep key names consistent between the actor, the
// scheduler and the event sinks.
//
// New applies a set of Option functions, picks a text or JSON handler and wraps
// it with LogHandlerDecorator, which runs registered ContextExtractor callbacks
// on every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("mintshell"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.Info("operation completed",
//	    logger.OperationID(quoteID),
//	    logger.Amount(1000),
//	)
//
// # Attributes
//
// Error returns an empty slog.Attr for a nil error, so call sites can
// pass it unconditionally:
//
//	log.Warn("event not delivered", logger.EventKind(kind), logger.Error(err))
package logger
