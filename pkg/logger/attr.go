package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Command records the command kind under the key "command".
func Command(kind string) slog.Attr {
	return slog.String("command", kind)
}

// EventKind records the event kind under the key "event".
func EventKind(kind string) slog.Attr {
	return slog.String("event", kind)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// OperationID records a pending operation identifier under the key "operation_id".
func OperationID(id string) slog.Attr {
	return slog.String("operation_id", id)
}

// Source records the mint source URL under the key "source".
// An empty URL yields an empty Attr.
func Source(url string) slog.Attr {
	if url == "" {
		return slog.Attr{}
	}
	return slog.String("source", url)
}

// Amount records a value amount under the key "amount".
func Amount(v uint64) slog.Attr {
	return slog.Uint64("amount", v)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
