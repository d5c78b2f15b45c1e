package logger

import (
	"fmt"
	"log/slog"
)

// Error records err under "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Code records an issued code under "code".
func Code(code fmt.Stringer) slog.Attr {
	return slog.String("code", code.String())
}

// Count records a count under "count".
func Count(n int64) slog.Attr {
	return slog.Int64("count", n)
}

// RequestID records a request identifier under "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}
