package stats

import "errors"

// Kind classifies failures surfaced by the stats core.
type Kind string

const (
	// KindDataSourceUnavailable means the row set could not be produced at all.
	KindDataSourceUnavailable Kind = "DATA_SOURCE_UNAVAILABLE"
	// KindStaleResponse marks the result of a superseded fetch; callers drop it silently.
	KindStaleResponse Kind = "STALE_RESPONSE_DISCARDED"
	// KindMalformedValue marks a single cell that does not parse under its column kind.
	KindMalformedValue Kind = "MALFORMED_VALUE"
)

// Error is the domain error with a kind and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string // user-facing message; the cause is for logs
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

var (
	// ErrDataSourceUnavailable is matched with errors.Is against any unavailable failure.
	ErrDataSourceUnavailable = &Error{Kind: KindDataSourceUnavailable, Message: "Failed to load country stats."}
	// ErrStaleResponse is returned for the result of a load superseded by a newer one.
	ErrStaleResponse = &Error{Kind: KindStaleResponse, Message: "stale response discarded"}
)

// Unavailable wraps cause as a DataSourceUnavailable failure.
func Unavailable(cause error) *Error {
	return &Error{
		Kind:    KindDataSourceUnavailable,
		Message: ErrDataSourceUnavailable.Message,
		Cause:   cause,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
