// Package apperror carries the service-wide error taxonomy. Every failure
// surfaced to a caller is one of these kinds; controllers map kinds to HTTP
// statuses without inspecting message text.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindValidation marks malformed or out-of-range input.
	KindValidation Kind = "validation"
	// KindNotFound marks an absent resource, or one the caller does not own.
	// Ownership failures are reported identically to absence so existence is
	// never leaked to non-owners.
	KindNotFound Kind = "not_found"
	// KindInsufficientData marks a question pool too small to satisfy a
	// full-interview request.
	KindInsufficientData Kind = "insufficient_data"
	// KindUpstream marks an unreachable or erroring scoring provider.
	KindUpstream Kind = "upstream"
	// KindSchema marks a provider response that arrived but does not match
	// the feedback contract.
	KindSchema Kind = "schema"
	// KindInternal covers everything else; callers should not branch on it.
	KindInternal Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InsufficientData(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInsufficientData, Message: fmt.Sprintf(format, args...)}
}

func Upstream(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf(format, args...), Err: err}
}

func Schema(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindSchema, Message: fmt.Sprintf(format, args...), Err: err}
}

func Internal(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the taxonomy kind from an error chain, defaulting to
// KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
