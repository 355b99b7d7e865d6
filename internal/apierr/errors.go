// Package apierr classifies failures surfaced to the host into routing,
// validation and handler faults, and renders them in the error envelope.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bhandras/rfext/internal/response"
)

var (
	// ErrUnknownCommand is returned for a command name with no handler.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingArgument is returned when a required query argument is absent.
	ErrMissingArgument = errors.New("missing argument")
	// ErrMissingServiceToken is returned when a map assignment carries no
	// service token.
	ErrMissingServiceToken = errors.New("missing service token")
	// ErrMissingDelegatedToken is returned when a command that calls back
	// into the host is invoked without a delegated token.
	ErrMissingDelegatedToken = errors.New("missing delegated token")
)

// Kind is the failure class.
type Kind int

const (
	// KindRouting is an unknown command or unmatched route.
	KindRouting Kind = iota + 1
	// KindValidation is a malformed request or invalid response data.
	KindValidation
	// KindHandlerFault is any failure raised inside a command handler.
	KindHandlerFault
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRouting:
		return "routing"
	case KindValidation:
		return "validation"
	case KindHandlerFault:
		return "handler_fault"
	default:
		return "unknown"
	}
}

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string
	// Traceback holds debugging detail for handler faults.
	Traceback []string
	Cause     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Status returns the HTTP status for the failure class.
func (e *Error) Status() int {
	switch e.Kind {
	case KindRouting:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Variant renders the error envelope. Traceback detail is included only when
// exposeTraceback is set.
func (e *Error) Variant(exposeTraceback bool) response.Variant {
	var trace []string
	if exposeTraceback && len(e.Traceback) > 0 {
		trace = e.Traceback
	}
	return response.NewFault(e.Status(), e.Message, trace)
}

// Routing builds a routing failure.
func Routing(format string, args ...any) *Error {
	return &Error{Kind: KindRouting, Message: fmt.Sprintf(format, args...), Cause: ErrUnknownCommand}
}

// Validation builds a validation failure wrapping cause.
func Validation(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Fault builds a handler fault.
func Fault(cause error, traceback []string) *Error {
	msg := "internal error"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindHandlerFault, Message: msg, Traceback: traceback, Cause: cause}
}

// From classifies an arbitrary error. Classified errors pass through;
// invalid response data and missing inputs become validation failures and
// anything else is a handler fault.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}
	switch {
	case errors.Is(err, ErrUnknownCommand):
		return &Error{Kind: KindRouting, Message: err.Error(), Cause: err}
	case errors.Is(err, response.ErrInvalidResponseData),
		errors.Is(err, ErrMissingArgument),
		errors.Is(err, ErrMissingServiceToken),
		errors.Is(err, ErrMissingDelegatedToken):
		return &Error{Kind: KindValidation, Message: err.Error(), Cause: err}
	default:
		return Fault(err, Chain(err))
	}
}

// Chain lists the messages of err and every error it wraps, outermost first.
func Chain(err error) []string {
	var lines []string
	for err != nil {
		lines = append(lines, fmt.Sprintf("%T: %s", err, err.Error()))
		err = errors.Unwrap(err)
	}
	return lines
}
