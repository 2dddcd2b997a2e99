package mux

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when neither auto-routing nor the declared
// routes produce a handler. Triggers 404 Not Found per RFC 9110
// Section 15.5.5.
var ErrNotFound = errors.New("no matching route was found")

// ErrUnknownMatchType is reported when a placeholder names a match type
// that is not registered.
var ErrUnknownMatchType = errors.New("unknown match type")

// ErrMalformedPlaceholder is reported when a pattern contains square
// brackets that do not form a placeholder.
var ErrMalformedPlaceholder = errors.New("malformed placeholder")

// ErrNoEndpoint is returned by auto-routing when no endpoint type could
// be resolved from the path and no default endpoint is configured.
var ErrNoEndpoint = errors.New("no endpoint resolved and no default endpoint configured")

// ErrNoAction is returned by auto-routing when the resolved endpoint has
// neither a matching action nor a default action.
var ErrNoAction = errors.New("no action resolved")

// ErrUnknownEndpoint is returned when a route or configuration names an
// endpoint type that is not registered.
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// ErrDuplicateEndpoint is returned when an endpoint type name is
// registered twice.
var ErrDuplicateEndpoint = errors.New("endpoint already registered")

// ErrNoFactory is returned when an endpoint type without a factory is
// registered.
var ErrNoFactory = errors.New("endpoint type has no factory")

// NotFoundError reports a path for which no route was found.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("mux: %s: %q", ErrNotFound, e.Path)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DispatchError wraps a failure raised by a hook or an endpoint while a
// request was being dispatched.
type DispatchError struct {
	Path     string
	Endpoint string
	Method   string
	Err      error
}

func (e *DispatchError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("mux: dispatch %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("mux: dispatch %q to %s.%s: %v", e.Path, e.Endpoint, e.Method, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// PanicError carries a value recovered from a panicking hook or action.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// CompileError reports a route pattern that cannot be compiled. It is
// returned at registration time.
type CompileError struct {
	Pattern string
	Token   string
	Err     error
}

func (e *CompileError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("mux: compile %q: %v %q", e.Pattern, e.Err, e.Token)
	}
	return fmt.Sprintf("mux: compile %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// StatusCode maps a dispatch error to an HTTP status code.
func StatusCode(err error) int {
	var statusErr interface{ StatusCode() int }

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &statusErr):
		return statusErr.StatusCode()
	default:
		return http.StatusInternalServerError
	}
}

// HTTPError is an error an action can return to choose the status code of
// the failed response.
type HTTPError struct {
	Code    int
	Message string
}

// NewHTTPError returns an HTTPError. An empty message defaults to the
// status text of code.
func NewHTTPError(code int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return &HTTPError{Code: code, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code carried by the error.
func (e *HTTPError) StatusCode() int {
	return e.Code
}
