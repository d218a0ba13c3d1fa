package forecast

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport is reported when the transport layer signals a non-success response.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse is reported when a document violates an adapter's structural assumption.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrSchemaValidation is reported when a field's type or domain constraint is violated.
	ErrSchemaValidation = errors.New("schema validation failed")
	// ErrUnsupported is reported by provider pipelines that are intentionally not implemented.
	ErrUnsupported = errors.New("unsupported provider operation")
)

// Error carries the failure kind together with the provider and the document path
// where the failure was detected.
type Error struct {
	Kind     error
	Provider string
	Path     string
	// StatusCode is set for transport failures only.
	StatusCode int
	Msg        string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error against its kind sentinel.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Malformed builds an ErrMalformedResponse error.
func Malformed(provider, path, format string, args ...any) *Error {
	return &Error{Kind: ErrMalformedResponse, Provider: provider, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// Invalid builds an ErrSchemaValidation error.
func Invalid(provider, path, format string, args ...any) *Error {
	return &Error{Kind: ErrSchemaValidation, Provider: provider, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// Unsupported builds an ErrUnsupported error.
func Unsupported(provider, msg string) *Error {
	return &Error{Kind: ErrUnsupported, Provider: provider, Msg: msg}
}

// TransportFailure builds an ErrTransport error for the given endpoint.
func TransportFailure(provider, endpoint string, status int, err error) *Error {
	return &Error{Kind: ErrTransport, Provider: provider, Path: endpoint, StatusCode: status, Err: err}
}

// AsError extracts the *Error from err, if any.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// JoinPath appends a key to a dotted document path.
func JoinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// IndexPath appends a list index to a document path.
func IndexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
