package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an application error so the HTTP layer can translate it
// without inspecting error strings.
type Kind int

const (
	KindServer Kind = iota
	KindNotFound
	KindValidation
	KindDuplicate
	KindUnauthenticated
	KindForbidden
	KindUpstream
)

// Error is the typed error every service returns. Handlers pass it to
// response.FromError, which is the only place status codes are chosen.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // populated for validation errors
	Err     error             // wrapped cause, not serialized
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind to an HTTP status code. Ownership and role denials
// are uniformly 403; 404 is reserved for missing entities.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindDuplicate:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(fields map[string]string) *Error {
	msgs := make([]string, 0, len(fields))
	for f, m := range fields {
		msgs = append(msgs, f+" "+m)
	}
	return &Error{Kind: KindValidation, Message: strings.Join(msgs, ", "), Fields: fields}
}

func ValidationMsg(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Duplicate(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Upstream(msg string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: cause}
}

func Server(msg string, cause error) *Error {
	return &Error{Kind: KindServer, Message: msg, Err: cause}
}

// KindOf extracts the kind from any error, defaulting to KindServer.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindServer
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
