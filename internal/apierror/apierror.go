// Package apierror provides standardized error response structures for the API.
// Errors carry a Kind so the HTTP boundary can map them to status codes
// without string-matching messages, and all errors returned to clients go
// through the same envelope to prevent leaking internal details.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for status-code mapping.
type Kind int

const (
	KindInvalid      Kind = iota + 1 // malformed / missing / out-of-range fields
	KindConflict                     // duplicate email
	KindUnauthorized                 // bad credentials, missing/expired/invalid token
	KindNotFound                     // missing entity by id
	KindInternal                     // unexpected / store-transport failure
)

// Error is the canonical service-level error. Mensaje is user-visible.
type Error struct {
	Kind    Kind
	Mensaje string
}

func (e *Error) Error() string { return e.Mensaje }

func New(kind Kind, mensaje string) *Error { return &Error{Kind: kind, Mensaje: mensaje} }

func Invalid(mensaje string) *Error      { return New(KindInvalid, mensaje) }
func Conflict(mensaje string) *Error     { return New(KindConflict, mensaje) }
func Unauthorized(mensaje string) *Error { return New(KindUnauthorized, mensaje) }
func NotFound(mensaje string) *Error     { return New(KindNotFound, mensaje) }
func Internal(mensaje string) *Error     { return New(KindInternal, mensaje) }

// KindOf extracts the Kind from err; foreign errors count as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindInvalid:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respuesta is the uniform JSON error envelope: {"error": "<message>"}.
type Respuesta struct {
	Error string `json:"error"`
}

func Envelope(err error) Respuesta { return Respuesta{Error: err.Error()} }
