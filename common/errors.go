package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Kind is the stable tag attached to every error surfaced by the API.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindAuthorization Kind = "authorization"
	KindConflict      Kind = "conflict"
	KindTransient     Kind = "transient"
)

// Error carries a kind tag plus a message safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Transient(err error) *Error {
	return &Error{Kind: KindTransient, Message: "storage temporarily unavailable", Err: err}
}

// FromGorm translates storage errors into the taxonomy. notFoundMsg is used
// when the row is simply absent.
func FromGorm(err error, notFoundMsg string) *Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMsg)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Kind: KindConflict, Message: "duplicate record", Err: err}
	}
	return Transient(err)
}

// KindOf extracts the kind from any error in the chain, defaulting to transient.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransient
}

func statusOf(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the error envelope. Transient failures hide the internal
// cause from the caller.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	msg := err.Error()

	var e *Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	if kind == KindTransient {
		msg = "storage temporarily unavailable"
	}

	c.JSON(statusOf(kind), gin.H{"code": 1, "kind": string(kind), "error": msg})
}
