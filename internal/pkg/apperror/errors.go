package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies failures so transport code can map them to status codes.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindStorage      Kind = "storage"
	KindUnauthorized Kind = "unauthorized"
	KindRateLimited  Kind = "rate_limited"
)

// Violation is a single failed field rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind       Kind
	Message    string
	Violations []Violation
	Cause      error
}

func (e *Error) Error() string {
	if len(e.Violations) > 0 {
		msgs := make([]string, len(e.Violations))
		for i, v := range e.Violations {
			msgs[i] = v.Message
		}
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(msgs, "; "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(violations ...Violation) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Violations: violations}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Message: message}
}

// Storage wraps a persistence failure. Errors that already carry a Kind pass
// through untouched, and unique-key violations surface as conflicts.
func Storage(op string, cause error) error {
	if cause == nil {
		return nil
	}
	var appErr *Error
	if errors.As(cause, &appErr) {
		return cause
	}
	if IsUniqueViolation(cause) {
		return &Error{Kind: KindConflict, Message: fmt.Sprintf("%s: duplicate record", op), Cause: cause}
	}
	return &Error{Kind: KindStorage, Message: op, Cause: cause}
}

// IsUniqueViolation detects duplicate-key errors from postgres or from GORM's
// translated error set.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ViolationsOf returns the field violations carried by err.
func ViolationsOf(err error) []Violation {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Violations
	}
	return nil
}
