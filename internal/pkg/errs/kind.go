package errs

import (
	"fmt"
	"maps"

	cr "github.com/cockroachdb/errors"
)

// Kind classifies an error for callers; it decides how the error is surfaced, not where it came from.
type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindBusinessRule Kind = "BUSINESS_RULE"
	KindContention   Kind = "CONTENTION"
	KindNotFound     Kind = "NOT_FOUND"
	KindInternal     Kind = "INTERNAL"
)

// Code is a stable, machine readable rule identifier.
type Code string

// Error is the typed error returned for expected outcomes (rule violations, contention, missing rows).
// Two errors are equal under errors.Is when their kind and code match, so package level values can be
// used as sentinels while individual instances carry their own message and details.
type Error struct {
	Kind    Kind
	Code    Code
	Field   string
	Message string
	Details map[string]any
	cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Code == e.Code
}

func (e *Error) Retryable() bool {
	return e.Kind == KindContention
}

func (e *Error) clone() *Error {
	c := *e
	if e.Details != nil {
		c.Details = maps.Clone(e.Details)
	}
	return &c
}

// Withf returns a copy of e with a formatted message.
func (e *Error) Withf(format string, args ...any) *Error {
	c := e.clone()
	c.Message = fmt.Sprintf(format, args...)
	return c
}

func (e *Error) WithField(field string) *Error {
	c := e.clone()
	c.Field = field
	return c
}

func (e *Error) WithDetail(key string, value any) *Error {
	c := e.clone()
	if c.Details == nil {
		c.Details = map[string]any{}
	}
	c.Details[key] = value
	return c
}

func (e *Error) WithCause(err error) *Error {
	c := e.clone()
	c.cause = err
	return c
}

func Validation(code Code, field, msg string) *Error {
	return &Error{Kind: KindValidation, Code: code, Field: field, Message: msg}
}

func Rule(code Code, msg string) *Error {
	return &Error{Kind: KindBusinessRule, Code: code, Message: msg}
}

func Contention(code Code, msg string) *Error {
	return &Error{Kind: KindContention, Code: code, Message: msg}
}

func NotFound(code Code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func As(err error) (*Error, bool) {
	var e *Error
	if cr.As(err, &e) {
		return e, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
