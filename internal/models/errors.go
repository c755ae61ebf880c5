package models

import (
	"errors"
	"fmt"
)

// ErrMissingUser is returned when an interaction payload carries neither a
// "user" nor a "member" key, so no invoking user can be resolved.
var ErrMissingUser = errors.New("expected user or member")

// MissingFieldError reports a required key absent from an interaction payload.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// FieldTypeError reports a key whose value could not be decoded into the
// expected shape.
type FieldTypeError struct {
	Field string
	Err   error
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldTypeError) Unwrap() error { return e.Err }

// MaxContentLength is the message content limit imposed by Discord,
// in unicode code points.
const MaxContentLength = 2000

// ContentTooLongError is returned before any network call when outbound
// message content exceeds MaxContentLength.
type ContentTooLongError struct {
	Length int
}

func (e *ContentTooLongError) Error() string {
	return fmt.Sprintf("message content is %d code points, limit is %d", e.Length, MaxContentLength)
}
