package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers and for the transport layer
type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindNotFound          Kind = "not_found"
	KindCapacityExhausted Kind = "capacity_exhausted"
	KindInternal          Kind = "internal"
)

// Error is a business or infrastructure failure with a stable machine code.
// Two errors with the same Code are considered equal by errors.Is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg = msg + ": " + e.Detail
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy carrying a human readable detail
func (e *Error) WithDetail(format string, args ...interface{}) *Error {
	cp := *e
	cp.Detail = fmt.Sprintf(format, args...)
	return &cp
}

// Wrap returns a copy with err attached as the cause
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// Error definitions
var (
	ErrInvalidSpotName = &Error{Kind: KindValidation, Code: "invalid_spot_name", Message: "spot name is invalid"}
	ErrEmptySlotList   = &Error{Kind: KindValidation, Code: "empty_slot_list", Message: "a spot needs at least one slot"}
	ErrInvalidSlotSpec = &Error{Kind: KindValidation, Code: "invalid_slot_spec", Message: "slot specification is invalid"}
	ErrInvalidRequest  = &Error{Kind: KindValidation, Code: "invalid_request", Message: "request body is invalid"}

	ErrNameConflict = &Error{Kind: KindConflict, Code: "name_conflict", Message: "a spot with this name already exists"}

	ErrSpotNotFound   = &Error{Kind: KindNotFound, Code: "spot_not_found", Message: "spot not found"}
	ErrTicketNotFound = &Error{Kind: KindNotFound, Code: "ticket_not_found", Message: "ticket not found"}

	ErrSoldOut = &Error{Kind: KindCapacityExhausted, Code: "sold_out", Message: "no slot has remaining capacity"}

	ErrStoreUnavailable = &Error{Kind: KindInternal, Code: "store_unavailable", Message: "store is temporarily unavailable"}
	ErrInternal         = &Error{Kind: KindInternal, Code: "internal_error", Message: "internal error"}
)

// KindOf reports the kind of err, treating anything unclassified as internal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// CodeOf returns the machine code of err, or the internal error code
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal.Code
}

// IsRetryable reports whether the caller may safely try the same operation again
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
