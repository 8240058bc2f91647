package types

import (
	"errors"
	"fmt"
)

type ErrorCode string

func (e ErrorCode) String() string {
	return string(e)
}

const (
	// InvalidAmount is returned when a stake is attempted with a zero amount.
	InvalidAmount ErrorCode = "INVALID_AMOUNT"
	// PlanClosed is returned when a stake is attempted after the enrollment deadline.
	PlanClosed ErrorCode = "PLAN_CLOSED"
	// AlreadyStaked is returned on a second stake attempt by the same participant.
	AlreadyStaked ErrorCode = "ALREADY_STAKED"
	// InsufficientFunds is returned when the asset ledger cannot satisfy a transfer.
	InsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	// NotParticipant is returned when the caller has no stake record.
	NotParticipant ErrorCode = "NOT_PARTICIPANT"
	// NotMatured is returned when a claim is attempted before maturity time.
	NotMatured ErrorCode = "NOT_MATURED"
	// AlreadyClaimed is returned on a second claim attempt.
	AlreadyClaimed ErrorCode = "ALREADY_CLAIMED"
	// Unauthorized is returned when a non-owner calls an owner-only operation.
	Unauthorized ErrorCode = "UNAUTHORIZED"
	// Paused is returned when staking is attempted while the ledger is paused.
	Paused ErrorCode = "PAUSED"

	ValidationError      ErrorCode = "VALIDATION_ERROR"
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
)

// Error carries the ledger error taxonomy. Every failing operation reports
// exactly one code, synchronously, with no state change behind it.
type Error struct {
	Err  error
	Code ErrorCode
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Err: err}
}

func NewErrorWithMsg(code ErrorCode, msg string) *Error {
	return NewError(code, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return NewError(InternalServiceError, err)
}

// ErrorCodeOf extracts the taxonomy code from err, falling back to
// INTERNAL_SERVICE_ERROR for anything outside the taxonomy.
func ErrorCodeOf(err error) ErrorCode {
	var ledgerErr *Error
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Code
	}
	return InternalServiceError
}
