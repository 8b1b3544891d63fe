// Package errors defines the coded error type used throughout swapcpi.
//
// Every failure a swap dispatch can produce on its own carries a stable code so
// callers can match it with errors.Is regardless of the message. Failures that
// originate in the host are never wrapped in a SwapError; they are returned as-is.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for swapcpi.
const (
	ErrCodeNotEnoughAccountKeys   = "NOT_ENOUGH_ACCOUNT_KEYS"
	ErrCodeInvalidAccountData     = "INVALID_ACCOUNT_DATA"
	ErrCodeInvalidInstructionData = "INVALID_INSTRUCTION_DATA"
	ErrCodeDuplicateProgram       = "DUPLICATE_PROGRAM"
	ErrCodeMissingAccount         = "MISSING_ACCOUNT"
	ErrCodeMissingSigner          = "MISSING_SIGNER"
	ErrCodeReadonlyAccount        = "READONLY_ACCOUNT"
	ErrCodePDASigningUnsupported  = "PDA_SIGNING_UNSUPPORTED"
	ErrCodeInvokeFailed           = "INVOKE_FAILED"
	ErrCodeInvalidAmount          = "INVALID_AMOUNT"
	ErrCodeInvalidMode            = "INVALID_MODE"
	ErrCodeCustom                 = "CUSTOM"
)

// SwapError represents an error in swapcpi.
type SwapError struct {
	// Code is a unique error code for this error type.
	Code string

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error

	// Details contains additional error context.
	Details map[string]any
}

// Error implements the error interface.
func (e *SwapError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *SwapError) Unwrap() error {
	return e.Cause
}

// Is reports whether the error matches the target by code.
func (e *SwapError) Is(target error) bool {
	t, ok := target.(*SwapError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error carrying cause.
// The pre-defined sentinels are shared, so they are never mutated in place.
func (e *SwapError) WithCause(cause error) *SwapError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// WithDetails returns a copy of the error carrying details.
func (e *SwapError) WithDetails(details map[string]any) *SwapError {
	cp := *e
	cp.Details = details
	return &cp
}

// NewError creates a new SwapError.
func NewError(code, message string) *SwapError {
	return &SwapError{
		Code:    code,
		Message: message,
	}
}

// Pre-defined errors for common error cases.
var (
	// ErrNotEnoughAccountKeys is returned when the account list is shorter than the protocol needs.
	ErrNotEnoughAccountKeys = NewError(ErrCodeNotEnoughAccountKeys, "not enough account keys")

	// ErrInvalidAccountData is returned when no registered protocol owns the detector account.
	ErrInvalidAccountData = NewError(ErrCodeInvalidAccountData, "invalid account data")

	// ErrInvalidInstructionData is returned when instruction data cannot be decoded.
	ErrInvalidInstructionData = NewError(ErrCodeInvalidInstructionData, "invalid instruction data")

	// ErrDuplicateProgram is returned when a program ID is registered twice.
	ErrDuplicateProgram = NewError(ErrCodeDuplicateProgram, "program already registered")

	// ErrMissingAccount is returned when an instruction references an account the caller did not pass.
	ErrMissingAccount = NewError(ErrCodeMissingAccount, "instruction account not provided")

	// ErrMissingSigner is returned when a signer meta has neither a signature nor matching seeds.
	ErrMissingSigner = NewError(ErrCodeMissingSigner, "missing required signature")

	// ErrReadonlyAccount is returned when a writable meta maps to a read-only account.
	ErrReadonlyAccount = NewError(ErrCodeReadonlyAccount, "writable privilege escalated")

	// ErrPDASigningUnsupported is returned by hosts that cannot sign with program seeds.
	ErrPDASigningUnsupported = NewError(ErrCodePDASigningUnsupported, "program derived signing is not supported by this host")

	// ErrInvokeFailed is returned when a host rejects or fails an instruction.
	ErrInvokeFailed = NewError(ErrCodeInvokeFailed, "invoke failed")

	// ErrInvalidAmount is returned when an amount cannot be represented as u64.
	ErrInvalidAmount = NewError(ErrCodeInvalidAmount, "invalid amount")

	// ErrInvalidMode is returned when a swap mode string is not recognised.
	ErrInvalidMode = NewError(ErrCodeInvalidMode, "invalid swap mode")
)

// NotEnoughAccountKeys creates an error reporting the required and supplied account counts.
func NotEnoughAccountKeys(protocol string, want, got int) *SwapError {
	return ErrNotEnoughAccountKeys.WithDetails(map[string]any{
		"protocol": protocol,
		"want":     want,
		"got":      got,
	})
}

// InvalidInstructionData creates an error for undecodable instruction data.
func InvalidInstructionData(reason string) *SwapError {
	return NewError(ErrCodeInvalidInstructionData, fmt.Sprintf("invalid instruction data: %s", reason))
}

// InvokeFailed creates an error for a failed host invocation.
func InvokeFailed(cause error) *SwapError {
	return ErrInvokeFailed.WithCause(cause)
}

// Custom creates a custom error with the given message.
func Custom(message string) *SwapError {
	return NewError(ErrCodeCustom, message)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
