// Package domainerrors provides coded domain errors for the protocol.
//
// Every externally visible failure carries exactly one Code so callers and the
// transport layer can branch on the kind of failure without string matching.
// Stores and infrastructure return plain errors; services translate them here.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies the kind of a domain failure.
type Code string

const (
	// CodeUnauthorized means the caller lacks permission or the required
	// verification level.
	CodeUnauthorized Code = "unauthorized"
	// CodeInvalidParameters covers shape, range, and whitelist failures.
	CodeInvalidParameters Code = "invalid_parameters"
	// CodeAlreadyExists means a record with the same key is already present.
	CodeAlreadyExists Code = "already_exists"
	// CodeNotFound means a referenced identity or proposal does not exist.
	CodeNotFound Code = "not_found"
	// CodeInsufficientReputation means a weighted-score threshold was not met.
	CodeInsufficientReputation Code = "insufficient_reputation"
	// CodeInsufficientStake means the stake is below the protocol minimum.
	CodeInsufficientStake Code = "insufficient_stake"
	// CodeRateLimited means the per-day application cap was reached.
	CodeRateLimited Code = "rate_limited"
	// CodeInvalidAttestationImpact means the impact exceeds the attester's
	// allowance.
	CodeInvalidAttestationImpact Code = "invalid_attestation_impact"
	// CodeInvalidDuration means a block duration is zero or above its ceiling.
	CodeInvalidDuration Code = "invalid_duration"
	// CodeInvalidString means a string failed shape validation.
	CodeInvalidString Code = "invalid_string"
	// CodeProtocolPaused means the protocol is paused and rejects mutations.
	CodeProtocolPaused Code = "protocol_paused"
	// CodeInternal is for unexpected infrastructure failures.
	CodeInternal Code = "internal"
)

// Error is a domain error with a code and a human-readable message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in the domain.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
