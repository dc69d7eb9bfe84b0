package domain

import (
	dErrors "laurel/pkg/domain-errors"
)

// AccountID is the host-ledger principal that invokes protocol operations.
// It is opaque to the protocol; only shape is validated.
type AccountID string

const maxAccountIDLength = 128

// ParseAccountID constructs an AccountID from external input.
//
// Usage: call from handlers/adapters when parsing requests; direct casting
// bypasses validation.
func ParseAccountID(s string) (AccountID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidString, "account id cannot be empty")
	}
	if len(s) > maxAccountIDLength {
		return "", dErrors.New(dErrors.CodeInvalidString, "account id too long")
	}
	for _, r := range s {
		if !isAccountRune(r) {
			return "", dErrors.New(dErrors.CodeInvalidString, "account id contains invalid characters")
		}
	}
	return AccountID(s), nil
}

func (a AccountID) String() string { return string(a) }

// IsZero reports whether the account id is unset.
func (a AccountID) IsZero() bool { return a == "" }

func isAccountRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '.':
		return true
	}
	return false
}
