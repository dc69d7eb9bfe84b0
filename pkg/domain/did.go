package domain

import (
	dErrors "laurel/pkg/domain-errors"
)

// DID is the decentralized identifier a registrant chooses for their identity.
// It is an opaque handle; the protocol does not resolve it anywhere.
//
// Invariant: 6-50 characters, lowercase letters, digits, and separators, and
// must not begin or end with a separator.
type DID string

const (
	minDIDLength = 6
	maxDIDLength = 50
)

// ParseDID constructs a DID from external input, enforcing the shape
// invariant at the trust boundary.
//
// Errors: returns CodeInvalidString for every shape violation; no other
// errors are expected.
func ParseDID(s string) (DID, error) {
	if len(s) < minDIDLength {
		return "", dErrors.New(dErrors.CodeInvalidString, "did must be at least 6 characters")
	}
	if len(s) > maxDIDLength {
		return "", dErrors.New(dErrors.CodeInvalidString, "did must be at most 50 characters")
	}
	for _, r := range s {
		if !isDIDRune(r) {
			return "", dErrors.New(dErrors.CodeInvalidString, "did contains invalid characters")
		}
	}
	if isSeparator(rune(s[0])) || isSeparator(rune(s[len(s)-1])) {
		return "", dErrors.New(dErrors.CodeInvalidString, "did cannot begin or end with a separator")
	}
	return DID(s), nil
}

func (d DID) String() string { return string(d) }

func isDIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return isSeparator(r)
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || r == '.'
}
