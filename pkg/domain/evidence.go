package domain

import (
	"encoding/hex"

	dErrors "laurel/pkg/domain-errors"
)

// EvidenceHash is the 32-byte commitment submitted with a reputation action.
// The protocol never dereferences it; the all-zero value is reserved as the
// "no evidence" sentinel and rejected.
type EvidenceHash [32]byte

// ParseEvidenceHash decodes a hex-encoded 32-byte hash from external input.
//
// Errors: returns CodeInvalidParameters for wrong length, bad hex, or the
// all-zero sentinel.
func ParseEvidenceHash(s string) (EvidenceHash, error) {
	var h EvidenceHash
	raw, err := hex.DecodeString(s)
	if err != nil {
		return h, dErrors.New(dErrors.CodeInvalidParameters, "evidence hash must be hex encoded")
	}
	if len(raw) != len(h) {
		return h, dErrors.New(dErrors.CodeInvalidParameters, "evidence hash must be 32 bytes")
	}
	copy(h[:], raw)
	if h.IsZero() {
		return h, dErrors.New(dErrors.CodeInvalidParameters, "evidence hash cannot be zero")
	}
	return h, nil
}

// IsZero reports whether the hash is the all-zero sentinel.
func (h EvidenceHash) IsZero() bool {
	return h == EvidenceHash{}
}

func (h EvidenceHash) String() string {
	return hex.EncodeToString(h[:])
}
