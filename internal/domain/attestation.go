package domain

import (
	id "laurel/pkg/domain"
)

// Attestation is a directed, expiring, bounded-impact endorsement one
// identity makes about another. At most one live attestation exists per
// (attester, target) pair; a new call overwrites the previous one.
type Attestation struct {
	Attester  id.AccountID
	Target    id.AccountID
	Impact    int64
	Type      id.AttestationType
	CreatedAt uint64
	ExpiresAt uint64
}

// Expired reports whether the attestation no longer carries impact at the
// given height. Expired attestations are not purged; readers treat them as
// impact 0.
func (a Attestation) Expired(height uint64) bool {
	return a.ExpiresAt <= height
}
