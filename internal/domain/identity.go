package domain

import (
	id "laurel/pkg/domain"
)

// Identity is the stake-backed record the protocol keeps per account. One
// identity per account, created once and never deleted.
//
// Invariants: ReputationScore and WeightedScore stay within [0, MaxScore];
// LastDecay never exceeds the current block height.
type Identity struct {
	Account           id.AccountID
	DID               id.DID
	ReputationScore   uint64
	WeightedScore     uint64
	StakedAmount      uint64
	CreatedAt         uint64
	LastUpdated       uint64
	LastDecay         uint64
	ActivityCount     uint64
	VerificationLevel uint64
}

// Verification levels. Level 1 and above grants governance membership and
// access to verification-gated actions.
const (
	VerificationBasic    uint64 = 0
	VerificationVerified uint64 = 1
	VerificationPremium  uint64 = 2
)

// Profile is the decay-applied view of an identity returned to callers.
//
// AttestationBonus is always 0: the attestation impact helper exists but is
// not aggregated into profiles. Which attestations count, how expired ones
// are excluded, and how conflicts sum is an open design decision; until it is
// made the field stays a placeholder.
type Profile struct {
	Account           id.AccountID
	DID               id.DID
	ReputationScore   uint64
	WeightedScore     uint64
	StakedAmount      uint64
	ActivityCount     uint64
	VerificationLevel uint64
	AttestationBonus  int64
	CreatedAt         uint64
	LastUpdated       uint64
}
