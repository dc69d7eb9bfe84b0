package domain

import (
	id "laurel/pkg/domain"
)

// Proposal is a governance proposal. Ids are assigned sequentially from 1 and
// the voting window is fixed at creation.
//
// Executed stays false in this implementation: execution of the proposed
// action is a placeholder for a later protocol version.
type Proposal struct {
	ID           uint64
	Proposer     id.AccountID
	Title        string
	Description  string
	Action       id.ProposalAction
	TargetValue  uint64
	VotesFor     uint64
	VotesAgainst uint64
	CreatedAt    uint64
	ExpiresAt    uint64
	Executed     bool
}

// Open reports whether the proposal still accepts votes at the given height.
func (p Proposal) Open(height uint64) bool {
	return height < p.ExpiresAt
}

// Vote records one account's weighted vote on a proposal. The weight is the
// voter's weighted score at cast time and is never retroactively adjusted.
type Vote struct {
	ProposalID uint64
	Voter      id.AccountID
	VoteFor    bool
	Weight     uint64
	CastAt     uint64
}
