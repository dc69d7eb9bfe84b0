package domain

import (
	dErrors "laurel/pkg/domain-errors"
)

// ProposalAction identifies what a governance proposal intends to change.
// Invariant: the value must be one of the supported proposal actions; each
// action bounds the target value it may carry.
type ProposalAction string

// Supported proposal actions.
const (
	ProposalUpdateMultiplier ProposalAction = "update-multiplier"
	ProposalFeeAdjustment    ProposalAction = "fee-adjustment"
	ProposalAddAction        ProposalAction = "add-action"
	ProposalRemoveAction     ProposalAction = "remove-action"
	ProposalUpdateThreshold  ProposalAction = "update-threshold"
	ProposalProtocolUpgrade  ProposalAction = "protocol-upgrade"
)

// proposalTargetCeilings bounds the target value per action. Fee adjustments
// are denominated in stake units and get a wider range.
var proposalTargetCeilings = map[ProposalAction]uint64{
	ProposalUpdateMultiplier: 200,
	ProposalFeeAdjustment:    1_000_000,
	ProposalAddAction:        10_000,
	ProposalRemoveAction:     10_000,
	ProposalUpdateThreshold:  10_000,
	ProposalProtocolUpgrade:  10_000,
}

// ParseProposalAction constructs a ProposalAction from external input.
//
// Errors: returns CodeInvalidString when empty, CodeInvalidParameters when
// the value is not in the supported set.
func ParseProposalAction(s string) (ProposalAction, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidString, "proposal action cannot be empty")
	}
	a := ProposalAction(s)
	if !a.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidParameters, "unsupported proposal action")
	}
	return a, nil
}

// IsValid checks if the proposal action is one of the supported values.
func (a ProposalAction) IsValid() bool {
	_, ok := proposalTargetCeilings[a]
	return ok
}

// MaxTargetValue returns the ceiling for the target value this action may
// carry. Returns 0 for unknown actions.
func (a ProposalAction) MaxTargetValue() uint64 {
	return proposalTargetCeilings[a]
}

func (a ProposalAction) String() string { return string(a) }
