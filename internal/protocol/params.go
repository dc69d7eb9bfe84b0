// Package protocol holds the protocol-wide singleton state and the owner-only
// administrative operations.
package protocol

// Protocol parameters. These mirror the deployed contract constants; changing
// them changes consensus-visible behavior, so they are compile-time values
// rather than configuration.
const (
	// MinStake is the smallest stake accepted at registration, in host
	// ledger units.
	MinStake uint64 = 1_000_000
	// MaxStakeMultiple caps registration stakes at MaxStakeMultiple*MinStake.
	MaxStakeMultiple uint64 = 1000

	// MaxScore bounds both the base and the weighted reputation score.
	MaxScore uint64 = 10_000
	// BootstrapScore is granted to every new identity.
	BootstrapScore uint64 = 100
	// MaxReputationGain caps the score increase of a single action.
	MaxReputationGain uint64 = 100

	// BlocksPerDay sizes the anti-gaming day window.
	BlocksPerDay uint64 = 144
	// DecayBlocks sizes one reputation decay window.
	DecayBlocks uint64 = 1008
	// BaseDecayRate is the percentage lost after one idle decay window.
	BaseDecayRate uint64 = 5
	// MaxDecayRate caps the decay percentage however long the idle stretch.
	MaxDecayRate uint64 = 20

	// VotingPeriodBlocks is the fixed voting window of every proposal.
	VotingPeriodBlocks uint64 = 1008
	// ProposalMinWeighted gates proposal creation.
	ProposalMinWeighted uint64 = 500
	// VoteMinWeight gates vote casting.
	VoteMinWeight uint64 = 200

	// MaxAttestationImpact bounds the absolute impact of any attestation.
	MaxAttestationImpact int64 = 50
	// MaxAttestationBlocks bounds attestation duration.
	MaxAttestationBlocks uint64 = 4320
	// ImpactAllowanceDivisor self-limits impact to weighted score divided by
	// this value, so only highly reputed accounts assert large impacts.
	ImpactAllowanceDivisor uint64 = 20
)

// DayIndex maps a block height onto the anti-gaming day window.
func DayIndex(height uint64) uint64 {
	return height / BlocksPerDay
}
