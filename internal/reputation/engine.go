// Package reputation implements the scoring engine: time decay, the weighted
// score formula, and the whitelisted action application with its anti-gaming
// daily caps.
package reputation

import (
	"laurel/internal/domain"
	"laurel/internal/protocol"
)

// Decayed returns the identity with lazy decay applied as of height. It is a
// pure function of (stored identity, height); no timers or background jobs
// ever recompute scores.
//
// Decay is idempotent within one DecayBlocks window: a second application at
// the same height, or any height inside the same window, is a no-op.
func Decayed(ident domain.Identity, height uint64) domain.Identity {
	if height <= ident.LastDecay {
		return ident
	}
	elapsed := height - ident.LastDecay
	periods := elapsed / protocol.DecayBlocks
	if periods == 0 {
		return ident
	}

	rate := protocol.BaseDecayRate + periods/10
	if rate > protocol.MaxDecayRate {
		rate = protocol.MaxDecayRate
	}
	amount := ident.ReputationScore * rate / 100
	if amount > ident.ReputationScore {
		amount = ident.ReputationScore
	}
	ident.ReputationScore -= amount
	ident.LastDecay = height
	ident.WeightedScore = WeightedScore(ident)
	return ident
}

// WeightedScore derives the threshold-gating score from the base score plus
// stake, activity, and verification bonuses, saturating at MaxScore.
func WeightedScore(ident domain.Identity) uint64 {
	stakeBonus := ident.StakedAmount * 10 / protocol.MinStake
	activityBonus := ident.ActivityCount * 5
	if activityBonus > 500 {
		activityBonus = 500
	}
	verificationBonus := ident.VerificationLevel * 100

	weighted := ident.ReputationScore + stakeBonus + activityBonus + verificationBonus
	if weighted > protocol.MaxScore {
		weighted = protocol.MaxScore
	}
	return weighted
}

// Gain computes the reputation earned by one application of an action,
// scaling the action's base multiplier by verification and stake bonuses and
// capping the result at MaxReputationGain.
func Gain(cfg domain.ActionConfig, ident domain.Identity) uint64 {
	verificationBonus := 100 + ident.VerificationLevel*20
	stakeBonus := uint64(100)
	if extra := ident.StakedAmount / protocol.MinStake; extra < 50 {
		stakeBonus += extra
	} else {
		stakeBonus += 50
	}
	total := cfg.BaseMultiplier * verificationBonus * stakeBonus / 10_000
	if total > protocol.MaxReputationGain {
		total = protocol.MaxReputationGain
	}
	return total
}

// applyGain adds a gain to the base score, saturating at MaxScore, and
// recomputes the weighted score.
func applyGain(ident domain.Identity, gain uint64) domain.Identity {
	ident.ReputationScore += gain
	if ident.ReputationScore > protocol.MaxScore {
		ident.ReputationScore = protocol.MaxScore
	}
	ident.WeightedScore = WeightedScore(ident)
	return ident
}
