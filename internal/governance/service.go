// Package governance implements token-weighted proposals and voting gated by
// reputation and governance membership.
package governance

import (
	"context"
	"errors"
	"log/slog"

	"laurel/internal/domain"
	"laurel/internal/platform/metrics"
	"laurel/internal/protocol"
	"laurel/internal/reputation"
	id "laurel/pkg/domain"
	dErrors "laurel/pkg/domain-errors"
	"laurel/pkg/platform/sentinel"
)

// Proposal content bounds.
const (
	minTitleLength       = 11
	maxTitleLength       = 100
	minDescriptionLength = 21
	maxDescriptionLength = 500
)

// IdentityStore is the slice of the identity registry this service needs.
// Votes persist the decay-applied identity, hence Save.
type IdentityStore interface {
	Save(ctx context.Context, ident domain.Identity) error
	Find(ctx context.Context, account id.AccountID) (domain.Identity, error)
}

// Service owns proposal creation and vote casting.
type Service struct {
	identities IdentityStore
	proposals  ProposalStore
	votes      VoteStore
	state      *protocol.State
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates the governance service.
func New(identities IdentityStore, proposals ProposalStore, votes VoteStore, state *protocol.State, opts ...Option) *Service {
	svc := &Service{
		identities: identities,
		proposals:  proposals,
		votes:      votes,
		state:      state,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// CreateProposal validates the content, gates on the proposer's live weighted
// score, and stores a proposal with the next sequential id and a fixed voting
// window. The id is allocated only after every check has passed.
func (s *Service) CreateProposal(ctx context.Context, proposer id.AccountID, title, description string, action id.ProposalAction, targetValue uint64, height uint64) (uint64, error) {
	ident, err := s.identities.Find(ctx, proposer)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.New(dErrors.CodeNotFound, "proposer identity not registered")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "find proposer")
	}

	ident = reputation.Decayed(ident, height)
	if ident.WeightedScore < protocol.ProposalMinWeighted {
		return 0, dErrors.New(dErrors.CodeInsufficientReputation, "weighted score below proposal threshold")
	}
	if len(title) < minTitleLength || len(title) > maxTitleLength {
		return 0, dErrors.New(dErrors.CodeInvalidString, "title length out of range")
	}
	if len(description) < minDescriptionLength || len(description) > maxDescriptionLength {
		return 0, dErrors.New(dErrors.CodeInvalidString, "description length out of range")
	}
	if !action.IsValid() {
		return 0, dErrors.New(dErrors.CodeInvalidParameters, "unsupported proposal action")
	}
	if targetValue > action.MaxTargetValue() {
		return 0, dErrors.New(dErrors.CodeInvalidParameters, "target value exceeds action ceiling")
	}

	proposalID := s.state.NextProposalID()
	proposal := domain.Proposal{
		ID:          proposalID,
		Proposer:    proposer,
		Title:       title,
		Description: description,
		Action:      action,
		TargetValue: targetValue,
		CreatedAt:   height,
		ExpiresAt:   height + protocol.VotingPeriodBlocks,
	}
	if err := s.proposals.Save(ctx, proposal); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "save proposal")
	}

	s.logger.InfoContext(ctx, "proposal created",
		"proposal_id", proposalID,
		"proposer", proposer,
		"action", action,
		"expires_at", proposal.ExpiresAt,
	)
	return proposalID, nil
}

// Vote records the caller's weighted vote. The weight is the voter's current
// (decay-applied) weighted score, fixed at cast time; later decay never
// adjusts recorded votes. The re-check that the caller has not voted yet,
// immediately before the insert, is the race guard for the serialized host.
func (s *Service) Vote(ctx context.Context, voter id.AccountID, proposalID uint64, voteFor bool, height uint64) error {
	ident, err := s.identities.Find(ctx, voter)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "voter identity not registered")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "find voter")
	}

	if proposalID == 0 || proposalID > s.state.ProposalCount() {
		return dErrors.New(dErrors.CodeInvalidParameters, "proposal id out of range")
	}
	proposal, err := s.proposals.Find(ctx, proposalID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "proposal not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "find proposal")
	}

	if ident.VerificationLevel < domain.VerificationVerified {
		return dErrors.New(dErrors.CodeUnauthorized, "voter is not a governance member")
	}
	if !proposal.Open(height) {
		return dErrors.New(dErrors.CodeInvalidParameters, "proposal voting window has closed")
	}
	if _, err := s.votes.Find(ctx, proposalID, voter); err == nil {
		return dErrors.New(dErrors.CodeInvalidParameters, "account already voted on this proposal")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "check existing vote")
	}

	ident = reputation.Decayed(ident, height)
	if ident.WeightedScore < protocol.VoteMinWeight {
		return dErrors.New(dErrors.CodeInsufficientReputation, "voting weight below minimum")
	}

	vote := domain.Vote{
		ProposalID: proposalID,
		Voter:      voter,
		VoteFor:    voteFor,
		Weight:     ident.WeightedScore,
		CastAt:     height,
	}
	if voteFor {
		proposal.VotesFor += vote.Weight
	} else {
		proposal.VotesAgainst += vote.Weight
	}

	if err := s.votes.Save(ctx, vote); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save vote")
	}
	if err := s.proposals.Save(ctx, proposal); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save proposal tally")
	}
	// Persist the decay applied during weighing so the registry stays
	// consistent with what the vote recorded.
	if err := s.identities.Save(ctx, ident); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save voter identity")
	}

	if s.metrics != nil {
		s.metrics.VoteWeight.Observe(float64(vote.Weight))
	}
	s.logger.InfoContext(ctx, "vote cast",
		"proposal_id", proposalID,
		"voter", voter,
		"vote_for", voteFor,
		"weight", vote.Weight,
	)
	return nil
}

// Proposal returns a proposal by id, nil when the id is out of range or the
// proposal is absent. Read-only queries never fail on missing data.
func (s *Service) Proposal(ctx context.Context, proposalID uint64) (*domain.Proposal, error) {
	if proposalID == 0 || proposalID > s.state.ProposalCount() {
		return nil, nil
	}
	proposal, err := s.proposals.Find(ctx, proposalID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find proposal")
	}
	return &proposal, nil
}
