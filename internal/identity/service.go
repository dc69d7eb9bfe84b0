// Package identity implements the identity registry: stake-backed
// registration, decay-applied profile reads, and requirement checks.
package identity

import (
	"context"
	"errors"
	"log/slog"

	"laurel/internal/domain"
	"laurel/internal/protocol"
	"laurel/internal/reputation"
	id "laurel/pkg/domain"
	dErrors "laurel/pkg/domain-errors"
	"laurel/pkg/platform/sentinel"
)

// Service owns identity registration and reads.
type Service struct {
	store  Store
	state  *protocol.State
	logger *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates the identity service.
func New(store Store, state *protocol.State, opts ...Option) *Service {
	svc := &Service{
		store:  store,
		state:  state,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create registers a new identity for caller with the given DID and stake.
// The re-check that the account is still unregistered immediately before the
// insert is the race guard the serialized host relies on. Validation order
// matches the contract: existence, DID shape, stake floor, stake ceiling.
//
// On success the identity starts with the bootstrap score, verification level
// 0, and every height field set to the current height; the stake is added to
// the protocol's running total.
func (s *Service) Create(ctx context.Context, caller id.AccountID, rawDID string, stake uint64, height uint64) (id.DID, error) {
	if _, err := s.store.Find(ctx, caller); err == nil {
		return "", dErrors.New(dErrors.CodeAlreadyExists, "account already registered")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "check existing identity")
	}
	did, err := id.ParseDID(rawDID)
	if err != nil {
		return "", err
	}
	if stake < protocol.MinStake {
		return "", dErrors.New(dErrors.CodeInsufficientStake, "stake below protocol minimum")
	}
	if stake > protocol.MinStake*protocol.MaxStakeMultiple {
		return "", dErrors.New(dErrors.CodeInvalidParameters, "stake exceeds protocol maximum")
	}

	ident := domain.Identity{
		Account:           caller,
		DID:               did,
		ReputationScore:   protocol.BootstrapScore,
		StakedAmount:      stake,
		CreatedAt:         height,
		LastUpdated:       height,
		LastDecay:         height,
		VerificationLevel: domain.VerificationBasic,
	}
	ident.WeightedScore = reputation.WeightedScore(ident)

	if err := s.store.Save(ctx, ident); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "save identity")
	}
	s.state.AddStake(stake)

	s.logger.InfoContext(ctx, "identity created",
		"account", caller,
		"did", did,
		"stake", stake,
		"height", height,
	)
	return did, nil
}

// Profile returns the decay-applied view of an account, or nil when the
// account is unregistered. The decayed state is not written back: reads stay
// side-effect free, and decay idempotency keeps later writes consistent.
func (s *Service) Profile(ctx context.Context, account id.AccountID, height uint64) (*domain.Profile, error) {
	ident, err := s.store.Find(ctx, account)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find identity")
	}
	ident = reputation.Decayed(ident, height)
	return &domain.Profile{
		Account:           ident.Account,
		DID:               ident.DID,
		ReputationScore:   ident.ReputationScore,
		WeightedScore:     ident.WeightedScore,
		StakedAmount:      ident.StakedAmount,
		ActivityCount:     ident.ActivityCount,
		VerificationLevel: ident.VerificationLevel,
		AttestationBonus:  0, // see domain.Profile: aggregation policy undecided
		CreatedAt:         ident.CreatedAt,
		LastUpdated:       ident.LastUpdated,
	}, nil
}

// VerifyRequirements reports whether an account's live (decay-applied) fields
// meet every given minimum. Unknown accounts report false.
func (s *Service) VerifyRequirements(ctx context.Context, account id.AccountID, minBase, minWeighted, minVerification uint64, height uint64) (bool, error) {
	ident, err := s.store.Find(ctx, account)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "find identity")
	}
	ident = reputation.Decayed(ident, height)
	return ident.ReputationScore >= minBase &&
		ident.WeightedScore >= minWeighted &&
		ident.VerificationLevel >= minVerification, nil
}
