// Package attestation implements directed, expiring, bounded-impact peer
// endorsements between registered identities.
package attestation

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

// IdentityStore is the slice of the identity registry this service reads.
type IdentityStore interface {
	Find(ctx context.Context, account id.AccountID) (domain.Identity, error)
}

// Service validates and stores attestations.
type Service struct {
	identities IdentityStore
	store      Store
	logger     *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates the attestation service.
func New(identities IdentityStore, store Store, opts ...Option) *Service {
	svc := &Service{
		identities: identities,
		store:      store,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create stores (or overwrites) the attestation from attester to target.
//
// The impact allowance is self-limiting: an attester may assert at most
// weighted_score/20 in either direction, so only highly reputed accounts can
// make large claims about peers.
func (s *Service) Create(ctx context.Context, attester, target id.AccountID, impact int64, attType id.AttestationType, durationBlocks uint64, height uint64) error {
	attesterIdent, err := s.identities.Find(ctx, attester)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "attester identity not registered")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "find attester")
	}
	if _, err := s.identities.Find(ctx, target); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "target identity not registered")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "find target")
	}

	if attester == target {
		return dErrors.New(dErrors.CodeInvalidParameters, "cannot attest to yourself")
	}
	magnitude := impact
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if magnitude > protocol.MaxAttestationImpact {
		return dErrors.New(dErrors.CodeInvalidParameters, "impact exceeds protocol maximum")
	}
	if attesterIdent.VerificationLevel == domain.VerificationBasic {
		return dErrors.New(dErrors.CodeUnauthorized, "attester must be verified")
	}
	if !attType.IsValid() {
		return dErrors.New(dErrors.CodeInvalidString, "unsupported attestation type")
	}
	if durationBlocks == 0 || durationBlocks > protocol.MaxAttestationBlocks {
		return dErrors.New(dErrors.CodeInvalidDuration, "duration out of range")
	}

	attesterIdent = reputation.Decayed(attesterIdent, height)
	allowance := int64(attesterIdent.WeightedScore / protocol.ImpactAllowanceDivisor)
	if magnitude > allowance {
		return dErrors.New(dErrors.CodeInvalidAttestationImpact, "impact exceeds attester allowance")
	}

	att := domain.Attestation{
		Attester:  attester,
		Target:    target,
		Impact:    impact,
		Type:      attType,
		CreatedAt: height,
		ExpiresAt: height + durationBlocks,
	}
	if err := s.store.Put(ctx, att); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save attestation")
	}

	s.logger.InfoContext(ctx, "attestation created",
		"attester", attester,
		"target", target,
		"type", attType,
		"impact", impact,
		"expires_at", att.ExpiresAt,
	)
	return nil
}

// ActiveImpact returns the live impact of the attestation from attester to
// target at the given height: 0 when absent or expired.
//
// Note: this helper is not aggregated into profile reads; the aggregation
// policy (which attestations count, how conflicts sum) is still an open
// design decision.
func (s *Service) ActiveImpact(ctx context.Context, attester, target id.AccountID, height uint64) (int64, error) {
	att, err := s.store.Find(ctx, attester, target)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, nil
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "find attestation")
	}
	if att.Expired(height) {
		return 0, nil
	}
	return att.Impact, nil
}
