package reputation

import (
	"context"
	"errors"
	"log/slog"

	"laurel/internal/domain"
	"laurel/internal/platform/metrics"
	"laurel/internal/protocol"
	id "laurel/pkg/domain"
	dErrors "laurel/pkg/domain-errors"
	"laurel/pkg/platform/sentinel"
)

// IdentityStore is the slice of the identity registry this service needs.
type IdentityStore interface {
	Save(ctx context.Context, ident domain.Identity) error
	Find(ctx context.Context, account id.AccountID) (domain.Identity, error)
}

// Service applies whitelisted reputation actions.
type Service struct {
	identities IdentityStore
	catalog    CatalogStore
	activity   ActivityStore
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

// New creates the reputation service.
func New(identities IdentityStore, catalog CatalogStore, activity ActivityStore, opts ...Option) *Service {
	svc := &Service{
		identities: identities,
		catalog:    catalog,
		activity:   activity,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ApplyAction credits the caller for one application of a whitelisted action.
// All validation happens before the first write, so a failed call leaves the
// identity, its activity count, and the daily counter untouched.
//
// Returns the new base reputation score.
func (s *Service) ApplyAction(ctx context.Context, caller id.AccountID, action id.ActionType, evidence id.EvidenceHash, height uint64) (uint64, error) {
	ident, err := s.identities.Find(ctx, caller)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.New(dErrors.CodeNotFound, "identity not registered")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "find identity")
	}

	cfg, err := s.catalog.Find(ctx, action)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.New(dErrors.CodeInvalidParameters, "unknown action type")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "find action config")
	}
	if !cfg.Enabled {
		return 0, dErrors.New(dErrors.CodeInvalidParameters, "action is disabled")
	}
	if evidence.IsZero() {
		return 0, dErrors.New(dErrors.CodeInvalidParameters, "evidence hash cannot be zero")
	}

	key := ActivityKey{Account: caller, Day: protocol.DayIndex(height), Action: action}
	count, err := s.activity.Count(ctx, key)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "read activity counter")
	}
	if count >= cfg.MaxDailyApplications {
		return 0, dErrors.New(dErrors.CodeRateLimited, "daily application cap reached")
	}

	if cfg.RequiresVerification && ident.VerificationLevel == domain.VerificationBasic {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "action requires a verified identity")
	}

	ident = Decayed(ident, height)
	gain := Gain(cfg, ident)
	ident.ActivityCount++
	ident = applyGain(ident, gain)
	ident.LastUpdated = height

	if err := s.identities.Save(ctx, ident); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "save identity")
	}
	if _, err := s.activity.Increment(ctx, key); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "increment activity counter")
	}

	if s.metrics != nil {
		s.metrics.ReputationGain.Observe(float64(gain))
	}
	s.logger.InfoContext(ctx, "action applied",
		"account", caller,
		"action", action,
		"gain", gain,
		"score", ident.ReputationScore,
		"height", height,
	)
	return ident.ReputationScore, nil
}
