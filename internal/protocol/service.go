package protocol

import (
	"context"
	"log/slog"

	"laurel/internal/domain"
	id "laurel/pkg/domain"
	dErrors "laurel/pkg/domain-errors"
)

// ActionCatalog is the slice of the action catalog the admin service writes
// to. The reputation package owns the full store.
type ActionCatalog interface {
	Put(ctx context.Context, cfg domain.ActionConfig) error
}

// Service implements the owner-only protocol operations: pause/resume,
// action catalog seeding, and catalog updates.
type Service struct {
	state   *State
	catalog ActionCatalog
	owner   id.AccountID
	logger  *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a logger for administrative actions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates the admin service. The owner is the only account allowed to
// invoke any of its mutating methods.
func New(state *State, catalog ActionCatalog, owner id.AccountID, opts ...Option) *Service {
	svc := &Service{
		state:   state,
		catalog: catalog,
		owner:   owner,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Owner returns the configured owner account.
func (s *Service) Owner() id.AccountID { return s.owner }

func (s *Service) requireOwner(caller id.AccountID) error {
	if caller != s.owner {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the protocol owner")
	}
	return nil
}

// Pause stops all mutating operations until Resume.
func (s *Service) Pause(ctx context.Context, caller id.AccountID) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	s.state.SetPaused(true)
	s.logger.InfoContext(ctx, "protocol paused", "caller", caller)
	return nil
}

// Resume lifts a pause. It deliberately skips the pause gate so a paused
// protocol can always be recovered.
func (s *Service) Resume(ctx context.Context, caller id.AccountID) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	s.state.SetPaused(false)
	s.logger.InfoContext(ctx, "protocol resumed", "caller", caller)
	return nil
}

// UpdateActionConfig replaces or creates one action catalog entry.
func (s *Service) UpdateActionConfig(ctx context.Context, caller id.AccountID, cfg domain.ActionConfig) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if cfg.BaseMultiplier < domain.MinActionMultiplier || cfg.BaseMultiplier > domain.MaxActionMultiplier {
		return dErrors.New(dErrors.CodeInvalidParameters, "base multiplier out of range")
	}
	if cfg.MaxDailyApplications < domain.MinDailyCap || cfg.MaxDailyApplications > domain.MaxDailyCap {
		return dErrors.New(dErrors.CodeInvalidParameters, "daily cap out of range")
	}
	if err := s.catalog.Put(ctx, cfg); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "store action config")
	}
	s.logger.InfoContext(ctx, "action config updated",
		"action", cfg.Type,
		"multiplier", cfg.BaseMultiplier,
		"daily_cap", cfg.MaxDailyApplications,
		"enabled", cfg.Enabled,
	)
	return nil
}

// seedActions is the canonical catalog written at deployment.
var seedActions = []domain.ActionConfig{
	{Type: "community-contribution", BaseMultiplier: 10, MaxDailyApplications: 4, RequiresVerification: false, Enabled: true},
	{Type: "content-creation", BaseMultiplier: 15, MaxDailyApplications: 3, RequiresVerification: false, Enabled: true},
	{Type: "bug-report", BaseMultiplier: 25, MaxDailyApplications: 2, RequiresVerification: false, Enabled: true},
	{Type: "peer-review", BaseMultiplier: 20, MaxDailyApplications: 5, RequiresVerification: true, Enabled: true},
	{Type: "governance-participation", BaseMultiplier: 30, MaxDailyApplications: 3, RequiresVerification: true, Enabled: true},
	{Type: "protocol-development", BaseMultiplier: 50, MaxDailyApplications: 2, RequiresVerification: true, Enabled: true},
}

// InitializeActions seeds the six canonical action types. The operation is
// idempotent by design: re-invocation overwrites the catalog with the same
// canonical values.
func (s *Service) InitializeActions(ctx context.Context, caller id.AccountID) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	for _, cfg := range seedActions {
		if err := s.catalog.Put(ctx, cfg); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "seed action catalog")
		}
	}
	s.logger.InfoContext(ctx, "action catalog seeded", "actions", len(seedActions))
	return nil
}

// Stats snapshots the protocol-level counters at the given height.
func (s *Service) Stats(height uint64) domain.ProtocolStats {
	return domain.ProtocolStats{
		TotalStaked:   s.state.TotalStaked(),
		Paused:        s.state.Paused(),
		ProposalCount: s.state.ProposalCount(),
		IdentityCount: 0, // not tracked; computed externally when needed
		Height:        height,
	}
}
