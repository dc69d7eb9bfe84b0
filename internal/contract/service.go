// Package contract is the serialized front end of the protocol. It exposes
// the full operation surface and enforces the per-invocation discipline the
// on-ledger host would: one mutation at a time, a pause gate before every
// user operation, and validation strictly before writes so a failed call has
// no partial effect.
//
// The mutex replaces the host's serialization guarantee for off-chain
// deployments; without it the check-then-insert guards in the services would
// race.
package contract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"laurel/internal/attestation"
	"laurel/internal/audit"
	"laurel/internal/chain"
	"laurel/internal/domain"
	"laurel/internal/governance"
	"laurel/internal/identity"
	"laurel/internal/platform/metrics"
	"laurel/internal/protocol"
	"laurel/internal/reputation"
	id "laurel/pkg/domain"
	dErrors "laurel/pkg/domain-errors"
)

// Service composes the subsystem services behind a single serialized surface.
type Service struct {
	mu sync.Mutex

	state        *protocol.State
	heights      chain.HeightSource
	identities   *identity.Service
	reputations  *reputation.Service
	attestations *attestation.Service
	governance   *governance.Service
	admin        *protocol.Service

	audit   audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the contract logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithAuditPublisher sets the audit sink for mutating operations.
func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) {
		s.audit = publisher
	}
}

// WithMetrics sets the operation metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New wires the contract surface.
func New(
	state *protocol.State,
	heights chain.HeightSource,
	identities *identity.Service,
	reputations *reputation.Service,
	attestations *attestation.Service,
	gov *governance.Service,
	admin *protocol.Service,
	opts ...Option,
) (*Service, error) {
	if state == nil || heights == nil {
		return nil, fmt.Errorf("state and height source are required")
	}
	svc := &Service{
		state:        state,
		heights:      heights,
		identities:   identities,
		reputations:  reputations,
		attestations: attestations,
		governance:   gov,
		admin:        admin,
		logger:       slog.Default(),
		tracer:       otel.Tracer("laurel/internal/contract"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *Service) requireUnpaused() error {
	if s.state.Paused() {
		return dErrors.New(dErrors.CodeProtocolPaused, "protocol is paused")
	}
	return nil
}

func (s *Service) startSpan(ctx context.Context, op string, caller id.AccountID) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "contract."+op,
		trace.WithAttributes(attribute.String("caller", caller.String())),
	)
}

func (s *Service) finish(span trace.Span, op string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveOp(op, err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

// CreateIdentity registers the caller with a DID and a recorded stake.
func (s *Service) CreateIdentity(ctx context.Context, caller id.AccountID, did string, stake uint64) (id.DID, error) {
	ctx, span := s.startSpan(ctx, "create_identity", caller)
	var err error
	defer func() { s.finish(span, "create_identity", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.requireUnpaused(); err != nil {
		return "", err
	}
	height := s.heights.Height()
	var created id.DID
	created, err = s.identities.Create(ctx, caller, did, stake, height)
	if err != nil {
		return "", err
	}
	s.emit(ctx, audit.Event{
		Height:  height,
		Account: caller,
		Action:  audit.ActionIdentityCreated,
		Detail:  created.String(),
	})
	return created, nil
}

// ApplyAction credits the caller for a whitelisted action and returns the new
// base reputation score.
func (s *Service) ApplyAction(ctx context.Context, caller id.AccountID, action id.ActionType, evidence id.EvidenceHash) (uint64, error) {
	ctx, span := s.startSpan(ctx, "apply_action", caller)
	var err error
	defer func() { s.finish(span, "apply_action", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.requireUnpaused(); err != nil {
		return 0, err
	}
	height := s.heights.Height()
	var score uint64
	score, err = s.reputations.ApplyAction(ctx, caller, action, evidence, height)
	if err != nil {
		return 0, err
	}
	s.emit(ctx, audit.Event{
		Height:  height,
		Account: caller,
		Action:  audit.ActionReputationApplied,
		Detail:  action.String(),
	})
	return score, nil
}

// CreateAttestation stores or overwrites the caller's attestation about the
// target.
func (s *Service) CreateAttestation(ctx context.Context, caller, target id.AccountID, impact int64, attType id.AttestationType, durationBlocks uint64) error {
	ctx, span := s.startSpan(ctx, "create_attestation", caller)
	var err error
	defer func() { s.finish(span, "create_attestation", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.requireUnpaused(); err != nil {
		return err
	}
	height := s.heights.Height()
	if err = s.attestations.Create(ctx, caller, target, impact, attType, durationBlocks, height); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Height:  height,
		Account: caller,
		Action:  audit.ActionAttestationCreated,
		Target:  target.String(),
		Detail:  attType.String(),
	})
	return nil
}

// CreateProposal opens a governance proposal and returns its sequential id.
func (s *Service) CreateProposal(ctx context.Context, caller id.AccountID, title, description string, action id.ProposalAction, targetValue uint64) (uint64, error) {
	ctx, span := s.startSpan(ctx, "create_proposal", caller)
	var err error
	defer func() { s.finish(span, "create_proposal", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.requireUnpaused(); err != nil {
		return 0, err
	}
	height := s.heights.Height()
	var proposalID uint64
	proposalID, err = s.governance.CreateProposal(ctx, caller, title, description, action, targetValue, height)
	if err != nil {
		return 0, err
	}
	s.emit(ctx, audit.Event{
		Height:  height,
		Account: caller,
		Action:  audit.ActionProposalCreated,
		Detail:  fmt.Sprintf("%d", proposalID),
	})
	return proposalID, nil
}

// Vote casts the caller's weighted vote on an open proposal.
func (s *Service) Vote(ctx context.Context, caller id.AccountID, proposalID uint64, voteFor bool) error {
	ctx, span := s.startSpan(ctx, "vote", caller)
	var err error
	defer func() { s.finish(span, "vote", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.requireUnpaused(); err != nil {
		return err
	}
	height := s.heights.Height()
	if err = s.governance.Vote(ctx, caller, proposalID, voteFor, height); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Height:  height,
		Account: caller,
		Action:  audit.ActionVoteCast,
		Detail:  fmt.Sprintf("%d", proposalID),
	})
	return nil
}

// Pause stops user operations. Owner only; deliberately not behind the pause
// gate so the owner always retains control.
func (s *Service) Pause(ctx context.Context, caller id.AccountID) error {
	ctx, span := s.startSpan(ctx, "pause", caller)
	var err error
	defer func() { s.finish(span, "pause", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.admin.Pause(ctx, caller); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Height:  s.heights.Height(),
		Account: caller,
		Action:  audit.ActionProtocolPaused,
	})
	return nil
}

// Resume lifts a pause. Owner only.
func (s *Service) Resume(ctx context.Context, caller id.AccountID) error {
	ctx, span := s.startSpan(ctx, "resume", caller)
	var err error
	defer func() { s.finish(span, "resume", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.admin.Resume(ctx, caller); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Height:  s.heights.Height(),
		Account: caller,
		Action:  audit.ActionProtocolResumed,
	})
	return nil
}

// UpdateActionConfig replaces or creates an action catalog entry. Owner only.
func (s *Service) UpdateActionConfig(ctx context.Context, caller id.AccountID, cfg domain.ActionConfig) error {
	ctx, span := s.startSpan(ctx, "update_action_config", caller)
	var err error
	defer func() { s.finish(span, "update_action_config", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.admin.UpdateActionConfig(ctx, caller, cfg); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Height:  s.heights.Height(),
		Account: caller,
		Action:  audit.ActionActionConfigUpdated,
		Detail:  cfg.Type.String(),
	})
	return nil
}

// InitializeActions seeds the canonical action catalog. Owner only and
// idempotent by design.
func (s *Service) InitializeActions(ctx context.Context, caller id.AccountID) error {
	ctx, span := s.startSpan(ctx, "initialize_actions", caller)
	var err error
	defer func() { s.finish(span, "initialize_actions", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.admin.InitializeActions(ctx, caller); err != nil {
		return err
	}
	s.emit(ctx, audit.Event{
		Height:  s.heights.Height(),
		Account: caller,
		Action:  audit.ActionCatalogSeeded,
	})
	return nil
}

// Profile is the decay-applied read of an account, nil when unknown.
func (s *Service) Profile(ctx context.Context, account id.AccountID) (*domain.Profile, error) {
	return s.identities.Profile(ctx, account, s.heights.Height())
}

// VerifyRequirements checks an account's live fields against minimums.
func (s *Service) VerifyRequirements(ctx context.Context, account id.AccountID, minBase, minWeighted, minVerification uint64) (bool, error) {
	return s.identities.VerifyRequirements(ctx, account, minBase, minWeighted, minVerification, s.heights.Height())
}

// Proposal returns a proposal by id, nil when absent or out of range.
func (s *Service) Proposal(ctx context.Context, proposalID uint64) (*domain.Proposal, error) {
	return s.governance.Proposal(ctx, proposalID)
}

// Stats snapshots the protocol counters.
func (s *Service) Stats() domain.ProtocolStats {
	return s.admin.Stats(s.heights.Height())
}
