package contract

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"laurel/internal/attestation"
	"laurel/internal/audit"
	auditmocks "laurel/internal/audit/mocks"
	"laurel/internal/chain"
	"laurel/internal/governance"
	"laurel/internal/identity"
	"laurel/internal/protocol"
	"laurel/internal/reputation"
	id "laurel/pkg/domain"
	dErrors "laurel/pkg/domain-errors"
)

const owner = id.AccountID("owner-acct")

type ContractSuite struct {
	suite.Suite
	state    *protocol.State
	heights  *chain.Manual
	audit    *audit.MemoryPublisher
	service  *Service
	evidence id.EvidenceHash
}

func (s *ContractSuite) SetupTest() {
	s.state = protocol.NewState()
	s.heights = chain.NewManual(1000)
	s.audit = audit.NewMemoryPublisher()

	identityStore := identity.NewInMemoryStore()
	catalog := reputation.NewInMemoryCatalog()

	svc, err := New(
		s.state,
		s.heights,
		identity.New(identityStore, s.state),
		reputation.New(identityStore, catalog, reputation.NewInMemoryActivityStore()),
		attestation.New(identityStore, attestation.NewInMemoryStore()),
		governance.New(identityStore, governance.NewInMemoryProposalStore(), governance.NewInMemoryVoteStore(), s.state),
		protocol.New(s.state, catalog, owner),
		WithAuditPublisher(s.audit),
	)
	s.Require().NoError(err)
	s.service = svc

	evidence, err := id.ParseEvidenceHash(strings.Repeat("cd", 32))
	s.Require().NoError(err)
	s.evidence = evidence

	s.Require().NoError(s.service.InitializeActions(context.Background(), owner))
}

func TestContractSuite(t *testing.T) {
	suite.Run(t, new(ContractSuite))
}

func (s *ContractSuite) lastAudit() audit.Event {
	events := s.audit.Events()
	s.Require().NotEmpty(events)
	return events[len(events)-1]
}

func (s *ContractSuite) TestPauseGate() {
	ctx := context.Background()

	_, err := s.service.CreateIdentity(ctx, "acct-1", "alice-main", protocol.MinStake)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Pause(ctx, owner))

	s.Run("user operations are rejected while paused", func() {
		_, err := s.service.CreateIdentity(ctx, "acct-2", "bobby-main", protocol.MinStake)
		s.True(dErrors.HasCode(err, dErrors.CodeProtocolPaused))

		_, err = s.service.ApplyAction(ctx, "acct-1", "community-contribution", s.evidence)
		s.True(dErrors.HasCode(err, dErrors.CodeProtocolPaused))

		err = s.service.CreateAttestation(ctx, "acct-1", "acct-2", 10, id.AttestationReliability, 100)
		s.True(dErrors.HasCode(err, dErrors.CodeProtocolPaused))

		_, err = s.service.CreateProposal(ctx, "acct-1", "Raise the multiplier", "A long enough description for the content bounds.", id.ProposalUpdateMultiplier, 150)
		s.True(dErrors.HasCode(err, dErrors.CodeProtocolPaused))

		err = s.service.Vote(ctx, "acct-1", 1, true)
		s.True(dErrors.HasCode(err, dErrors.CodeProtocolPaused))
	})

	s.Run("owner operations pass the gate", func() {
		s.Require().NoError(s.service.InitializeActions(ctx, owner))
		s.Require().NoError(s.service.Resume(ctx, owner))
	})

	s.Run("reads pass the gate", func() {
		s.Require().NoError(s.service.Pause(ctx, owner))
		defer func() { s.Require().NoError(s.service.Resume(ctx, owner)) }()

		profile, err := s.service.Profile(ctx, "acct-1")
		s.Require().NoError(err)
		s.NotNil(profile)

		stats := s.service.Stats()
		s.True(stats.Paused)
	})

	s.Run("operations work again after resume", func() {
		_, err := s.service.CreateIdentity(ctx, "acct-3", "carol-main", protocol.MinStake)
		s.Require().NoError(err)
	})
}

func (s *ContractSuite) TestAuditTrail() {
	ctx := context.Background()

	s.Run("successful operations emit stamped events", func() {
		_, err := s.service.CreateIdentity(ctx, "acct-audit", "dave-main", protocol.MinStake)
		s.Require().NoError(err)

		event := s.lastAudit()
		s.Equal(audit.ActionIdentityCreated, event.Action)
		s.Equal(id.AccountID("acct-audit"), event.Account)
		s.Equal(uint64(1000), event.Height)
		s.NotZero(event.ID)
		s.False(event.Timestamp.IsZero())
	})

	s.Run("failed operations emit nothing", func() {
		before := len(s.audit.Events())
		_, err := s.service.CreateIdentity(ctx, "acct-audit", "dave-other", protocol.MinStake)
		s.Require().Error(err)
		s.Len(s.audit.Events(), before)
	})
}

func (s *ContractSuite) TestHeightFlowsFromSource() {
	ctx := context.Background()

	_, err := s.service.CreateIdentity(ctx, "acct-h", "erin-main", protocol.MinStake)
	s.Require().NoError(err)

	s.heights.Advance(protocol.DecayBlocks)

	profile, err := s.service.Profile(ctx, "acct-h")
	s.Require().NoError(err)
	s.Require().NotNil(profile)
	s.Equal(uint64(95), profile.ReputationScore)
}

func (s *ContractSuite) TestEndToEndFlow() {
	ctx := context.Background()

	_, err := s.service.CreateIdentity(ctx, "acct-flow", "frank-main", protocol.MinStake)
	s.Require().NoError(err)

	s.Run("five community contributions hit the daily cap", func() {
		for i := 0; i < 4; i++ {
			_, err := s.service.ApplyAction(ctx, "acct-flow", "community-contribution", s.evidence)
			s.Require().NoError(err)
		}
		_, err := s.service.ApplyAction(ctx, "acct-flow", "community-contribution", s.evidence)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))
	})

	s.Run("requirements reflect the accumulated score", func() {
		// Bootstrap 100 plus four gains of 10.
		ok, err := s.service.VerifyRequirements(ctx, "acct-flow", 140, 0, 0)
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("stats reflect the registered stake", func() {
		stats := s.service.Stats()
		s.Equal(protocol.MinStake, stats.TotalStaked)
		s.False(stats.Paused)
	})
}

func (s *ContractSuite) TestSerializedMutations() {
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			account := id.AccountID("acct-race")
			_, _ = s.service.CreateIdentity(ctx, account, "grace-main", protocol.MinStake)
		}(i)
	}
	wg.Wait()

	// Exactly one registration wins; the stake total proves no double insert.
	s.Equal(protocol.MinStake, s.state.TotalStaked())
}

// TestAuditFailureDoesNotAbort uses a mock publisher to verify that a failing
// audit sink never turns a successful state transition into an error.
func TestAuditFailureDoesNotAbort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	publisher := auditmocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(dErrors.New(dErrors.CodeInternal, "sink down")).AnyTimes()

	state := protocol.NewState()
	identityStore := identity.NewInMemoryStore()
	catalog := reputation.NewInMemoryCatalog()

	svc, err := New(
		state,
		chain.NewManual(1000),
		identity.New(identityStore, state),
		reputation.New(identityStore, catalog, reputation.NewInMemoryActivityStore()),
		attestation.New(identityStore, attestation.NewInMemoryStore()),
		governance.New(identityStore, governance.NewInMemoryProposalStore(), governance.NewInMemoryVoteStore(), state),
		protocol.New(state, catalog, owner),
		WithAuditPublisher(publisher),
	)
	if err != nil {
		t.Fatalf("wire contract: %v", err)
	}

	if _, err := svc.CreateIdentity(context.Background(), "acct-1", "henry-main", protocol.MinStake); err != nil {
		t.Fatalf("create identity should succeed despite audit failure: %v", err)
	}
}

func TestNewRequiresStateAndHeights(t *testing.T) {
	if _, err := New(nil, nil, nil, nil, nil, nil, nil); err == nil {
		t.Fatal("expected wiring error")
	}
}
