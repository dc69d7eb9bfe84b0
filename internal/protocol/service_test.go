package protocol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"laurel/internal/domain"
	id "laurel/pkg/domain"
	dErrors "laurel/pkg/domain-errors"
)

// catalogMap records catalog writes for assertions.
type catalogMap map[id.ActionType]domain.ActionConfig

func (m catalogMap) Put(_ context.Context, cfg domain.ActionConfig) error {
	m[cfg.Type] = cfg
	return nil
}

type AdminSuite struct {
	suite.Suite
	state   *State
	catalog catalogMap
	service *Service
}

func (s *AdminSuite) SetupTest() {
	s.state = NewState()
	s.catalog = catalogMap{}
	s.service = New(s.state, s.catalog, "owner-acct")
}

func TestAdminSuite(t *testing.T) {
	suite.Run(t, new(AdminSuite))
}

func (s *AdminSuite) TestOwnerGate() {
	ctx := context.Background()

	s.Run("non-owner cannot pause", func() {
		err := s.service.Pause(ctx, "intruder")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.False(s.state.Paused())
	})

	s.Run("non-owner cannot update the catalog", func() {
		err := s.service.UpdateActionConfig(ctx, "intruder", domain.ActionConfig{
			Type: "bug-report", BaseMultiplier: 25, MaxDailyApplications: 2, Enabled: true,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Empty(s.catalog)
	})

	s.Run("non-owner cannot seed the catalog", func() {
		err := s.service.InitializeActions(ctx, "intruder")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *AdminSuite) TestPauseResume() {
	ctx := context.Background()

	s.Require().NoError(s.service.Pause(ctx, "owner-acct"))
	s.True(s.state.Paused())

	s.Require().NoError(s.service.Resume(ctx, "owner-acct"))
	s.False(s.state.Paused())

	s.Run("pause is idempotent", func() {
		s.Require().NoError(s.service.Pause(ctx, "owner-acct"))
		s.Require().NoError(s.service.Pause(ctx, "owner-acct"))
		s.True(s.state.Paused())
	})
}

func (s *AdminSuite) TestUpdateActionConfig() {
	ctx := context.Background()

	s.Run("stores a valid config", func() {
		cfg := domain.ActionConfig{
			Type: "bug-report", BaseMultiplier: 30, MaxDailyApplications: 3,
			RequiresVerification: true, Enabled: true,
		}
		s.Require().NoError(s.service.UpdateActionConfig(ctx, "owner-acct", cfg))
		s.Equal(cfg, s.catalog["bug-report"])
	})

	s.Run("rejects multiplier out of range", func() {
		err := s.service.UpdateActionConfig(ctx, "owner-acct", domain.ActionConfig{
			Type: "bug-report", BaseMultiplier: 0, MaxDailyApplications: 3, Enabled: true,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidParameters))

		err = s.service.UpdateActionConfig(ctx, "owner-acct", domain.ActionConfig{
			Type: "bug-report", BaseMultiplier: 101, MaxDailyApplications: 3, Enabled: true,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidParameters))
	})

	s.Run("rejects daily cap out of range", func() {
		err := s.service.UpdateActionConfig(ctx, "owner-acct", domain.ActionConfig{
			Type: "bug-report", BaseMultiplier: 25, MaxDailyApplications: 0, Enabled: true,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidParameters))

		err = s.service.UpdateActionConfig(ctx, "owner-acct", domain.ActionConfig{
			Type: "bug-report", BaseMultiplier: 25, MaxDailyApplications: 51, Enabled: true,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidParameters))
	})
}

func (s *AdminSuite) TestInitializeActions() {
	ctx := context.Background()

	s.Require().NoError(s.service.InitializeActions(ctx, "owner-acct"))
	s.Len(s.catalog, 6)

	s.Run("seeds the canonical entries", func() {
		community := s.catalog["community-contribution"]
		s.Equal(uint64(10), community.BaseMultiplier)
		s.False(community.RequiresVerification)
		s.True(community.Enabled)

		development := s.catalog["protocol-development"]
		s.Equal(uint64(50), development.BaseMultiplier)
		s.True(development.RequiresVerification)
	})

	s.Run("re-seeding is idempotent", func() {
		s.Require().NoError(s.service.InitializeActions(ctx, "owner-acct"))
		s.Len(s.catalog, 6)
	})
}

func (s *AdminSuite) TestStats() {
	s.state.AddStake(5_000_000)
	s.state.NextProposalID()
	s.state.NextProposalID()
	s.state.SetPaused(true)

	stats := s.service.Stats(12_345)
	s.Equal(uint64(5_000_000), stats.TotalStaked)
	s.Equal(uint64(2), stats.ProposalCount)
	s.True(stats.Paused)
	s.Equal(uint64(12_345), stats.Height)
	s.Zero(stats.IdentityCount)
}

func TestStateCounters(t *testing.T) {
	state := NewState()

	t.Run("proposal ids start at one and are sequential", func(t *testing.T) {
		if got := state.NextProposalID(); got != 1 {
			t.Fatalf("first id = %d, want 1", got)
		}
		if got := state.NextProposalID(); got != 2 {
			t.Fatalf("second id = %d, want 2", got)
		}
		if got := state.ProposalCount(); got != 2 {
			t.Fatalf("count = %d, want 2", got)
		}
	})

	t.Run("stake accumulates", func(t *testing.T) {
		state.AddStake(1_000_000)
		state.AddStake(2_000_000)
		if got := state.TotalStaked(); got != 3_000_000 {
			t.Fatalf("total staked = %d, want 3000000", got)
		}
	})
}

func TestDayIndex(t *testing.T) {
	if got := DayIndex(0); got != 0 {
		t.Fatalf("day at genesis = %d, want 0", got)
	}
	if got := DayIndex(BlocksPerDay - 1); got != 0 {
		t.Fatalf("last block of day zero = %d, want 0", got)
	}
	if got := DayIndex(BlocksPerDay); got != 1 {
		t.Fatalf("first block of day one = %d, want 1", got)
	}
}
