package governance

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"laurel/internal/domain"
	"laurel/internal/protocol"
	"laurel/internal/reputation"
	id "laurel/pkg/domain"
	dErrors "laurel/pkg/domain-errors"
	"laurel/pkg/platform/sentinel"
)

type identityMap map[id.AccountID]domain.Identity

func (m identityMap) Save(_ context.Context, ident domain.Identity) error {
	m[ident.Account] = ident
	return nil
}

func (m identityMap) Find(_ context.Context, account id.AccountID) (domain.Identity, error) {
	ident, ok := m[account]
	if !ok {
		return domain.Identity{}, sentinel.ErrNotFound
	}
	return ident, nil
}

const (
	validTitle       = "Raise bug-report multiplier"
	validDescription = "The bug-report multiplier undervalues reports relative to effort."
)

type ServiceSuite struct {
	suite.Suite
	identities identityMap
	proposals  *InMemoryProposalStore
	votes      *InMemoryVoteStore
	state      *protocol.State
	service    *Service
}

func (s *ServiceSuite) SetupTest() {
	s.identities = identityMap{}
	s.proposals = NewInMemoryProposalStore()
	s.votes = NewInMemoryVoteStore()
	s.state = protocol.NewState()
	s.service = New(s.identities, s.proposals, s.votes, s.state)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// register seeds a verified identity whose weighted score lands exactly on
// `weighted` for minimum stake.
func (s *ServiceSuite) register(account id.AccountID, weighted uint64, level uint64) {
	ident := domain.Identity{
		Account:           account,
		StakedAmount:      protocol.MinStake,
		VerificationLevel: level,
		LastDecay:         2000,
	}
	ident.ReputationScore = weighted - 10 - level*100
	ident.WeightedScore = reputation.WeightedScore(ident)
	s.Require().Equal(weighted, ident.WeightedScore)
	s.identities[account] = ident
}

func (s *ServiceSuite) TestCreateProposal() {
	ctx := context.Background()

	s.Run("first proposal gets id 1 and the fixed voting window", func() {
		s.register("proposer", 500, domain.VerificationVerified)

		proposalID, err := s.service.CreateProposal(ctx, "proposer", validTitle, validDescription, id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().NoError(err)
		s.Equal(uint64(1), proposalID)

		proposal, err := s.service.Proposal(ctx, 1)
		s.Require().NoError(err)
		s.Require().NotNil(proposal)
		s.Equal(uint64(2000), proposal.CreatedAt)
		s.Equal(uint64(2000+protocol.VotingPeriodBlocks), proposal.ExpiresAt)
		s.Zero(proposal.VotesFor)
		s.Zero(proposal.VotesAgainst)
		s.False(proposal.Executed)
	})

	s.Run("ids are sequential", func() {
		s.register("proposer2", 600, domain.VerificationVerified)
		first, err := s.service.CreateProposal(ctx, "proposer2", validTitle, validDescription, id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().NoError(err)
		second, err := s.service.CreateProposal(ctx, "proposer2", validTitle, validDescription, id.ProposalFeeAdjustment, 1000, 2000)
		s.Require().NoError(err)
		s.Equal(first+1, second)
	})

	s.Run("unregistered proposer is rejected", func() {
		_, err := s.service.CreateProposal(ctx, "ghost", validTitle, validDescription, id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("weighted score below the threshold is rejected", func() {
		s.register("lightweight", 499, domain.VerificationVerified)
		_, err := s.service.CreateProposal(ctx, "lightweight", validTitle, validDescription, id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientReputation))
	})

	s.Run("weighted score exactly at the threshold passes", func() {
		s.register("threshold", 500, domain.VerificationVerified)
		_, err := s.service.CreateProposal(ctx, "threshold", validTitle, validDescription, id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().NoError(err)
	})

	s.Run("content bounds are enforced", func() {
		s.register("writer", 500, domain.VerificationVerified)

		_, err := s.service.CreateProposal(ctx, "writer", "Too short", validDescription, id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidString))

		_, err = s.service.CreateProposal(ctx, "writer", strings.Repeat("t", 101), validDescription, id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidString))

		_, err = s.service.CreateProposal(ctx, "writer", validTitle, "Too short to count.", id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidString))

		_, err = s.service.CreateProposal(ctx, "writer", validTitle, strings.Repeat("d", 501), id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidString))
	})

	s.Run("target ceiling per action is enforced", func() {
		s.register("bounded", 500, domain.VerificationVerified)

		_, err := s.service.CreateProposal(ctx, "bounded", validTitle, validDescription, id.ProposalUpdateMultiplier, 201, 2000)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidParameters))

		_, err = s.service.CreateProposal(ctx, "bounded", validTitle, validDescription, id.ProposalAction("mint-tokens"), 100, 2000)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidParameters))
	})

	s.Run("no id is burned by a failed proposal", func() {
		s.register("careful", 500, domain.VerificationVerified)

		_, err := s.service.CreateProposal(ctx, "careful", "short", validDescription, id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().Error(err)

		before := s.state.ProposalCount()
		proposalID, err := s.service.CreateProposal(ctx, "careful", validTitle, validDescription, id.ProposalUpdateMultiplier, 150, 2000)
		s.Require().NoError(err)
		s.Equal(before+1, proposalID)
	})
}

func (s *ServiceSuite) TestVote() {
	ctx := context.Background()

	s.register("proposer", 600, domain.VerificationVerified)
	proposalID, err := s.service.CreateProposal(context.Background(), "proposer", validTitle, validDescription, id.ProposalUpdateMultiplier, 150, 2000)
	s.Require().NoError(err)

	s.Run("vote weight is the live weighted score and tallies add up", func() {
		s.register("voter-for", 300, domain.VerificationVerified)
		s.register("voter-against", 450, domain.VerificationVerified)

		s.Require().NoError(s.service.Vote(ctx, "voter-for", proposalID, true, 2100))
		s.Require().NoError(s.service.Vote(ctx, "voter-against", proposalID, false, 2100))

		proposal, err := s.service.Proposal(ctx, proposalID)
		s.Require().NoError(err)
		s.Equal(uint64(300), proposal.VotesFor)
		s.Equal(uint64(450), proposal.VotesAgainst)

		votes, err := s.votes.ListByProposal(ctx, proposalID)
		s.Require().NoError(err)
		s.Len(votes, 2)
	})

	s.Run("double voting is rejected", func() {
		s.register("repeat-voter", 300, domain.VerificationVerified)
		s.Require().NoError(s.service.Vote(ctx, "repeat-voter", proposalID, true, 2100))

		err := s.service.Vote(ctx, "repeat-voter", proposalID, false, 2100)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidParameters))
	})

	s.Run("out-of-range proposal ids are rejected", func() {
		s.register("eager", 300, domain.VerificationVerified)

		err := s.service.Vote(ctx, "eager", 0, true, 2100)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidParameters))

		err = s.service.Vote(ctx, "eager", 99, true, 2100)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidParameters))
	})

	s.Run("unverified voter is rejected", func() {
		s.register("observer", 300, domain.VerificationBasic)
		err := s.service.Vote(ctx, "observer", proposalID, true, 2100)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("closed voting window is rejected", func() {
		s.register("late-voter", 300, domain.VerificationVerified)
		closed := uint64(2000) + protocol.VotingPeriodBlocks
		err := s.service.Vote(ctx, "late-voter", proposalID, true, closed)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidParameters))
	})

	s.Run("weight below the voting minimum is rejected", func() {
		s.register("featherweight", 199, domain.VerificationVerified)
		err := s.service.Vote(ctx, "featherweight", proposalID, true, 2100)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientReputation))
	})

	s.Run("decay applied while weighing is persisted", func() {
		s.register("stale-voter", 600, domain.VerificationVerified)
		stale := s.identities["stale-voter"]
		stale.LastDecay = 1000
		s.identities["stale-voter"] = stale

		s.Require().NoError(s.service.Vote(ctx, "stale-voter", proposalID, true, 2100))

		stored, err := s.identities.Find(ctx, "stale-voter")
		s.Require().NoError(err)
		s.Equal(uint64(2100), stored.LastDecay)
		// Base 490 decays 5 percent to 466; weighted 466+10+100 = 576.
		s.Equal(uint64(576), stored.WeightedScore)
	})
}

func (s *ServiceSuite) TestProposalReads() {
	ctx := context.Background()

	s.Run("nil for id zero and beyond the counter", func() {
		proposal, err := s.service.Proposal(ctx, 0)
		s.Require().NoError(err)
		s.Nil(proposal)

		proposal, err = s.service.Proposal(ctx, 42)
		s.Require().NoError(err)
		s.Nil(proposal)
	})
}
