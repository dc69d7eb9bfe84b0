package governance

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"laurel/internal/domain"
	id "laurel/pkg/domain"
	"laurel/pkg/platform/sentinel"
)

// ProposalStore persists proposals by sequential id.
type ProposalStore interface {
	Save(ctx context.Context, p domain.Proposal) error
	Find(ctx context.Context, proposalID uint64) (domain.Proposal, error)
}

// VoteStore persists exactly one vote per (proposal, voter).
type VoteStore interface {
	Save(ctx context.Context, v domain.Vote) error
	Find(ctx context.Context, proposalID uint64, voter id.AccountID) (domain.Vote, error)
	ListByProposal(ctx context.Context, proposalID uint64) ([]domain.Vote, error)
}

// InMemoryProposalStore is the default proposal store.
type InMemoryProposalStore struct {
	mu        sync.RWMutex
	proposals map[uint64]domain.Proposal
}

func NewInMemoryProposalStore() *InMemoryProposalStore {
	return &InMemoryProposalStore{proposals: make(map[uint64]domain.Proposal)}
}

func (s *InMemoryProposalStore) Save(_ context.Context, p domain.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[p.ID] = p
	return nil
}

func (s *InMemoryProposalStore) Find(_ context.Context, proposalID uint64) (domain.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.proposals[proposalID]; ok {
		return p, nil
	}
	return domain.Proposal{}, sentinel.ErrNotFound
}

// InMemoryVoteStore is the default vote store.
type InMemoryVoteStore struct {
	mu    sync.RWMutex
	votes map[string]domain.Vote
}

func NewInMemoryVoteStore() *InMemoryVoteStore {
	return &InMemoryVoteStore{votes: make(map[string]domain.Vote)}
}

func voteKey(proposalID uint64, voter id.AccountID) string {
	return fmt.Sprintf("%d:%s", proposalID, strings.ReplaceAll(voter.String(), ":", "_"))
}

func (s *InMemoryVoteStore) Save(_ context.Context, v domain.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes[voteKey(v.ProposalID, v.Voter)] = v
	return nil
}

func (s *InMemoryVoteStore) Find(_ context.Context, proposalID uint64, voter id.AccountID) (domain.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.votes[voteKey(proposalID, voter)]; ok {
		return v, nil
	}
	return domain.Vote{}, sentinel.ErrNotFound
}

func (s *InMemoryVoteStore) ListByProposal(_ context.Context, proposalID uint64) ([]domain.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var votes []domain.Vote
	for _, v := range s.votes {
		if v.ProposalID == proposalID {
			votes = append(votes, v)
		}
	}
	return votes, nil
}
