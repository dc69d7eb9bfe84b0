package identity

import (
	"context"
	"sync"

	"laurel/internal/domain"
	id "laurel/pkg/domain"
	"laurel/pkg/platform/sentinel"
)

// InMemoryStore keeps identities in a map. It is the default store: the
// contract's host serializes invocations, so a mutex-guarded map is enough.
type InMemoryStore struct {
	mu         sync.RWMutex
	identities map[id.AccountID]domain.Identity
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{identities: make(map[id.AccountID]domain.Identity)}
}

func (s *InMemoryStore) Save(_ context.Context, ident domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identities[ident.Account] = ident
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, account id.AccountID) (domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ident, ok := s.identities[account]; ok {
		return ident, nil
	}
	return domain.Identity{}, sentinel.ErrNotFound
}
