package attestation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"laurel/internal/domain"
	id "laurel/pkg/domain"
	"laurel/pkg/platform/sentinel"
)

// Store keeps at most one attestation per (attester, target) pair. Put
// overwrites; expired records stay until overwritten.
type Store interface {
	Put(ctx context.Context, att domain.Attestation) error
	Find(ctx context.Context, attester, target id.AccountID) (domain.Attestation, error)
}

func pairKey(attester, target id.AccountID) string {
	escape := func(s string) string { return strings.ReplaceAll(s, ":", "_") }
	return fmt.Sprintf("%s:%s", escape(attester.String()), escape(target.String()))
}

// InMemoryStore is the default attestation store.
type InMemoryStore struct {
	mu           sync.RWMutex
	attestations map[string]domain.Attestation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{attestations: make(map[string]domain.Attestation)}
}

func (s *InMemoryStore) Put(_ context.Context, att domain.Attestation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attestations[pairKey(att.Attester, att.Target)] = att
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, attester, target id.AccountID) (domain.Attestation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if att, ok := s.attestations[pairKey(attester, target)]; ok {
		return att, nil
	}
	return domain.Attestation{}, sentinel.ErrNotFound
}
