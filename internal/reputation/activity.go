package reputation

import (
	"context"

	"github.com/puzpuzpuz/xsync/v4"
)

// ActivityStore is the anti-gaming ledger: per-(account, day, action)
// application counters. Counts for untouched keys default to 0. Old day
// windows are never read again, so implementations may evict them freely.
type ActivityStore interface {
	Count(ctx context.Context, key ActivityKey) (uint64, error)
	Increment(ctx context.Context, key ActivityKey) (uint64, error)
}

// InMemoryActivityStore keeps counters in a concurrent map so increments stay
// atomic even when the caller is not the serialized contract front end.
type InMemoryActivityStore struct {
	counters *xsync.Map[string, uint64]
}

func NewInMemoryActivityStore() *InMemoryActivityStore {
	return &InMemoryActivityStore{counters: xsync.NewMap[string, uint64]()}
}

func (s *InMemoryActivityStore) Count(_ context.Context, key ActivityKey) (uint64, error) {
	count, _ := s.counters.Load(key.String())
	return count, nil
}

func (s *InMemoryActivityStore) Increment(_ context.Context, key ActivityKey) (uint64, error) {
	next, _ := s.counters.Compute(key.String(), func(old uint64, _ bool) (uint64, xsync.ComputeOp) {
		return old + 1, xsync.UpdateOp
	})
	return next, nil
}
