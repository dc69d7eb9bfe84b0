package reputation

import (
	"context"
	"sync"

	"laurel/internal/domain"
	id "laurel/pkg/domain"
	"laurel/pkg/platform/sentinel"
)

// CatalogStore persists the action catalog: one ActionConfig per action type.
type CatalogStore interface {
	Put(ctx context.Context, cfg domain.ActionConfig) error
	Find(ctx context.Context, action id.ActionType) (domain.ActionConfig, error)
}

// InMemoryCatalog is the default catalog store.
type InMemoryCatalog struct {
	mu      sync.RWMutex
	actions map[id.ActionType]domain.ActionConfig
}

func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{actions: make(map[id.ActionType]domain.ActionConfig)}
}

func (c *InMemoryCatalog) Put(_ context.Context, cfg domain.ActionConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actions[cfg.Type] = cfg
	return nil
}

func (c *InMemoryCatalog) Find(_ context.Context, action id.ActionType) (domain.ActionConfig, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cfg, ok := c.actions[action]; ok {
		return cfg, nil
	}
	return domain.ActionConfig{}, sentinel.ErrNotFound
}
