// Package audit captures an append-only trail of protocol operations.
//
// Publishing is fire-and-forget from the contract's point of view: a failed
// audit write never aborts a state transition. Deployments that need
// stronger guarantees should front the Kafka publisher with an outbox.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mocks.go -package=mocks Publisher

// Publisher is the sink protocol operations emit to.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Stamp fills the generated fields of an event.
func Stamp(event Event) Event {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return event
}

// MemoryPublisher collects events in memory for tests and single-process
// deployments.
type MemoryPublisher struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Emit(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Stamp(event))
	return nil
}

// Events returns a copy of everything emitted so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Event{}, p.events...)
}
