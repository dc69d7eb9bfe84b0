// Package chain abstracts the host ledger's block counter.
//
// The protocol has no notion of wall-clock time: decay windows, daily caps,
// and expiries are all computed from a monotonically increasing block height
// supplied by the host. Off-chain deployments derive a height from a genesis
// timestamp and a fixed block interval.
package chain

import (
	"sync"
	"time"
)

// HeightSource yields the current block height for an invocation.
type HeightSource interface {
	Height() uint64
}

// IntervalClock derives a height from elapsed wall time since genesis. It is
// monotone as long as the system clock is; the protocol only requires that
// heights never decrease between invocations.
type IntervalClock struct {
	genesis  time.Time
	interval time.Duration
	now      func() time.Time
}

// NewIntervalClock builds a clock ticking one block per interval since genesis.
func NewIntervalClock(genesis time.Time, interval time.Duration) *IntervalClock {
	return &IntervalClock{genesis: genesis, interval: interval, now: time.Now}
}

func (c *IntervalClock) Height() uint64 {
	elapsed := c.now().Sub(c.genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / c.interval)
}

// Manual is a settable height source for tests and deterministic simulation.
type Manual struct {
	mu     sync.RWMutex
	height uint64
}

// NewManual starts a manual source at the given height.
func NewManual(height uint64) *Manual {
	return &Manual{height: height}
}

func (m *Manual) Height() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.height
}

// Set moves the source to an absolute height.
func (m *Manual) Set(height uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.height = height
}

// Advance moves the source forward by delta blocks.
func (m *Manual) Advance(delta uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.height += delta
}
