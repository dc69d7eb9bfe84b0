package protocol

import "sync"

// State is the process-wide protocol singleton: the paused flag, the
// monotonic proposal counter, and the running total of staked value. It is
// initialized once at deployment and passed by reference into every service
// that needs it, which keeps tests isolated and simulation deterministic.
//
// TotalStaked only records stake at identity creation time; it is never
// decremented, matching the host ledger's custody model.
type State struct {
	mu              sync.RWMutex
	paused          bool
	proposalCounter uint64
	totalStaked     uint64
}

// NewState returns an unpaused state with zeroed counters.
func NewState() *State {
	return &State{}
}

// Paused reports whether mutating operations must abort.
func (s *State) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// SetPaused toggles the pause flag.
func (s *State) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

// NextProposalID allocates the next sequential proposal id, starting at 1.
// Callers must only allocate after all proposal validation has passed so ids
// stay gapless on failure-free hosts.
func (s *State) NextProposalID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposalCounter++
	return s.proposalCounter
}

// ProposalCount returns the number of proposals ever created.
func (s *State) ProposalCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proposalCounter
}

// AddStake records newly staked value.
func (s *State) AddStake(amount uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalStaked += amount
}

// TotalStaked returns the running total of recorded stake.
func (s *State) TotalStaked() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalStaked
}
