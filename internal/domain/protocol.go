package domain

// ProtocolStats is the read-only snapshot returned by the stats query.
//
// IdentityCount is not tracked by the protocol and is always reported as 0;
// consumers that need it must compute it externally. ProposalCount comes from
// the proposal counter.
type ProtocolStats struct {
	TotalStaked   uint64
	Paused        bool
	ProposalCount uint64
	IdentityCount uint64
	Height        uint64
}
