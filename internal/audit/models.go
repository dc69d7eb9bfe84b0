package audit

import (
	"time"

	"github.com/google/uuid"

	id "laurel/pkg/domain"
)

// Event is emitted after every successful mutating operation. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID        uuid.UUID
	Timestamp time.Time
	Height    uint64
	Account   id.AccountID
	Action    string
	Target    string
	Detail    string
}

// Audit actions, one per mutating protocol operation.
const (
	ActionIdentityCreated     = "identity_created"
	ActionReputationApplied   = "action_applied"
	ActionAttestationCreated  = "attestation_created"
	ActionProposalCreated     = "proposal_created"
	ActionVoteCast            = "vote_cast"
	ActionProtocolPaused      = "protocol_paused"
	ActionProtocolResumed     = "protocol_resumed"
	ActionActionConfigUpdated = "action_config_updated"
	ActionCatalogSeeded       = "action_catalog_seeded"
)
