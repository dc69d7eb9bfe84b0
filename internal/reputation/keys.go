package reputation

import (
	"fmt"
	"strings"

	id "laurel/pkg/domain"
)

// ActivityKey addresses one (account, day, action) counter in the anti-gaming
// ledger.
type ActivityKey struct {
	Account id.AccountID
	Day     uint64
	Action  id.ActionType
}

// String renders the composite key with sanitized segments. Escaping the
// delimiter prevents key collision attacks where an identifier containing ':'
// could alias an adjacent counter.
func (k ActivityKey) String() string {
	return fmt.Sprintf("%s:%d:%s",
		sanitizeSegment(k.Account.String()),
		k.Day,
		sanitizeSegment(k.Action.String()),
	)
}

func sanitizeSegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
