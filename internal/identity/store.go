package identity

import (
	"context"

	"laurel/internal/domain"
	id "laurel/pkg/domain"
)

// Store persists one Identity per account. Implementations must make
// Find-then-Save safe under the contract's serialized invocation model; the
// check-absence-then-insert guard in the service is the correctness
// mechanism that substitutes for locking.
type Store interface {
	Save(ctx context.Context, ident domain.Identity) error
	Find(ctx context.Context, account id.AccountID) (domain.Identity, error)
}
