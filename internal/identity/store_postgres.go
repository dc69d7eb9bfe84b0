package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"laurel/internal/domain"
	id "laurel/pkg/domain"
	"laurel/pkg/platform/sentinel"
)

// PostgresStore persists identities in PostgreSQL for deployments that need
// the registry to survive restarts. The schema is managed externally:
//
//	CREATE TABLE identities (
//	    account            TEXT PRIMARY KEY,
//	    did                TEXT NOT NULL,
//	    reputation_score   BIGINT NOT NULL,
//	    weighted_score     BIGINT NOT NULL,
//	    staked_amount      BIGINT NOT NULL,
//	    created_at         BIGINT NOT NULL,
//	    last_updated       BIGINT NOT NULL,
//	    last_decay         BIGINT NOT NULL,
//	    activity_count     BIGINT NOT NULL,
//	    verification_level SMALLINT NOT NULL
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, ident domain.Identity) error {
	const query = `
		INSERT INTO identities (
			account, did, reputation_score, weighted_score, staked_amount,
			created_at, last_updated, last_decay, activity_count, verification_level
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (account) DO UPDATE SET
			reputation_score = EXCLUDED.reputation_score,
			weighted_score = EXCLUDED.weighted_score,
			last_updated = EXCLUDED.last_updated,
			last_decay = EXCLUDED.last_decay,
			activity_count = EXCLUDED.activity_count,
			verification_level = EXCLUDED.verification_level`
	_, err := s.db.ExecContext(ctx, query,
		ident.Account.String(),
		ident.DID.String(),
		int64(ident.ReputationScore),
		int64(ident.WeightedScore),
		int64(ident.StakedAmount),
		int64(ident.CreatedAt),
		int64(ident.LastUpdated),
		int64(ident.LastDecay),
		int64(ident.ActivityCount),
		int64(ident.VerificationLevel),
	)
	if err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, account id.AccountID) (domain.Identity, error) {
	const query = `
		SELECT account, did, reputation_score, weighted_score, staked_amount,
		       created_at, last_updated, last_decay, activity_count, verification_level
		FROM identities WHERE account = $1`

	var acct, did string
	var repScore, weighted, staked int64
	var createdAt, lastUpdated, lastDecay, activity, verification int64
	err := s.db.QueryRowContext(ctx, query, account.String()).Scan(
		&acct, &did, &repScore, &weighted, &staked,
		&createdAt, &lastUpdated, &lastDecay, &activity, &verification,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Identity{}, sentinel.ErrNotFound
		}
		return domain.Identity{}, fmt.Errorf("find identity: %w", err)
	}

	ident := domain.Identity{
		Account:           id.AccountID(acct),
		DID:               id.DID(did),
		ReputationScore:   uint64(repScore),
		WeightedScore:     uint64(weighted),
		StakedAmount:      uint64(staked),
		CreatedAt:         uint64(createdAt),
		LastUpdated:       uint64(lastUpdated),
		LastDecay:         uint64(lastDecay),
		ActivityCount:     uint64(activity),
		VerificationLevel: uint64(verification),
	}
	return ident, nil
}
