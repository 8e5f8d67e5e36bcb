package readstore

import (
	"context"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/pgconv"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db dbq.DBTX, arg dbq.GetIdempotencyKeyParams) (dbq.IdempotencyKeys, error)
}

// IdempotencyReadStore looks up keys scoped to their owner; the same key
// sent by another user is a different record.
type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries) *IdempotencyReadStore {
	return &IdempotencyReadStore{queries: queries}
}

// Get returns expired records too. Expiry is judged by the caller's clock.
func (r *IdempotencyReadStore) Get(ctx context.Context, tx dbq.DBTX, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, tx, dbq.GetIdempotencyKeyParams{Key: key, UserID: userID})
	switch {
	case pgconv.IsNoRows(err):
		return nil, infra.WrapRepoErr("lookup idempotency key", err, infra.KindNotFound)
	case err != nil:
		return nil, infra.WrapRepoErr("lookup idempotency key", err)
	}
	return toIdempotencyRecord(row), nil
}

func toIdempotencyRecord(row dbq.IdempotencyKeys) *shared.IdempotencyRecord {
	return &shared.IdempotencyRecord{
		Key:             row.Key,
		UserID:          row.UserID,
		Endpoint:        row.Endpoint,
		Status:          row.Status,
		RequestHash:     row.RequestHash,
		ResultBookingID: pgconv.UUIDPtrFromPgtype(row.ResultBookingID),
		ExpiresAt:       pgconv.TimeFromPgtype(row.ExpiresAt),
	}
}
