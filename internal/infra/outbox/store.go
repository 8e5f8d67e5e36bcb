package outbox

import (
	"context"
	"time"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Job struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}

type OutboxQueries interface {
	ClaimNotificationJobs(ctx context.Context, db dbq.DBTX, arg dbq.ClaimNotificationJobsParams) ([]dbq.NotificationJobs, error)
	MarkNotificationJobSent(ctx context.Context, db dbq.DBTX, id uuid.UUID, sentAt pgtype.Timestamptz) error
	MarkNotificationJobFailed(ctx context.Context, db dbq.DBTX, arg dbq.MarkNotificationJobFailedParams) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db dbq.DBTX) (int64, error)
}

// Store leases due notification jobs and records their delivery outcome.
type Store struct {
	queries OutboxQueries
	db      dbq.DBTX
}

func NewStore(queries OutboxQueries, db dbq.DBTX) *Store {
	return &Store{queries: queries, db: db}
}

// Claim leases up to limit due jobs until leaseUntil. Concurrent relays skip
// each other's rows.
func (s *Store) Claim(ctx context.Context, now, leaseUntil time.Time, limit int32) ([]Job, error) {
	rows, err := s.queries.ClaimNotificationJobs(ctx, s.db, dbq.ClaimNotificationJobsParams{
		Now:        pgconv.TimeToPgtype(now),
		LeaseUntil: pgconv.TimeToPgtype(leaseUntil),
		Limit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	jobs := make([]Job, len(rows))
	for i, r := range rows {
		jobs[i] = Job{
			ID:       r.ID,
			Kind:     r.Kind,
			Topic:    r.Topic,
			Payload:  r.Payload,
			Attempts: r.Attempts,
		}
	}
	return jobs, nil
}

func (s *Store) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := s.queries.MarkNotificationJobSent(ctx, s.db, id, pgconv.TimeToPgtype(at)); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkFailed requeues the job at retryAt, or parks it as failed when giveUp is set.
func (s *Store) MarkFailed(ctx context.Context, id uuid.UUID, cause string, retryAt time.Time, giveUp bool) error {
	err := s.queries.MarkNotificationJobFailed(ctx, s.db, dbq.MarkNotificationJobFailedParams{
		ID:        id,
		LastError: pgtype.Text{String: cause, Valid: true},
		RunAt:     pgconv.TimeToPgtype(retryAt),
		GiveUp:    giveUp,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}

func (s *Store) DeleteExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	n, err := s.queries.DeleteExpiredIdempotencyKeys(ctx, s.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return n, nil
}
