package dbq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createNotificationJob = `-- name: CreateNotificationJob :exec
INSERT INTO notification_jobs (kind, topic, payload, status, run_at)
VALUES ($1, $2, $3, 'queued', $4)`

type CreateNotificationJobParams struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   pgtype.Timestamptz
}

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, arg CreateNotificationJobParams) error {
	_, err := db.Exec(ctx, createNotificationJob, arg.Kind, arg.Topic, arg.Payload, arg.RunAt)
	return err
}

// Due jobs are leased by pushing run_at forward, so a crashed worker's batch
// becomes visible again once the lease runs out.
const claimNotificationJobs = `-- name: ClaimNotificationJobs :many
UPDATE notification_jobs
SET attempts = attempts + 1, run_at = $2, updated_at = $1
WHERE id IN (
    SELECT id FROM notification_jobs
    WHERE status = 'queued' AND run_at <= $1
    ORDER BY run_at, id
    LIMIT $3
    FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, topic, payload, status, attempts, run_at, last_error, sent_at, created_at, updated_at`

type ClaimNotificationJobsParams struct {
	Now        pgtype.Timestamptz
	LeaseUntil pgtype.Timestamptz
	Limit      int32
}

func (q *Queries) ClaimNotificationJobs(ctx context.Context, db DBTX, arg ClaimNotificationJobsParams) ([]NotificationJobs, error) {
	rows, err := db.Query(ctx, claimNotificationJobs, arg.Now, arg.LeaseUntil, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []NotificationJobs{}
	for rows.Next() {
		var i NotificationJobs
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Topic,
			&i.Payload,
			&i.Status,
			&i.Attempts,
			&i.RunAt,
			&i.LastError,
			&i.SentAt,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markNotificationJobSent = `-- name: MarkNotificationJobSent :exec
UPDATE notification_jobs
SET status = 'sent', sent_at = $2, last_error = NULL, updated_at = $2
WHERE id = $1`

func (q *Queries) MarkNotificationJobSent(ctx context.Context, db DBTX, id uuid.UUID, sentAt pgtype.Timestamptz) error {
	_, err := db.Exec(ctx, markNotificationJobSent, id, sentAt)
	return err
}

const markNotificationJobFailed = `-- name: MarkNotificationJobFailed :exec
UPDATE notification_jobs
SET status = CASE WHEN $4::bool THEN 'failed' ELSE 'queued' END,
    last_error = $2, run_at = $3, updated_at = now()
WHERE id = $1`

type MarkNotificationJobFailedParams struct {
	ID        uuid.UUID
	LastError pgtype.Text
	RunAt     pgtype.Timestamptz
	GiveUp    bool
}

func (q *Queries) MarkNotificationJobFailed(ctx context.Context, db DBTX, arg MarkNotificationJobFailedParams) error {
	_, err := db.Exec(ctx, markNotificationJobFailed, arg.ID, arg.LastError, arg.RunAt, arg.GiveUp)
	return err
}
