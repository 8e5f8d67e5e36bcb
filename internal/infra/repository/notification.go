package repository

import (
	"context"
	"encoding/json"
	"time"

	"vehicle-rental/internal/infra"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/pkg/pgconv"
)

var errPayloadNotJSON = errs.New("notification payload is not valid JSON")

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db dbq.DBTX, arg dbq.CreateNotificationJobParams) error
}

// NotificationRepository appends outbox rows. Jobs are written inside the
// caller's transaction so an event is published only if its change commits.
type NotificationRepository struct {
	queries NotificationWriteQueries
	db      dbq.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db dbq.DBTX) *NotificationRepository {
	return &NotificationRepository{queries: queries, db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx dbq.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	// payload lands in a jsonb column; reject early with a clearer error
	if !json.Valid(payload) {
		return infra.WrapRepoErr("enqueue "+kind, errPayloadNotJSON, infra.KindCheckViolated)
	}
	if tx == nil {
		tx = r.db
	}

	err := r.queries.CreateNotificationJob(ctx, tx, dbq.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
	})
	if err != nil {
		return infra.WrapRepoErr("enqueue "+kind, err)
	}
	return nil
}
