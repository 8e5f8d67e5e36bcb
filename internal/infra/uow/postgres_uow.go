package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"vehicle-rental/internal/domain/booking"
	"vehicle-rental/internal/domain/review"
	"vehicle-rental/internal/domain/vehicle"
	"vehicle-rental/internal/infra/dbq"
	"vehicle-rental/internal/infra/readstore"
	"vehicle-rental/internal/infra/repository"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
	errRetriesExhausted  = errs.New("transaction failed after max retries")
)

// retryPolicy governs how often Within replays a transaction that lost a
// serialization race, such as two customers booking the same vehicle.
type retryPolicy struct {
	maxRetries int
	base       time.Duration
}

var defaultRetry = retryPolicy{maxRetries: 3, base: 100 * time.Millisecond}

// backoff doubles per attempt and adds up to 20% jitter.
func (p retryPolicy) backoff(attempt int) time.Duration {
	wait := p.base << attempt
	return wait + rand.N(wait/5+1)
}

// retryable reports serialization failures (40001) and deadlocks (40P01).
func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

type PostgresUoW struct {
	pool  *pgxpool.Pool
	q     *dbq.Queries
	reads *readstore.CommandReadStore
	idem  *readstore.IdempotencyReadStore
	retry retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *dbq.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool:  pool,
		q:     q,
		reads: readstore.NewCommandReadStore(q),
		idem:  readstore.NewIdempotencyReadStore(q),
		retry: defaultRetry,
	}
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{store: u.reads, idem: u.idem, dbtx: u.pool}
}

// Within uses READ COMMITTED; overlap checks take row locks on the vehicle
// instead of relying on SERIALIZABLE.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := u.attempt(ctx, fn)
		if err == nil || !retryable(err) {
			return err
		}
		if attempt == u.retry.maxRetries {
			slog.ErrorContext(ctx, "transaction retries exhausted", "attempts", attempt+1, "error", err.Error())
			return errs.Mark(err, errRetriesExhausted)
		}

		wait := u.retry.backoff(attempt)
		slog.WarnContext(ctx, "retrying transaction", "attempt", attempt+1, "wait", wait, "error", err.Error())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// attempt runs fn once. The rollback after a successful commit is a no-op.
func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "rollback failed", "error", rbErr.Error())
		}
	}()

	if err := fn(ctx, &pgTx{dbtx: pgxTx, uow: u}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

// memo builds a value on first use and keeps it for the rest of the tx.
type memo[T any] struct {
	v    T
	done bool
}

func (m *memo[T]) get(build func() T) T {
	if !m.done {
		m.v, m.done = build(), true
	}
	return m.v
}

type pgTx struct {
	dbtx dbq.DBTX
	uow  *PostgresUoW

	users         memo[shared.UserRepository]
	categories    memo[shared.CategoryRepository]
	vehicles      memo[shared.VehicleRepository]
	bookings      memo[shared.BookingRepository]
	reviews       memo[shared.ReviewRepository]
	ratingStats   memo[shared.RatingStatsRepository]
	idempotency   memo[shared.IdempotencyRepository]
	notifications memo[shared.NotificationRepository]
	reads         memo[shared.CommandReads]
}

func (t *pgTx) DB() dbq.DBTX {
	return t.dbtx
}

func (t *pgTx) Users() shared.UserRepository {
	return t.users.get(func() shared.UserRepository { return repository.NewUserRepository(t.uow.q, t.dbtx) })
}

func (t *pgTx) Categories() shared.CategoryRepository {
	return t.categories.get(func() shared.CategoryRepository { return repository.NewCategoryRepository(t.uow.q, t.dbtx) })
}

func (t *pgTx) Vehicles() shared.VehicleRepository {
	return t.vehicles.get(func() shared.VehicleRepository { return repository.NewVehicleRepository(t.uow.q, t.dbtx) })
}

func (t *pgTx) Bookings() shared.BookingRepository {
	return t.bookings.get(func() shared.BookingRepository { return repository.NewBookingRepository(t.uow.q, t.dbtx) })
}

func (t *pgTx) Reviews() shared.ReviewRepository {
	return t.reviews.get(func() shared.ReviewRepository { return repository.NewReviewRepository(t.uow.q, t.dbtx) })
}

func (t *pgTx) RatingStats() shared.RatingStatsRepository {
	return t.ratingStats.get(func() shared.RatingStatsRepository { return repository.NewRatingStatsRepository(t.uow.q, t.dbtx) })
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	return t.idempotency.get(func() shared.IdempotencyRepository { return repository.NewIdempotencyRepository(t.uow.q, t.dbtx) })
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	return t.notifications.get(func() shared.NotificationRepository { return repository.NewNotificationRepository(t.uow.q, t.dbtx) })
}

func (t *pgTx) Reads() shared.CommandReads {
	return t.reads.get(func() shared.CommandReads {
		return &commandReads{store: t.uow.reads, idem: t.uow.idem, dbtx: t.dbtx}
	})
}

// commandReads binds the stateless read stores to one connection or transaction.
type commandReads struct {
	store *readstore.CommandReadStore
	idem  *readstore.IdempotencyReadStore
	dbtx  dbq.DBTX
}

func (r *commandReads) CredentialsByLogin(ctx context.Context, identifier string) (*shared.Credentials, error) {
	return r.store.CredentialsByLogin(ctx, r.dbtx, identifier)
}

func (r *commandReads) CredentialsByID(ctx context.Context, id uuid.UUID) (*shared.Credentials, error) {
	return r.store.CredentialsByID(ctx, r.dbtx, id)
}

func (r *commandReads) CategoryByID(ctx context.Context, id uuid.UUID) (*shared.CategorySnapshot, error) {
	return r.store.CategoryByID(ctx, r.dbtx, id)
}

func (r *commandReads) CategoryByName(ctx context.Context, name string) (*shared.CategorySnapshot, error) {
	return r.store.CategoryByName(ctx, r.dbtx, name)
}

func (r *commandReads) VehicleByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	return r.store.Vehicle(ctx, r.dbtx, id, false)
}

func (r *commandReads) VehicleForUpdate(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	return r.store.Vehicle(ctx, r.dbtx, id, true)
}

func (r *commandReads) VehicleNameExists(ctx context.Context, name string) (bool, error) {
	return r.store.VehicleNameExists(ctx, r.dbtx, name)
}

func (r *commandReads) BookingForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.store.BookingForUpdate(ctx, r.dbtx, id)
}

func (r *commandReads) CountOverlappingBookings(ctx context.Context, vehicleID uuid.UUID, slot booking.TimeSlot) (int64, error) {
	return r.store.CountOverlappingBookings(ctx, r.dbtx, vehicleID, slot)
}

func (r *commandReads) ReviewForUpdate(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	return r.store.ReviewForUpdate(ctx, r.dbtx, id)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	return r.idem.Get(ctx, r.dbtx, key, userID)
}
