package outbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"vehicle-rental/internal/pkg/clock"

	"github.com/google/uuid"
)

const (
	defaultInterval  = time.Second
	leaseDuration    = 30 * time.Second
	maxErrorLength   = 500
	keySweepInterval = time.Hour
)

var backoff = []time.Duration{
	time.Second,
	5 * time.Second,
	30 * time.Second,
	2 * time.Minute,
	10 * time.Minute,
}

type JobStore interface {
	Claim(ctx context.Context, now, leaseUntil time.Time, limit int32) ([]Job, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause string, retryAt time.Time, giveUp bool) error
	DeleteExpiredIdempotencyKeys(ctx context.Context) (int64, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error
}

type RelayOptions struct {
	Interval  time.Duration
	BatchSize int32
	MaxTries  int32
}

// Relay moves queued notification jobs to the message broker and sweeps
// expired idempotency keys.
type Relay struct {
	store     JobStore
	publisher Publisher
	clock     clock.Clock
	opts      RelayOptions
	lastSweep time.Time
}

func NewRelay(store JobStore, publisher Publisher, clk clock.Clock, opts RelayOptions) *Relay {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 20
	}
	if opts.MaxTries <= 0 {
		opts.MaxTries = 8
	}
	return &Relay{store: store, publisher: publisher, clock: clk, opts: opts}
}

// Run blocks until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.ProcessOnce(ctx); err != nil && ctx.Err() == nil {
				slog.Error("outbox relay iteration failed", "error", err)
			}
			r.sweepKeys(ctx)
		}
	}
}

// ProcessOnce relays one batch and returns the number of jobs delivered.
func (r *Relay) ProcessOnce(ctx context.Context) (int, error) {
	now := r.clock.Now()
	jobs, err := r.store.Claim(ctx, now, now.Add(leaseDuration), r.opts.BatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, job := range jobs {
		headers := map[string]string{
			"content-type": "application/json",
			"event-type":   job.Kind,
			"job-id":       job.ID.String(),
		}
		if err := r.publisher.Publish(ctx, job.Topic, partitionKey(job), job.Payload, headers); err != nil {
			r.fail(ctx, job, err)
			continue
		}
		if err := r.store.MarkSent(ctx, job.ID, r.clock.Now()); err != nil {
			// The lease expires and the job is delivered again.
			slog.Error("outbox mark sent failed", "job_id", job.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

func (r *Relay) fail(ctx context.Context, job Job, cause error) {
	giveUp := job.Attempts >= r.opts.MaxTries
	msg := cause.Error()
	if len(msg) > maxErrorLength {
		msg = msg[:maxErrorLength]
	}

	if giveUp {
		slog.Error("outbox job abandoned", "job_id", job.ID, "kind", job.Kind, "attempts", job.Attempts, "error", cause)
	} else {
		slog.Warn("outbox publish failed", "job_id", job.ID, "kind", job.Kind, "attempts", job.Attempts, "error", cause)
	}
	if err := r.store.MarkFailed(ctx, job.ID, msg, r.clock.Now().Add(retryDelay(job.Attempts)), giveUp); err != nil {
		slog.Error("outbox mark failed failed", "job_id", job.ID, "error", err)
	}
}

func (r *Relay) sweepKeys(ctx context.Context) {
	now := r.clock.Now()
	if now.Sub(r.lastSweep) < keySweepInterval {
		return
	}
	r.lastSweep = now

	n, err := r.store.DeleteExpiredIdempotencyKeys(ctx)
	if err != nil {
		slog.Warn("idempotency key sweep failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("expired idempotency keys deleted", "count", n)
	}
}

// retryDelay maps the attempt count (1-based after a claim) to a backoff step.
func retryDelay(attempts int32) time.Duration {
	i := int(attempts) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(backoff) {
		i = len(backoff) - 1
	}
	return backoff[i]
}

// partitionKey keeps events of one booking in order.
func partitionKey(job Job) string {
	var ref struct {
		BookingID string `json:"booking_id"`
	}
	if err := json.Unmarshal(job.Payload, &ref); err == nil && ref.BookingID != "" {
		return ref.BookingID
	}
	return job.ID.String()
}
