package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"vehicle-rental/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultReviewLimit = 20
	MaxReviewLimit     = 100

	reviewCursorPrefix = "rv"
)

// Cursor is the opaque position handed back to clients between review pages.
type Cursor struct {
	After string `json:"after,omitempty"`
}

// ReviewKey is the (created_at, id) pair reviews are ordered by, newest first.
type ReviewKey struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// encode keeps microseconds only; PostgreSQL timestamptz drops anything finer.
func (k ReviewKey) encode() string {
	raw := reviewCursorPrefix + "." + strconv.FormatInt(k.CreatedAt.UnixMicro(), 36) + "." + k.ID.String()
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func cursorAfter(rv *ReviewView) *Cursor {
	return &Cursor{After: ReviewKey{CreatedAt: rv.CreatedAt, ID: rv.ID}.encode()}
}

func decodeReviewKey(after string) (ReviewKey, error) {
	raw, err := base64.URLEncoding.DecodeString(after)
	if err != nil {
		return ReviewKey{}, errs.Wrap(err, "cursor is not base64url")
	}
	parts := strings.Split(string(raw), ".")
	if len(parts) != 3 || parts[0] != reviewCursorPrefix {
		return ReviewKey{}, errs.Newf("malformed review cursor %q", raw)
	}
	micros, err := strconv.ParseInt(parts[1], 36, 64)
	if err != nil {
		return ReviewKey{}, errs.Wrap(err, "cursor timestamp")
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return ReviewKey{}, errs.Wrap(err, "cursor id")
	}
	return ReviewKey{CreatedAt: time.UnixMicro(micros).UTC(), ID: id}, nil
}

// reviewLimit maps a requested page size onto [1, MaxReviewLimit].
func reviewLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultReviewLimit
	case limit > MaxReviewLimit:
		return MaxReviewLimit
	default:
		return limit
	}
}
