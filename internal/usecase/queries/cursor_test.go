//go:build unit

package queries

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewCursor(t *testing.T) {
	created := time.Date(2026, 3, 14, 10, 30, 0, 123456789, time.UTC)
	id := uuid.New()

	cur := cursorAfter(&ReviewView{ID: id, CreatedAt: created})
	key, err := decodeReviewKey(cur.After)

	require.NoError(t, err)
	assert.Equal(t, id, key.ID)
	assert.Equal(t, created.Truncate(time.Microsecond), key.CreatedAt)
}

func TestDecodeReviewKeyRejects(t *testing.T) {
	enc := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	cases := map[string]string{
		"not base64":   "%%%",
		"wrong prefix": enc("bk.abc." + uuid.NewString()),
		"missing id":   enc("rv.abc"),
		"bad time":     enc("rv.!!." + uuid.NewString()),
		"bad id":       enc("rv.abc.not-a-uuid"),
	}
	for name, after := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decodeReviewKey(after)
			assert.Error(t, err)
		})
	}
}

func TestReviewLimit(t *testing.T) {
	assert.Equal(t, DefaultReviewLimit, reviewLimit(0))
	assert.Equal(t, DefaultReviewLimit, reviewLimit(-3))
	assert.Equal(t, 7, reviewLimit(7))
	assert.Equal(t, MaxReviewLimit, reviewLimit(MaxReviewLimit+1))
}
