//go:build unit

package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasherWithCost(bcrypt.MinCost)

	hashed, err := h.Hash("password123")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hashed, "password123"))
	assert.ErrorIs(t, h.Compare(hashed, "password124"), ErrMismatch)
	assert.ErrorIs(t, h.Compare("", "password123"), ErrEmptyPassword)
	assert.Error(t, h.Compare("not-a-bcrypt-hash", "password123"))

	_, err = h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestCostIsClamped(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasherWithCost(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasherWithCost(99).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher().cost)
}
