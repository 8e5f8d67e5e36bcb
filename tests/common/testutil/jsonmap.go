//go:build unit || e2e

// Package testutil reshapes request payloads for validation tables.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request payload decoded into a map.
type Mutation func(map[string]any)

// JSONMap marshals v and decodes it back into a generic map, then applies
// the mutations in order.
func JSONMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	m := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, mut := range muts {
		if mut != nil {
			mut(m)
		}
	}
	return m
}

// With sets key to value. A nil value removes the key, which is how tests
// express a missing field.
func With(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
