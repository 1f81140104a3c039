package security

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsMarshalTimeoutInMinutes(t *testing.T) {
	raw, err := json.Marshal(DefaultLimits())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, float64(15), m["session_timeout_minutes"])
	assert.NotContains(t, m, "session_timeout")

	assert.Equal(t, "2", m["max_transaction_amount"])
	assert.Equal(t, float64(3), m["max_transactions_per_hour"])
}
