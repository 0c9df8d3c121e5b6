package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	all, err := All()
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "0001_contracts", all[0].Version)
	assert.Equal(t, "0002_installments", all[1].Version)
	assert.Contains(t, all[0].SQL, "CREATE TABLE IF NOT EXISTS contracts")
	assert.Contains(t, all[1].SQL, "WHERE idempotency_key <> ''")
}
