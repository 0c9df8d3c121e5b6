package postgres

import (
	"testing"

	"github.com/rentdesk/rentdesk/migrations"
	"github.com/stretchr/testify/assert"
)

func TestPendingMigrations(t *testing.T) {
	all := []migrations.Migration{
		{Version: "0001_contracts"},
		{Version: "0002_installments"},
		{Version: "0003_notes"},
	}

	pending := PendingMigrations(all, []string{"0001_contracts"})
	assert.Equal(t, []string{"0002_installments", "0003_notes"}, versions(pending))

	assert.Empty(t, PendingMigrations(all, []string{"0001_contracts", "0002_installments", "0003_notes"}))
	assert.Len(t, PendingMigrations(all, nil), 3)
}

func versions(ms []migrations.Migration) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Version)
	}
	return out
}
