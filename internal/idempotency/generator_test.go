package idempotency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	g := NewGenerator()

	a := g.GenerateKey(ScopeInstallmentSchedule, map[string]interface{}{
		"contract_id": "ctr_1",
		"due_date":    "2024-04-01",
		"type":        1,
	})
	b := g.GenerateKey(ScopeInstallmentSchedule, map[string]interface{}{
		"type":        1,
		"due_date":    "2024-04-01",
		"contract_id": "ctr_1",
	})
	c := g.GenerateKey(ScopeInstallmentSchedule, map[string]interface{}{
		"contract_id": "ctr_1",
		"due_date":    "2024-07-01",
		"type":        1,
	})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^installment_schedule-[0-9a-f]{16}$`, a)
	assert.True(t, g.ValidateKey(ScopeInstallmentSchedule, map[string]interface{}{
		"contract_id": "ctr_1",
		"due_date":    "2024-04-01",
		"type":        1,
	}, a))
}
