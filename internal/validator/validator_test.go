package validator

import (
	"testing"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	ContractID string `validate:"required"`
	Months     int    `validate:"min=1"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sample{ContractID: "ctr_1", Months: 1}))

	err := ValidateRequest(sample{})
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Contains(t, ierr.GetHints(err), "Request validation failed")
}
