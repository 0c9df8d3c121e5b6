package types

import (
	"testing"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestInstallmentStatusLabels(t *testing.T) {
	for _, s := range AllInstallmentStatuses() {
		assert.NotEmpty(t, s.Label(), "status %s has no label", s)
		assert.NoError(t, s.Validate())
	}

	assert.Equal(t, "Quá hạn", InstallmentStatusOverdue.Label())
	assert.Equal(t, "PAID", InstallmentStatusPaid.String())
}

func TestInstallmentStatusValidate(t *testing.T) {
	err := InstallmentStatus(7).Validate()
	assert.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Equal(t, "InstallmentStatus(7)", InstallmentStatus(7).String())
	assert.Empty(t, InstallmentStatus(7).Label())
}

func TestInstallmentTypeLabels(t *testing.T) {
	for _, it := range AllInstallmentTypes() {
		assert.NotEmpty(t, it.Label(), "type %s has no label", it)
		assert.NoError(t, it.Validate())
	}

	err := InstallmentType(0).Validate()
	assert.True(t, ierr.IsValidation(err))
}

func TestContractTypeScheduleInstallmentType(t *testing.T) {
	assert.Equal(t, InstallmentTypeRent, ContractTypeHome.ScheduleInstallmentType())
	assert.Equal(t, InstallmentTypeService, ContractTypeService.ScheduleInstallmentType())
	assert.True(t, ierr.IsValidation(ContractType("BOAT").Validate()))
	assert.True(t, ierr.IsValidation(ContractStatus("PAUSED").Validate()))
}

func TestInstallmentFilterValidate(t *testing.T) {
	f := NewInstallmentFilter()
	assert.NoError(t, f.Validate())
	assert.Equal(t, "due_date", f.GetSort())
	assert.Equal(t, OrderAsc, f.GetOrder())

	f.Statuses = []InstallmentStatus{InstallmentStatusPaid, InstallmentStatus(9)}
	assert.True(t, ierr.IsValidation(f.Validate()))

	bad := -1
	f = NewInstallmentFilter()
	f.Offset = &bad
	assert.True(t, ierr.IsValidation(f.Validate()))
}
