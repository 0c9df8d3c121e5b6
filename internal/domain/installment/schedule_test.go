package installment

import (
	"testing"
	"time"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dueDates(planned []ScheduledInstallment) []string {
	return lo.Map(planned, func(p ScheduledInstallment, _ int) string {
		return types.FormatDate(p.DueDate)
	})
}

func TestGenerateSchedule(t *testing.T) {
	tests := []struct {
		name        string
		req         ScheduleRequest
		wantDue     []string
		wantPeriods [][2]string
	}{
		{
			name: "quarterly over one year",
			req: ScheduleRequest{
				StartDate:         date(2024, time.January, 1),
				DurationMonths:    12,
				PayCycleMonths:    3,
				InstallmentAmount: decimal.NewFromInt(1000000),
			},
			wantDue: []string{"2024-01-01", "2024-04-01", "2024-07-01", "2024-10-01"},
			wantPeriods: [][2]string{
				{"2024-01-01", "2024-03-31"},
				{"2024-04-01", "2024-06-30"},
				{"2024-07-01", "2024-09-30"},
				{"2024-10-01", "2024-12-31"},
			},
		},
		{
			name: "monthly from the 31st does not drift",
			req: ScheduleRequest{
				StartDate:         date(2024, time.January, 31),
				DurationMonths:    4,
				PayCycleMonths:    1,
				InstallmentAmount: decimal.NewFromInt(5000000),
			},
			wantDue: []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"},
		},
		{
			name: "cycle not dividing the duration truncates the last period",
			req: ScheduleRequest{
				StartDate:         date(2024, time.January, 1),
				DurationMonths:    5,
				PayCycleMonths:    2,
				InstallmentAmount: decimal.NewFromInt(1000000),
			},
			wantDue: []string{"2024-01-01", "2024-03-01", "2024-05-01"},
			wantPeriods: [][2]string{
				{"2024-01-01", "2024-02-29"},
				{"2024-03-01", "2024-04-30"},
				{"2024-05-01", "2024-05-31"},
			},
		},
		{
			name: "cycle longer than the contract yields one installment",
			req: ScheduleRequest{
				StartDate:         date(2024, time.January, 1),
				DurationMonths:    2,
				PayCycleMonths:    6,
				InstallmentAmount: decimal.NewFromInt(1000000),
			},
			wantDue: []string{"2024-01-01"},
		},
		{
			name: "time of day is dropped",
			req: ScheduleRequest{
				StartDate:         time.Date(2024, time.January, 1, 17, 45, 0, 0, time.UTC),
				DurationMonths:    2,
				PayCycleMonths:    1,
				InstallmentAmount: decimal.NewFromInt(1000000),
			},
			wantDue: []string{"2024-01-01", "2024-02-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSchedule(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDue, dueDates(got))

			for i, p := range got {
				assert.True(t, tt.req.InstallmentAmount.Equal(p.Amount))
				assert.Equal(t, p.DueDate, p.PeriodStart)
				assert.True(t, p.DueDate.Equal(types.DateOf(p.DueDate)))
				if tt.wantPeriods != nil {
					assert.Equal(t, tt.wantPeriods[i][0], types.FormatDate(p.PeriodStart))
					assert.Equal(t, tt.wantPeriods[i][1], types.FormatDate(p.PeriodEnd))
				}
			}
		})
	}
}

func TestGenerateScheduleRejectsInvalidTerms(t *testing.T) {
	valid := ScheduleRequest{
		StartDate:         date(2024, time.January, 1),
		DurationMonths:    12,
		PayCycleMonths:    3,
		InstallmentAmount: decimal.NewFromInt(1000000),
	}

	tests := []struct {
		name   string
		mutate func(r *ScheduleRequest)
	}{
		{"zero pay cycle", func(r *ScheduleRequest) { r.PayCycleMonths = 0 }},
		{"negative pay cycle", func(r *ScheduleRequest) { r.PayCycleMonths = -3 }},
		{"zero duration", func(r *ScheduleRequest) { r.DurationMonths = 0 }},
		{"missing start", func(r *ScheduleRequest) { r.StartDate = time.Time{} }},
		{"zero amount", func(r *ScheduleRequest) { r.InstallmentAmount = decimal.Zero }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			got, err := GenerateSchedule(req)
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestExcludeExisting(t *testing.T) {
	planned, err := GenerateSchedule(ScheduleRequest{
		StartDate:         date(2024, time.January, 1),
		DurationMonths:    12,
		PayCycleMonths:    3,
		InstallmentAmount: decimal.NewFromInt(1000000),
	})
	require.NoError(t, err)

	existing := []*Installment{
		inst("a", date(2024, time.January, 1), types.InstallmentStatusPaid),
		inst("b", time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC), types.InstallmentStatusUnpaid),
		func() *Installment {
			d := inst("d", date(2024, time.July, 1), types.InstallmentStatusUnpaid)
			d.InstallmentType = types.InstallmentTypeDeposit
			return d
		}(),
	}

	remaining, skipped := ExcludeExisting(planned, existing, types.InstallmentTypeRent)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, []string{"2024-07-01", "2024-10-01"}, dueDates(remaining))

	// a second pass over the full set creates nothing
	for _, r := range remaining {
		existing = append(existing, inst("n", r.DueDate, types.InstallmentStatusUnpaid))
	}
	remaining, skipped = ExcludeExisting(planned, existing, types.InstallmentTypeRent)
	assert.Empty(t, remaining)
	assert.Equal(t, 4, skipped)
}
