package dto

import (
	"time"

	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/types"
)

// parseDateField parses a wire date, naming field in the error hint
func parseDateField(field, value string) (time.Time, error) {
	t, err := types.ParseDate(value)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("%s must be a date in YYYY-MM-DD format", field).
			WithReportableDetails(map[string]any{field: value}).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

// parseOptionalDateField treats nil and empty strings as absent
func parseOptionalDateField(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDateField(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validatePeriod(start, end *time.Time) error {
	if start != nil && end != nil && types.CompareDates(*start, *end) > 0 {
		return ierr.NewError("period start after period end").
			WithHint("dateStar cannot be after dateEnd").
			WithReportableDetails(map[string]any{
				"dateStar": types.FormatDate(*start),
				"dateEnd":  types.FormatDate(*end),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
