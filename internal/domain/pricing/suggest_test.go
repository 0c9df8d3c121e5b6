package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"two digits", "50", []int64{50_000, 500_000, 5_000_000}},
		{"single digit", "5", []int64{50_000, 500_000, 5_000_000}},
		{"smallest in range", "10", []int64{10_000, 100_000, 1_000_000}},
		{"below range at every multiplier but the largest", "1", []int64{10_000, 100_000, 1_000_000}},
		{"four digits", "9999", []int64{9_999_000}},
		{"upper bound excluded above", "10000", []int64{}},
		{"three digits", "150", []int64{150_000, 1_500_000}},
		{"separators ignored", "1.5", []int64{15_000, 150_000, 1_500_000}},
		{"leading zeros ignored", "007", []int64{70_000, 700_000, 7_000_000}},
		{"currency text ignored", "50k VND", []int64{50_000, 500_000, 5_000_000}},
		{"no digits", "abc", []int64{}},
		{"empty", "", []int64{}},
		{"zero", "0", []int64{}},
		{"huge input", "99999999999999999999999", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestProperties(t *testing.T) {
	for _, input := range []string{"1", "2", "9", "12", "50", "99", "100", "999", "1234", "9999"} {
		got := Suggest(input)
		assert.LessOrEqual(t, len(got), MaxSuggestionCount, input)
		assert.IsIncreasing(t, got, input)
		for _, v := range got {
			assert.GreaterOrEqual(t, v, MinSuggestion, input)
			assert.LessOrEqual(t, v, MaxSuggestion, input)
		}
	}
}
