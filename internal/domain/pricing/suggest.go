package pricing

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

const (
	MinSuggestion      int64 = 10_000
	MaxSuggestion      int64 = 9_999_999
	MaxSuggestionCount       = 3
)

// multipliers expand shorthand like "50" into VND amounts
var multipliers = []int64{1_000, 10_000, 100_000, 1_000_000}

// Suggest expands a typed number into up to three plausible VND prices,
// ascending and within [MinSuggestion, MaxSuggestion]. Non-digit characters
// are ignored, so "1.5" reads as 15.
func Suggest(raw string) []int64 {
	digits := strings.TrimLeft(strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, raw), "0")

	// anything longer already exceeds the range at the smallest multiplier
	if digits == "" || len(digits) > len(strconv.FormatInt(MaxSuggestion/multipliers[0], 10)) {
		return []int64{}
	}

	base, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return []int64{}
	}

	candidates := lo.FilterMap(multipliers, func(m int64, _ int) (int64, bool) {
		v := base * m
		return v, v >= MinSuggestion && v <= MaxSuggestion
	})
	candidates = lo.Uniq(candidates)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	if len(candidates) > MaxSuggestionCount {
		candidates = candidates[:MaxSuggestionCount]
	}
	return candidates
}
