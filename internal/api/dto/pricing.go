package dto

type PriceSuggestionsResponse struct {
	Query       string  `json:"query"`
	Suggestions []int64 `json:"suggestions"`
}
