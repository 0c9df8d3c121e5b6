package service

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/api/dto"
	"github.com/rentdesk/rentdesk/internal/domain/pricing"
)

type PriceSuggestionService interface {
	Suggest(ctx context.Context, query string) *dto.PriceSuggestionsResponse
}

type priceSuggestionService struct{}

func NewPriceSuggestionService() PriceSuggestionService {
	return &priceSuggestionService{}
}

func (s *priceSuggestionService) Suggest(_ context.Context, query string) *dto.PriceSuggestionsResponse {
	return &dto.PriceSuggestionsResponse{
		Query:       query,
		Suggestions: pricing.Suggest(query),
	}
}
