package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/rentdesk/internal/service"
)

type PriceSuggestionHandler struct {
	service service.PriceSuggestionService
}

func NewPriceSuggestionHandler(service service.PriceSuggestionService) *PriceSuggestionHandler {
	return &PriceSuggestionHandler{service: service}
}

// @Summary Suggest full prices from a few typed digits
// @Tags Prices
// @Produce json
// @Param q query string false "Typed input"
// @Success 200 {object} dto.PriceSuggestionsResponse
// @Router /prices/suggestions [get]
func (h *PriceSuggestionHandler) Suggest(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Suggest(c.Request.Context(), c.Query("q")))
}
