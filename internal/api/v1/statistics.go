package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/rentdesk/internal/api/dto"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/service"
)

type StatisticsHandler struct {
	service service.StatisticsService
	log     *logger.Logger
}

func NewStatisticsHandler(service service.StatisticsService, log *logger.Logger) *StatisticsHandler {
	return &StatisticsHandler{service: service, log: log}
}

// @Summary Installment totals by status and type
// @Tags Statistics
// @Produce json
// @Param contract_id query string false "Contract ID"
// @Param from query string false "Due on or after (YYYY-MM-DD)"
// @Param to query string false "Due on or before (YYYY-MM-DD)"
// @Success 200 {object} dto.InstallmentStatisticsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /statistics/installments [get]
func (h *StatisticsHandler) GetInstallmentStatistics(c *gin.Context) {
	var req dto.InstallmentStatisticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid query parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetInstallmentStatistics(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
