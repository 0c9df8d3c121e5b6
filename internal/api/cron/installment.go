package cron

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/service"
	"github.com/rentdesk/rentdesk/internal/types"
)

type InstallmentCronHandler struct {
	installmentService service.InstallmentService
	logger             *logger.Logger
}

func NewInstallmentCronHandler(installmentService service.InstallmentService, logger *logger.Logger) *InstallmentCronHandler {
	return &InstallmentCronHandler{
		installmentService: installmentService,
		logger:             logger,
	}
}

// MarkOverdue flags the calling tenant's UNPAID installments that are past
// their due date. An external scheduler may call this instead of the
// in-process sweep.
func (h *InstallmentCronHandler) MarkOverdue(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Infow("starting overdue installment sweep",
		"tenant_id", types.GetTenantID(ctx),
	)

	resp, err := h.installmentService.MarkOverdueReport(ctx)
	if err != nil {
		h.logger.Errorw("overdue installment sweep failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
