package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/rentdesk/internal/api/dto"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/service"
	"github.com/rentdesk/rentdesk/internal/types"
)

type InstallmentHandler struct {
	service service.InstallmentService
	log     *logger.Logger
}

func NewInstallmentHandler(service service.InstallmentService, log *logger.Logger) *InstallmentHandler {
	return &InstallmentHandler{service: service, log: log}
}

// @Summary Create an installment
// @Tags Installments
// @Accept json
// @Produce json
// @Param installment body dto.CreateInstallmentRequest true "Installment"
// @Success 201 {object} dto.InstallmentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /installments [post]
func (h *InstallmentHandler) CreateInstallment(c *gin.Context) {
	var req dto.CreateInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateInstallment(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an installment
// @Tags Installments
// @Produce json
// @Param id path string true "Installment ID"
// @Success 200 {object} dto.InstallmentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /installments/{id} [get]
func (h *InstallmentHandler) GetInstallment(c *gin.Context) {
	resp, err := h.service.GetInstallment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List installments
// @Description Ordered by due date unless another sort is given
// @Tags Installments
// @Produce json
// @Param filter query types.InstallmentFilter false "Filter"
// @Success 200 {object} dto.ListInstallmentsResponse
// @Router /installments [get]
func (h *InstallmentHandler) GetInstallments(c *gin.Context) {
	filter := types.NewInstallmentFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetInstallments(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an installment
// @Description A status change is checked against the other installments of the contract. An unpaid installment past its due date is stored as overdue and the response carries a warning.
// @Tags Installments
// @Accept json
// @Produce json
// @Param id path string true "Installment ID"
// @Param installment body dto.UpdateInstallmentRequest true "Fields to change"
// @Success 200 {object} dto.UpdateInstallmentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /installments/{id} [put]
func (h *InstallmentHandler) UpdateInstallment(c *gin.Context) {
	var req dto.UpdateInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateInstallment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an installment
// @Tags Installments
// @Param id path string true "Installment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} middleware.ErrorResponse
// @Router /installments/{id} [delete]
func (h *InstallmentHandler) DeleteInstallment(c *gin.Context) {
	if err := h.service.DeleteInstallment(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "installment deleted successfully"})
}
