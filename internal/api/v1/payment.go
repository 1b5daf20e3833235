package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subflow/subflow/internal/api/dto"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/service"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

// RecordPayment confirms a charge reported by the payment collaborator
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RecordPayment(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
