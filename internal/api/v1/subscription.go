package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subflow/subflow/internal/api/dto"
	ierr "github.com/subflow/subflow/internal/errors"
	"github.com/subflow/subflow/internal/logger"
	"github.com/subflow/subflow/internal/service"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
	log     *logger.Logger
}

func NewSubscriptionHandler(service service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log,
	}
}

// Subscribe switches the caller to a plan, cancelling any previous
// subscription
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// QuoteUpgrade returns the prorated price of switching to a plan
func (h *SubscriptionHandler) QuoteUpgrade(c *gin.Context) {
	var req dto.UpgradeQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.QuoteUpgrade(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetActiveSubscription returns the caller's current subscription
func (h *SubscriptionHandler) GetActiveSubscription(c *gin.Context) {
	resp, err := h.service.GetActiveSubscription(c.Request.Context(), c.Query("subscriber_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
