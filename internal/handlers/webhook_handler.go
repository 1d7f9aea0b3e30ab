package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/services"
	"github.com/mroshb/buynothing/pkg/errors"
	"github.com/mroshb/buynothing/pkg/logger"
)

type WebhookHandler struct {
	settlement *services.SettlementService
}

func NewWebhookHandler(settlement *services.SettlementService) *WebhookHandler {
	return &WebhookHandler{settlement: settlement}
}

// Payment receives provider notifications. The body carries only the payment
// id (form-encoded); everything else is fetched back from the provider. A 2xx
// acknowledges the notification, a 5xx makes the provider retry.
func (h *WebhookHandler) Payment(c *gin.Context) {
	paymentID := c.PostForm("id")
	if paymentID == "" {
		c.String(http.StatusBadRequest, "missing payment id")
		return
	}

	outcome, err := h.settlement.HandleWebhook(c.Request.Context(), paymentID)

	switch outcome {
	case services.OutcomeSettled, services.OutcomeAlreadySettled, services.OutcomeNotPaid:
		c.String(http.StatusOK, "ok")
	default:
		switch errors.Code(err) {
		case errors.ErrCodeValidation, errors.ErrCodeNotFound:
			// Malformed metadata or an id the provider does not know will
			// not improve on retry
			logger.Warn("Dropping unreconcilable webhook", "payment_id", paymentID, "error", err)
			c.String(http.StatusBadRequest, "unreconcilable payment")
			return
		}
		logger.Error("Webhook settlement failed", "payment_id", paymentID, "error", err)
		c.String(http.StatusInternalServerError, "settlement failed")
	}
}

// Status lets the success page poll the payment state.
func (h *WebhookHandler) Status(c *gin.Context) {
	status, err := h.settlement.PaymentStatus(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
