package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/middleware"
	"github.com/mroshb/buynothing/internal/services"
	"github.com/mroshb/buynothing/pkg/errors"
)

type CheckoutHandler struct {
	checkout *services.CheckoutService
}

func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type productCheckoutRequest struct {
	Slug   string `json:"slug"`
	Method string `json:"method"`
}

type lootboxCheckoutRequest struct {
	Rarity   string `json:"rarity"`
	Quantity int    `json:"quantity"`
	Method   string `json:"method"`
}

// Product starts a hosted checkout for one catalog item and returns the
// redirect URL. The buyer's identity comes from the session token, never from
// the request body.
func (h *CheckoutHandler) Product(c *gin.Context) {
	var req productCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
		return
	}

	url, err := h.checkout.CheckoutProduct(c.Request.Context(), middleware.MustUserID(c), req.Slug, req.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": url})
}

// Lootboxes starts a hosted checkout for a bundle of boxes of one rarity.
func (h *CheckoutHandler) Lootboxes(c *gin.Context) {
	var req lootboxCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
		return
	}

	url, err := h.checkout.CheckoutLootboxes(c.Request.Context(), middleware.MustUserID(c), req.Rarity, req.Quantity, req.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": url})
}
