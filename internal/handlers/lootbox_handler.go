package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/middleware"
	"github.com/mroshb/buynothing/internal/services"
	"github.com/mroshb/buynothing/pkg/errors"
)

type LootboxHandler struct {
	lootboxes *services.LootboxService
}

func NewLootboxHandler(lootboxes *services.LootboxService) *LootboxHandler {
	return &LootboxHandler{lootboxes: lootboxes}
}

type openBoxRequest struct {
	Rarity string `json:"rarity"`
}

// Open consumes one of the caller's unopened boxes and returns the drop.
func (h *LootboxHandler) Open(c *gin.Context) {
	var req openBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
		return
	}

	drop, err := h.lootboxes.Open(middleware.MustUserID(c), req.Rarity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"drop": drop})
}

// Counts returns the caller's unopened boxes per rarity tier.
func (h *LootboxHandler) Counts(c *gin.Context) {
	counts, err := h.lootboxes.Counts(middleware.MustUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lootboxes": counts})
}
