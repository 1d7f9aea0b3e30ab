package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/middleware"
	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/internal/repositories"
	"github.com/mroshb/buynothing/internal/services"
	"github.com/mroshb/buynothing/pkg/errors"
)

type ProfileHandler struct {
	auth          *services.AuthService
	users         *repositories.UserRepository
	purchases     *repositories.PurchaseRepository
	showcaseLimit int
}

func NewProfileHandler(auth *services.AuthService, users *repositories.UserRepository, purchases *repositories.PurchaseRepository, showcaseLimit int) *ProfileHandler {
	return &ProfileHandler{
		auth:          auth,
		users:         users,
		purchases:     purchases,
		showcaseLimit: showcaseLimit,
	}
}

type purchaseResponse struct {
	ID            uint   `json:"id"`
	ProductName   string `json:"product_name"`
	ProductSlug   string `json:"product_slug"`
	Rarity        string `json:"rarity,omitempty"`
	PurchaseIndex int64  `json:"purchase_index"`
	Highlighted   bool   `json:"highlighted"`
	Source        string `json:"source"`
}

func toPurchaseResponse(p *models.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:            p.ID,
		ProductName:   p.Product.Name,
		ProductSlug:   p.Product.Slug,
		Rarity:        p.Product.Rarity,
		PurchaseIndex: p.PurchaseIndex,
		Highlighted:   p.Highlighted,
		Source:        p.Source,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New(errors.ErrCodeValidation, "invalid id")
	}
	return uint(id), nil
}

// Inventory is public; anyone can admire anyone's collection of nothing.
func (h *ProfileHandler) Inventory(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	purchases, err := h.purchases.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]purchaseResponse, 0, len(purchases))
	for i := range purchases {
		items = append(items, toPurchaseResponse(&purchases[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      toUserResponse(user),
		"inventory": items,
	})
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// Update edits the caller's display name and avatar. Empty fields keep their
// current value.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
		return
	}

	user, err := h.auth.UpdateProfile(middleware.MustUserID(c), req.DisplayName, req.AvatarURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// ToggleHighlight pins or unpins one of the caller's own purchases on their
// public showcase.
func (h *ProfileHandler) ToggleHighlight(c *gin.Context) {
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	highlighted, err := h.purchases.ToggleHighlight(purchaseID, middleware.MustUserID(c), h.showcaseLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"highlighted": highlighted})
}
