package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/middleware"
	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/internal/services"
	"github.com/mroshb/buynothing/pkg/errors"
)

type TradeHandler struct {
	trades *services.TradeService
}

func NewTradeHandler(trades *services.TradeService) *TradeHandler {
	return &TradeHandler{trades: trades}
}

type createTradeRequest struct {
	ReceiverID    uint   `json:"receiver_id"`
	SenderItems   []uint `json:"sender_items"`
	ReceiverItems []uint `json:"receiver_items"`
}

type respondTradeRequest struct {
	Action string `json:"action"`
}

type tradeItemResponse struct {
	PurchaseID  uint   `json:"purchase_id"`
	ProductName string `json:"product_name"`
	OfferedByID uint   `json:"offered_by_id"`
}

type tradeResponse struct {
	ID         uint                `json:"id"`
	SenderID   uint                `json:"sender_id"`
	ReceiverID uint                `json:"receiver_id"`
	Status     string              `json:"status"`
	Items      []tradeItemResponse `json:"items"`
}

func toTradeResponse(t *models.Trade) tradeResponse {
	out := tradeResponse{
		ID:         t.ID,
		SenderID:   t.SenderID,
		ReceiverID: t.ReceiverID,
		Status:     t.Status,
		Items:      make([]tradeItemResponse, 0, len(t.Items)),
	}
	for _, item := range t.Items {
		out.Items = append(out.Items, tradeItemResponse{
			PurchaseID:  item.PurchaseID,
			ProductName: item.Purchase.Product.Name,
			OfferedByID: item.OfferedByID,
		})
	}
	return out
}

func (h *TradeHandler) Create(c *gin.Context) {
	var req createTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
		return
	}

	trade, err := h.trades.Create(middleware.MustUserID(c), req.ReceiverID, req.SenderItems, req.ReceiverItems)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"trade": toTradeResponse(trade)})
}

func (h *TradeHandler) List(c *gin.Context) {
	trades, err := h.trades.List(middleware.MustUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]tradeResponse, 0, len(trades))
	for i := range trades {
		out = append(out, toTradeResponse(&trades[i]))
	}

	c.JSON(http.StatusOK, gin.H{"trades": out})
}

func (h *TradeHandler) Get(c *gin.Context) {
	tradeID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	trade, err := h.trades.Get(tradeID, middleware.MustUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trade": toTradeResponse(trade)})
}

func (h *TradeHandler) Respond(c *gin.Context) {
	tradeID, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req respondTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.New(errors.ErrCodeValidation, "invalid request body"))
		return
	}

	trade, err := h.trades.Respond(tradeID, middleware.MustUserID(c), req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trade": toTradeResponse(trade)})
}
