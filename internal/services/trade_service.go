package services

import (
	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/pkg/errors"
	"github.com/mroshb/buynothing/pkg/logger"
)

// TradeStore is the slice of the trade repository the negotiation flow needs.
type TradeStore interface {
	Create(senderID, receiverID uint, senderItems, receiverItems []uint) (*models.Trade, error)
	GetByID(tradeID uint) (*models.Trade, error)
	ListForUser(userID uint) ([]models.Trade, error)
	Accept(tradeID, callerID uint) (*models.Trade, error)
	Reject(tradeID, callerID uint) (*models.Trade, error)
}

// Notifier pushes out-of-band notifications about trade activity. May be nil.
type Notifier interface {
	TradeCreated(trade *models.Trade)
	TradeResolved(trade *models.Trade)
}

type TradeService struct {
	trades   TradeStore
	users    UserStore
	notifier Notifier
}

func NewTradeService(trades TradeStore, users UserStore, notifier Notifier) *TradeService {
	return &TradeService{
		trades:   trades,
		users:    users,
		notifier: notifier,
	}
}

// Create opens a pending trade between the caller and a counterparty.
func (s *TradeService) Create(senderID, receiverID uint, senderItems, receiverItems []uint) (*models.Trade, error) {
	if senderID == receiverID {
		return nil, errors.New(errors.ErrCodeValidation, "cannot trade with yourself")
	}
	if len(senderItems)+len(receiverItems) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyOffer, "at least one item must be offered")
	}

	if _, err := s.users.GetByID(receiverID); err != nil {
		return nil, err
	}

	trade, err := s.trades.Create(senderID, receiverID, senderItems, receiverItems)
	if err != nil {
		return nil, err
	}

	logger.Info("Trade created",
		"trade_id", trade.ID,
		"sender_id", senderID,
		"receiver_id", receiverID,
		"items", len(trade.Items),
	)

	if s.notifier != nil {
		s.notifier.TradeCreated(trade)
	}

	return trade, nil
}

// Respond resolves a pending trade. Action must be "accepted" or "rejected";
// only the receiver may respond.
func (s *TradeService) Respond(tradeID, callerID uint, action string) (*models.Trade, error) {
	var trade *models.Trade
	var err error

	switch action {
	case models.TradeStatusAccepted:
		trade, err = s.trades.Accept(tradeID, callerID)
	case models.TradeStatusRejected:
		trade, err = s.trades.Reject(tradeID, callerID)
	default:
		return nil, errors.New(errors.ErrCodeValidation, "action must be accepted or rejected")
	}

	if err != nil {
		return nil, err
	}

	logger.Info("Trade resolved", "trade_id", tradeID, "status", trade.Status)

	if s.notifier != nil {
		s.notifier.TradeResolved(trade)
	}

	return trade, nil
}

// Get returns a trade visible to the caller (sender or receiver only).
func (s *TradeService) Get(tradeID, callerID uint) (*models.Trade, error) {
	trade, err := s.trades.GetByID(tradeID)
	if err != nil {
		return nil, err
	}

	if trade.SenderID != callerID && trade.ReceiverID != callerID {
		return nil, errors.New(errors.ErrCodeForbidden, "trade belongs to other users")
	}

	return trade, nil
}

// List returns the caller's trades, both sides.
func (s *TradeService) List(callerID uint) ([]models.Trade, error) {
	return s.trades.ListForUser(callerID)
}
