package services

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/pkg/logger"
)

// TelegramNotifier posts trade activity to an ops channel. Construction
// fails soft: with no bot token or chat id configured, NewTelegramNotifier
// returns nil and callers skip notifications.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, chatID int64) *TelegramNotifier {
	if botToken == "" || chatID == 0 {
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		logger.Warn("Failed to initialize telegram notifier", "error", err)
		return nil
	}

	logger.Info("Telegram notifier enabled", "bot", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

func (n *TelegramNotifier) TradeCreated(trade *models.Trade) {
	n.send(fmt.Sprintf("New trade #%d: user %d offered user %d a swap (%d items)",
		trade.ID, trade.SenderID, trade.ReceiverID, len(trade.Items)))
}

func (n *TelegramNotifier) TradeResolved(trade *models.Trade) {
	n.send(fmt.Sprintf("Trade #%d %s", trade.ID, trade.Status))
}

func (n *TelegramNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		logger.Warn("Failed to send telegram notification", "error", err)
	}
}
