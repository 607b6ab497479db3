package gateway

import (
	"context"
	"fmt"

	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"

	tele "gopkg.in/telebot.v4"
)

type telegramNotifier struct {
	bot    *tele.Bot
	logger logger.Logger
}

// NewTelegramNotifier creates a notifier that delivers over the Telegram Bot API
func NewTelegramNotifier(bot *tele.Bot, log logger.Logger) Notifier {
	return &telegramNotifier{
		bot:    bot,
		logger: log.With(logger.String("component", "telegram_notifier")),
	}
}

func (n *telegramNotifier) SendNotification(ctx context.Context, payload *domain.NotificationPayload) error {
	text := payload.Body
	if payload.Title != "" {
		text = fmt.Sprintf("*%s*\n\n%s", payload.Title, payload.Body)
	}

	recipient := &tele.User{ID: payload.RecipientID}
	if _, err := n.bot.Send(recipient, text, tele.ModeMarkdown); err != nil {
		n.logger.Error("failed to send telegram message",
			logger.Int64("recipient_id", payload.RecipientID),
			logger.Error(err))
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	n.logger.Info("telegram notification sent",
		logger.Int64("recipient_id", payload.RecipientID),
		logger.String("message_type", payload.MessageType))
	return nil
}
