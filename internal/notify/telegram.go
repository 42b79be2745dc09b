// Package notify delivers scored deals to collectors.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/slabwatch/slabwatch/internal/domain"
)

// TelegramNotifier sends deal alerts to a Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authenticates the bot.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	log.Info().Str("component", "notify").Str("bot", bot.Self.UserName).Msg("telegram notifier ready")
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// NotifyDeal sends one deal alert. The matched-identity description rides
// along so the recipient can audit what the value was matched against.
func (n *TelegramNotifier) NotifyDeal(ctx context.Context, deal domain.DealScoreResult, listing domain.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	quote := deal.Resolution.Quote
	if quote == nil {
		return fmt.Errorf("refusing to notify a deal without a quote")
	}

	text := fmt.Sprintf(
		"Deal score %d (%s)\n%s\nAsk $%.2f vs value $%.2f (%s)\nMatched: %s",
		deal.Score,
		deal.Confidence,
		listing.Title,
		float64(listing.PriceCents)/100,
		float64(quote.ValueCents)/100,
		quote.Source,
		quote.MatchedDescription,
	)
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}
