package push

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"habit-planner/internal/model"
)

// Telegram delivers alert payloads to linked Telegram chats.
type Telegram struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &Telegram{api: api}, nil
}

func (t *Telegram) Send(ctx context.Context, sub model.Subscription, payload Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(sub.ChatID, fmt.Sprintf("%s\n%s\n%s", payload.Title, payload.Body, payload.URL))
	if _, err := t.api.Send(msg); err != nil {
		if isChatGone(err) {
			return ErrSubscriptionExpired
		}
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// isChatGone matches the Telegram equivalents of a 404/410 push
// endpoint: the user blocked the bot or the chat no longer exists.
func isChatGone(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 403 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "blocked by the user") || strings.Contains(msg, "chat not found")
}
