package notify

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramTransport posts the summary into a chat; the recipient is the chat
// ID. The sender address has no meaning here and is ignored.
type TelegramTransport struct {
	s sender
}

func NewTelegramTransport(botToken string) (*TelegramTransport, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramTransport{s: api}, nil
}

func (t *TelegramTransport) Send(_ context.Context, _ string, n Notification) error {
	chatID, err := strconv.ParseInt(n.Recipient, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", n.Recipient, err)
	}
	msg := tgbotapi.NewMessage(chatID, n.Subject+"\n\n"+n.Body)
	if _, err := t.s.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
