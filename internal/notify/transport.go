package notify

import (
	"context"
	"fmt"

	"cleaning-intake/internal/config"
)

// NewTransport builds the transport selected by cfg.NotifyTransport.
func NewTransport(ctx context.Context, cfg *config.Config) (Transport, error) {
	switch cfg.NotifyTransport {
	case config.TransportSMTP:
		return NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	case config.TransportGmail:
		return NewGmailTransport(ctx, cfg.GmailCredentialsPath, cfg.GmailTokenPath)
	case config.TransportTelegram:
		return NewTelegramTransport(cfg.TelegramBotToken)
	default:
		return nil, fmt.Errorf("unknown notify transport: %s", cfg.NotifyTransport)
	}
}
