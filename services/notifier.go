package services

import (
	"context"
	"fmt"

	"barbershop-backend/config"
	"barbershop-backend/logger"
)

// Notifier delivers a text message to the shop owner's channel.
// Best-effort: callers must never fail an intake operation over a Send
// error.
type Notifier interface {
	Name() string
	Send(ctx context.Context, text string) error
}

// NewNotifier picks the gateway implementation from configuration.
func NewNotifier(cfg config.NotifyConfig) (Notifier, error) {
	switch cfg.Channel {
	case "telegram":
		return NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID), nil
	case "whatsapp":
		return NewWhatsAppNotifier(cfg), nil
	case "email":
		return NewEmailNotifier(cfg), nil
	case "off":
		return noopNotifier{}, nil
	default:
		return nil, fmt.Errorf("unknown notify channel %q", cfg.Channel)
	}
}

type noopNotifier struct{}

func (noopNotifier) Name() string { return "off" }

func (noopNotifier) Send(_ context.Context, text string) error {
	logger.Debug("notification suppressed", "length", len(text))
	return nil
}
