package services

import (
	"context"
	"errors"

	gomail "gopkg.in/gomail.v2"

	"barbershop-backend/config"
)

// EmailNotifier delivers the owner notification over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewEmailNotifier(cfg config.NotifyConfig) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
		to:     cfg.EmailTo,
	}
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) Send(_ context.Context, text string) error {
	if n.to == "" {
		return errors.New("notification email destination not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", "Барбершоп: новое уведомление")
	m.SetBody("text/plain", text)

	return n.dialer.DialAndSend(m)
}
