package services

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"barbershop-backend/config"
	"barbershop-backend/logger"
)

// WhatsAppNotifier sends the owner notification over Twilio WhatsApp.
type WhatsAppNotifier struct {
	client *twilio.RestClient
	from   string
	to     string
}

func NewWhatsAppNotifier(cfg config.NotifyConfig) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from: cfg.TwilioWhatsAppFrom,
		to:   cfg.TwilioWhatsAppTo,
	}
}

func (n *WhatsAppNotifier) Name() string { return "whatsapp" }

func (n *WhatsAppNotifier) Send(_ context.Context, text string) error {
	if n.to == "" {
		return errors.New("whatsapp destination not configured")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + n.to)
	params.SetFrom("whatsapp:" + n.from)
	params.SetBody(text)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid == nil {
		logger.Warn("whatsapp message sent but no SID returned", "to", n.to)
	}
	return nil
}
