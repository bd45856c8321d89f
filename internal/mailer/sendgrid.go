// Package mailer dispatches the order notification through the
// transactional-email provider. The provider receives a flat key-value
// payload rendered into a dynamic template; nothing is stored locally.
package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/udvasito/storefront/internal/config"
)

// Notifier delivers a flat template payload. Implementations must treat the
// payload as opaque key-value data.
type Notifier interface {
	Send(ctx context.Context, params map[string]string) error
}

// SendGridNotifier sends the payload as dynamic template data.
type SendGridNotifier struct {
	apiKey     string
	templateID string
	from       string
	to         string
}

var _ Notifier = (*SendGridNotifier)(nil)

// NewSendGridNotifier builds a notifier from the email configuration.
func NewSendGridNotifier(cfg config.EmailConfig) (*SendGridNotifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("email api key is empty")
	}
	if cfg.TemplateID == "" {
		return nil, fmt.Errorf("email template id is empty")
	}
	if cfg.From == "" || cfg.To == "" {
		return nil, fmt.Errorf("email from/to addresses are required")
	}
	return &SendGridNotifier{
		apiKey:     cfg.APIKey,
		templateID: cfg.TemplateID,
		from:       cfg.From,
		to:         cfg.To,
	}, nil
}

// Send dispatches one templated message carrying params.
func (n *SendGridNotifier) Send(ctx context.Context, params map[string]string) error {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail("Udvasito Pathshala", n.from))
	message.SetTemplateID(n.templateID)

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", n.to))
	for key, value := range params {
		personalization.SetDynamicTemplateData(key, value)
	}
	message.AddPersonalizations(personalization)

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send order notification: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("order notification rejected: status=%d body=%s",
			response.StatusCode, response.Body)
	}
	return nil
}
