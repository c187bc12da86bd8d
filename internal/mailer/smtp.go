package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/wneessen/go-mail"

	"github.com/prplkane/umazona-website/config"
	"github.com/prplkane/umazona-website/internal/events"
)

// Mailer sends contact-notification email over SMTP.
type Mailer struct {
	opts   config.SMTPOptions
	logger *slog.Logger
}

func New(opts config.SMTPOptions, logger *slog.Logger) (*Mailer, error) {
	if !opts.Enabled() {
		return nil, fmt.Errorf("SMTP host, port and from address must be configured")
	}
	return &Mailer{opts: opts, logger: logger}, nil
}

func (m *Mailer) Send(ctx context.Context, to, subject, text string) error {
	msg := mail.NewMsg()

	if err := msg.From(m.opts.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)

	client, err := mail.NewClient(m.opts.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// clientOptions builds the dial options. Relays without credentials
// reject AUTH, so the auth options only appear when a username is
// configured.
func (m *Mailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.opts.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.opts.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(m.opts.User),
			mail.WithPassword(m.opts.Pass),
		)
	}
	return opts
}

// ContactNotifier builds the bus handler that mails each new contact
// submission to the configured recipient.
func ContactNotifier(m *Mailer, to string) events.HandlerFunc {
	return func(ctx context.Context, msg *message.Message) error {
		var payload events.ContactCreatedPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode contact payload: %w", err)
		}

		subject := fmt.Sprintf("New reservation request from %s", payload.Name)
		body := fmt.Sprintf(
			"Name: %s\nEmail: %s\nPhone: %s\n\n%s\n",
			payload.Name, payload.Email, payload.Phone, payload.Message)

		return m.Send(ctx, to, subject, body)
	}
}
