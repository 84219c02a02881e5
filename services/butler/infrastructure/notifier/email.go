package notifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/pyamsoft/fridge/pkg/config"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// Email mails every posted reminder to a fixed recipient.
type Email struct {
	send func(...*gomail.Message) error
	from string
	to   string
}

// NewEmail returns an Email notifier that dials the configured SMTP server per send.
func NewEmail(cfg *config.Config) *Email {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &Email{send: d.DialAndSend, from: cfg.SMTPFrom, to: cfg.SMTPTo}
}

// NewEmailWithSender returns an Email notifier delivering through s.
func NewEmailWithSender(s gomail.Sender, from, to string) *Email {
	return &Email{
		send: func(m ...*gomail.Message) error { return gomail.Send(s, m...) },
		from: from,
		to:   to,
	}
}

func (e *Email) Post(_ context.Context, n *models.Notification) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", e.to)
	m.SetHeader("Subject", n.Title)
	m.SetHeader("X-Fridge-Kind", n.Kind.String())
	m.SetBody("text/plain", n.Body)
	if err := e.send(m); err != nil {
		return fmt.Errorf("send %s email: %w", n.Kind, err)
	}
	return nil
}

// Cancel is a no-op; sent mail cannot be withdrawn.
func (e *Email) Cancel(context.Context, uuid.UUID, models.Kind) error {
	return nil
}
