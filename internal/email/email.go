// Package email sends transactional mail over SMTP. When email is not
// configured the sender degrades to a logging no-op so the rest of the
// system behaves identically in development.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"clearing_ops_backend/platform/config"
	"clearing_ops_backend/platform/logger"
)

// Message is one outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

// Sender delivers outbound email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender builds an SMTP sender, or a no-op when email is disabled.
func NewSender(cfg config.EmailConfig, log *logger.Logger) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		log.Info("email disabled, outbound mail will be logged only")
		return &noopSender{log: log}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.GetSMTPPort()),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	}
	if cfg.GetSMTPUsername() != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.GetSMTPUsername()),
			mail.WithPassword(cfg.GetSMTPPassword()),
		)
	}

	client, err := mail.NewClient(cfg.GetSMTPHost(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &smtpSender{
		client:      client,
		fromName:    cfg.GetEmailFromName(),
		fromAddress: cfg.GetEmailFromAddress(),
		log:         log,
	}, nil
}

type smtpSender struct {
	client      *mail.Client
	fromName    string
	fromAddress string
	log         *logger.Logger
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.FromFormat(s.fromName, s.fromAddress); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := m.AddToFormat(msg.ToName, msg.To); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	s.log.Info("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

type noopSender struct {
	log *logger.Logger
}

func (s *noopSender) Send(_ context.Context, msg Message) error {
	s.log.Info("email suppressed", "to", msg.To, "subject", msg.Subject)
	return nil
}
