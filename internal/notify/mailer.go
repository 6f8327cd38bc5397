// Package notify sends order mail to the shop admin and the customer.
// Sending is best effort: a failed mail never blocks or reverses an
// accepted receipt.
package notify

import (
	"context"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/introlaser/shop-bot/internal/common"
)

// Message is one outgoing mail. AttachmentPath is optional.
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type smtpMailer struct {
	cfg    common.SMTPConfig
	logger *slog.Logger
}

// NewSMTPMailer builds a mailer over implicit-TLS SMTP. Missing
// credentials are an error at construction time, not at send time.
func NewSMTPMailer(cfg common.SMTPConfig, logger *slog.Logger) (Mailer, error) {
	if cfg.Sender == "" || cfg.Password == "" {
		return nil, common.NewAppError("SMTP_CONFIG", "SMTP_SENDER and SMTP_PASSWORD are required", common.ErrInvalidInput)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &smtpMailer{cfg: cfg, logger: logger}, nil
}

type nopMailer struct {
	logger *slog.Logger
}

// NopMailer drops every message. Used when SMTP credentials are absent
// so the rest of the shop keeps working.
func NopMailer(logger *slog.Logger) Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &nopMailer{logger: logger}
}

func (m *nopMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("mail.send.skipped", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	message := mail.NewMsg()
	if err := message.From(m.cfg.Sender); err != nil {
		return common.WrapError(err, "set mail sender")
	}
	if err := message.To(msg.To); err != nil {
		return common.WrapError(err, "set mail recipient")
	}
	message.Subject(msg.Subject)
	message.SetBodyString(mail.TypeTextPlain, msg.Body)
	if msg.AttachmentPath != "" {
		message.AttachFile(msg.AttachmentPath)
	}

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Sender),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return common.WrapError(err, "create smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		m.logger.Error("mail.send.failed", "to", msg.To, "subject", msg.Subject, "error", err)
		return common.WrapError(err, "send mail")
	}
	m.logger.Info("mail.send.ok", "to", msg.To, "subject", msg.Subject)
	return nil
}
