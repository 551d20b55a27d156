// Package notify delivers journey reports over email.
package notify

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// Delivery outcomes reported back to callers. Delivery is best effort,
// so these are plain status strings rather than errors.
const (
	StatusSent   = "Email Sent"
	StatusFailed = "Email Failed"
)

const (
	defaultHost = "smtp.gmail.com"
	defaultPort = 587

	subject = "Journey Details"
)

// MailerConfig holds SMTP settings for the Gmail relay.
type MailerConfig struct {
	// Host defaults to smtp.gmail.com.
	Host string
	// Port defaults to 587 (STARTTLS).
	Port int
	// From is both the sender address and the SMTP username.
	From string
	// To is the recipient address.
	To string
	// Password is the Gmail app password.
	Password string
	Logger   zerolog.Logger
}

// Mailer sends journey reports through an SMTP relay with mandatory
// STARTTLS. Failures are absorbed and reported as a status string so a
// broken mailbox never fails the journey request itself.
type Mailer struct {
	cfg MailerConfig
}

func NewMailer(cfg MailerConfig) *Mailer {
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	return &Mailer{cfg: cfg}
}

// Send emails the report lines as a plain-text message, one line per
// row. It returns StatusSent or StatusFailed and never an error.
func (m *Mailer) Send(ctx context.Context, lines []string) string {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		m.cfg.Logger.Error().Err(err).Msg("invalid sender address")
		return StatusFailed
	}
	if err := msg.To(m.cfg.To); err != nil {
		m.cfg.Logger.Error().Err(err).Msg("invalid recipient address")
		return StatusFailed
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, strings.Join(lines, "\n"))

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.From),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		m.cfg.Logger.Error().Err(err).Msg("smtp client setup failed")
		return StatusFailed
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.cfg.Logger.Error().Err(err).
			Str("host", m.cfg.Host).
			Str("to", m.cfg.To).
			Msg("email delivery failed")
		return StatusFailed
	}

	m.cfg.Logger.Info().Str("to", m.cfg.To).Msg("journey report emailed")
	return StatusSent
}
