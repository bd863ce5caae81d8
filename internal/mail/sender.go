// Package mail sends the rendered digest over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"findigest/internal/logger"
)

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers an HTML message to a set of recipients. An interface so
// tests can swap the transport.
type Sender interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

// SMTPSender implements Sender using net/smtp with plain authentication.
type SMTPSender struct {
	cfg  Config
	auth smtp.Auth
	addr string
	log  zerolog.Logger
}

// NewSMTPSender creates an SMTP sender. Authentication is skipped when no
// username is configured.
func NewSMTPSender(cfg Config) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPSender{
		cfg:  cfg,
		auth: auth,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		log:  logger.WithComponent("mail"),
	}
}

// Send delivers one HTML message. No retries: a send failure is reported once
// and surfaces as a fatal error to the caller.
func (s *SMTPSender) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	const op = "Send"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := BuildMessage(s.cfg.From, to, subject, htmlBody)
	if err := smtp.SendMail(s.addr, s.auth, s.cfg.From, to, msg); err != nil {
		s.log.Error().Err(err).Strs("to", to).Msg("Failed to send digest email")
		return fmt.Errorf("%s: smtp error: %w", op, err)
	}

	s.log.Info().Strs("to", to).Str("subject", subject).Msg("Digest email sent")
	return nil
}

// BuildMessage assembles a complete HTML MIME message including headers.
func BuildMessage(from string, to []string, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
