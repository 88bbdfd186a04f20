// Package mail sends transactional email. Delivery is fire-and-forget:
// the caller never waits on or learns about SMTP failures.
package mail

import (
	"fmt"
	"log/slog"

	"weconnect/internal/config"
	"weconnect/internal/middleware"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single message. Satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends notification email asynchronously over SMTP.
type Mailer struct {
	sender Sender
	from   string
	logger *slog.Logger
}

// NewMailer builds a Mailer from the application config.
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		sender: gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword),
		from:   cfg.MailSender,
		logger: middleware.Logger,
	}
}

// NewMailerWithSender builds a Mailer around an explicit Sender. Intended for tests.
func NewMailerWithSender(sender Sender, from string) *Mailer {
	return &Mailer{sender: sender, from: from, logger: middleware.Logger}
}

// SendPasswordReset dispatches the temporary-password notice to the
// user's email address. It returns immediately; delivery errors are
// logged and swallowed, never surfaced to the request that queued them.
func (m *Mailer) SendPasswordReset(username, email, password string) {
	if m == nil || m.sender == nil {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/html", passwordResetBody(username, password))

	go func() {
		if err := m.sender.DialAndSend(msg); err != nil {
			middleware.MailDeliveries.WithLabelValues("failed").Inc()
			m.logger.Error("failed to send password reset email",
				slog.String("email", email),
				slog.String("error", err.Error()),
			)
			return
		}
		middleware.MailDeliveries.WithLabelValues("sent").Inc()
	}()
}

func passwordResetBody(username, password string) string {
	return fmt.Sprintf(
		"<p>Hello %s,</p><p>Your password was reset. Log in with the temporary password below and change it right away:</p><p><strong>%s</strong></p>",
		username, password,
	)
}
