package feedback

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/habistudio/habi-backend/pkg/config"
	apperrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/logger"
)

const subject = "New Feedback Submission"

type message struct {
	from    string
	to      string
	subject string
	body    string
}

// Mailer relays customer feedback to the configured inbox over SMTP.
type Mailer struct {
	cfg  config.SMTPConfig
	log  *logger.Logger
	send func(ctx context.Context, cfg config.SMTPConfig, msg message) error
}

func NewMailer(cfg config.SMTPConfig, log *logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log, send: smtpSend}
}

// Send submits one feedback message. The submission is bounded by the
// configured timeout and fails with a dependency error; there is no retry.
func (m *Mailer) Send(ctx context.Context, reviewer, text string) error {
	if strings.TrimSpace(reviewer) == "" {
		return apperrors.New(apperrors.CodeValidation, "reviewer name is required")
	}
	if strings.TrimSpace(text) == "" {
		return apperrors.New(apperrors.CodeValidation, "feedback text is required")
	}

	msg := message{
		from:    m.cfg.Username,
		to:      m.cfg.FeedbackRecipient(),
		subject: subject,
		body:    buildBody(reviewer, text, time.Now()),
	}

	if m.cfg.MockMode {
		if m.log != nil {
			m.log.Info(m.log.WithField(ctx, "to", msg.to), "mock mode, feedback email not sent")
		}
		return nil
	}
	if m.cfg.Username == "" || m.cfg.Password == "" {
		return apperrors.New(apperrors.CodeDependency, "email credentials not configured")
	}

	timeout := m.cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := m.send(sendCtx, m.cfg, msg); err != nil {
		if m.log != nil {
			m.log.Error(ctx, "feedback email failed", err)
		}
		return apperrors.Wrap(apperrors.CodeDependency, err, "sending feedback email")
	}

	if m.log != nil {
		m.log.Info(m.log.WithField(ctx, "to", msg.to), "feedback email sent")
	}
	return nil
}

func buildBody(reviewer, text string, now time.Time) string {
	return fmt.Sprintf("New feedback received at %s:\n\nReviewer: %s\n\n%s\n",
		now.Format("2006-01-02 15:04:05"), reviewer, text)
}

// smtpSend submits the message over implicit TLS, the transport the
// configured default (smtp.gmail.com:465) expects.
func smtpSend(ctx context.Context, cfg config.SMTPConfig, msg message) error {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	dialer := &tls.Dialer{NetDialer: &net.Dialer{}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return multierr.Append(fmt.Errorf("smtp handshake: %w", err), conn.Close())
	}

	submit := func() error {
		auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
		if err := client.Mail(msg.from); err != nil {
			return fmt.Errorf("smtp mail: %w", err)
		}
		if err := client.Rcpt(msg.to); err != nil {
			return fmt.Errorf("smtp rcpt: %w", err)
		}
		writer, err := client.Data()
		if err != nil {
			return fmt.Errorf("smtp data: %w", err)
		}
		payload := strings.Join([]string{
			"From: " + msg.from,
			"To: " + msg.to,
			"Subject: " + msg.subject,
			"MIME-Version: 1.0",
			`Content-Type: text/plain; charset="utf-8"`,
			"",
			msg.body,
		}, "\r\n")
		if _, err := writer.Write([]byte(payload)); err != nil {
			return fmt.Errorf("smtp write: %w", err)
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("smtp close: %w", err)
		}
		return nil
	}

	if err := submit(); err != nil {
		return multierr.Append(err, client.Close())
	}
	return client.Quit()
}
