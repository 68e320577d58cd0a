package feedback

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/habistudio/habi-backend/pkg/config"
	apperrors "github.com/habistudio/habi-backend/pkg/errors"
)

func testSMTPConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     465,
		Username: "store@example.com",
		Password: "app-password",
		Timeout:  time.Second,
	}
}

func TestSendBuildsMessage(t *testing.T) {
	mailer := NewMailer(testSMTPConfig(), nil)

	var captured message
	mailer.send = func(_ context.Context, _ config.SMTPConfig, msg message) error {
		captured = msg
		return nil
	}

	if err := mailer.Send(context.Background(), "Maria Santos", "Ang ganda ng bag!"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if captured.from != "store@example.com" || captured.to != "store@example.com" {
		t.Fatalf("addresses = %q -> %q", captured.from, captured.to)
	}
	if captured.subject != "New Feedback Submission" {
		t.Fatalf("subject = %q", captured.subject)
	}
	if !strings.Contains(captured.body, "Reviewer: Maria Santos") {
		t.Fatalf("body missing reviewer: %q", captured.body)
	}
	if !strings.Contains(captured.body, "Ang ganda ng bag!") {
		t.Fatalf("body missing feedback: %q", captured.body)
	}
}

func TestSendAppliesTimeout(t *testing.T) {
	mailer := NewMailer(testSMTPConfig(), nil)

	mailer.send = func(ctx context.Context, _ config.SMTPConfig, _ message) error {
		deadline, ok := ctx.Deadline()
		if !ok {
			t.Fatalf("expected a deadline on the send context")
		}
		if time.Until(deadline) > 2*time.Second {
			t.Fatalf("deadline too far out: %v", deadline)
		}
		return nil
	}

	if err := mailer.Send(context.Background(), "Maria", "ok"); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestSendValidation(t *testing.T) {
	mailer := NewMailer(testSMTPConfig(), nil)
	mailer.send = func(context.Context, config.SMTPConfig, message) error {
		t.Fatalf("transport must not be reached")
		return nil
	}

	for _, tc := range [][2]string{{"", "text"}, {"  ", "text"}, {"Maria", ""}, {"Maria", "  "}} {
		err := mailer.Send(context.Background(), tc[0], tc[1])
		if apperrors.As(err).Code() != apperrors.CodeValidation {
			t.Fatalf("reviewer=%q text=%q: got %v", tc[0], tc[1], err)
		}
	}
}

func TestSendMissingCredentials(t *testing.T) {
	cfg := testSMTPConfig()
	cfg.Username = ""
	mailer := NewMailer(cfg, nil)

	err := mailer.Send(context.Background(), "Maria", "text")
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestSendTransportFailure(t *testing.T) {
	mailer := NewMailer(testSMTPConfig(), nil)
	mailer.send = func(context.Context, config.SMTPConfig, message) error {
		return errors.New("connection refused")
	}

	err := mailer.Send(context.Background(), "Maria", "text")
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestSendMockMode(t *testing.T) {
	cfg := testSMTPConfig()
	cfg.MockMode = true
	cfg.Username = ""
	mailer := NewMailer(cfg, nil)
	mailer.send = func(context.Context, config.SMTPConfig, message) error {
		t.Fatalf("mock mode must not hit the transport")
		return nil
	}

	if err := mailer.Send(context.Background(), "Maria", "text"); err != nil {
		t.Fatalf("send: %v", err)
	}
}
