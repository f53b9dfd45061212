// internal/service/mailer.go
package service

import (
	"context"
	"log/slog"
)

// logMailer is the stand-in mail delivery used until a real provider is
// wired. It logs the event without the token value.
type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a Mailer that only logs deliveries.
func NewLogMailer(logger *slog.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.logger.InfoContext(ctx, "password reset mail queued", "email", email)
	return nil
}

func (m *logMailer) SendActivationCode(ctx context.Context, email, code string) error {
	m.logger.InfoContext(ctx, "activation mail queued", "email", email)
	return nil
}
