// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Email is one outgoing message.
type Email struct {
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers an Email and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, e Email) (string, error)
}

// ErrNotConfigured is returned by NoopSender.
var ErrNotConfigured = errors.New("mailer: no e-mail provider configured")

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

func NewResendSender(apiKey, from string, log *zap.Logger) *ResendSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResendSender{client: resend.NewClient(apiKey), from: from, log: log}
}

func (s *ResendSender) Send(ctx context.Context, e Email) (string, error) {
	if e.To == "" {
		return "", errors.New("mailer: empty recipient")
	}
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{e.To},
		Subject: e.Subject,
		Html:    e.HTMLBody,
		Text:    e.TextBody,
	}
	if e.ReplyTo != "" {
		params.ReplyTo = e.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.log.Error("resend send failed", zap.String("to", e.To), zap.String("subject", e.Subject), zap.Error(err))
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	s.log.Info("resend sent", zap.String("message_id", sent.Id), zap.String("to", e.To))
	return sent.Id, nil
}

// NoopSender drops mail, logging what would have been sent.
type NoopSender struct {
	Log *zap.Logger
}

func (s NoopSender) Send(_ context.Context, e Email) (string, error) {
	if s.Log != nil {
		s.Log.Info("e-mail not sent; provider not configured",
			zap.String("to", e.To), zap.String("subject", e.Subject))
	}
	return "", ErrNotConfigured
}

// New picks Resend when apiKey is set and NoopSender otherwise.
func New(apiKey, from string, log *zap.Logger) Sender {
	if apiKey == "" {
		return NoopSender{Log: log}
	}
	return NewResendSender(apiKey, from, log)
}
