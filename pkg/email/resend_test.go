package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resendlabs/resend-go"
	"github.com/sefazor/eventhub-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (resend.SendEmailResponse, error) {
	if f.err != nil {
		return resend.SendEmailResponse{}, f.err
	}
	f.sent = append(f.sent, params)
	return resend.SendEmailResponse{Id: "email-1"}, nil
}

func newTestService(t *testing.T, sender *fakeSender) *EmailService {
	s := NewEmailService(config.EmailConfig{ResendAPIKey: "key", FromAddress: "noreply@example.com", FromName: "EventHub"}, zaptest.NewLogger(t))
	s.client = sender
	return s
}

func TestSendWelcomeEmail(t *testing.T) {
	sender := &fakeSender{}
	s := newTestService(t, sender)

	require.NoError(t, s.SendWelcomeEmail(context.Background(), "a1@example.com", "Alice"))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "EventHub <noreply@example.com>", msg.From)
	assert.Equal(t, []string{"a1@example.com"}, msg.To)
	assert.Contains(t, msg.Html, "Welcome, Alice!")
	assert.Contains(t, msg.Html, "a1@example.com")
}

func TestSendWelcomeEmailEscapesName(t *testing.T) {
	sender := &fakeSender{}
	s := newTestService(t, sender)

	require.NoError(t, s.SendWelcomeEmail(context.Background(), "a1@example.com", "<script>"))
	assert.NotContains(t, sender.sent[0].Html, "<script>")
}

func TestSendWelcomeEmailError(t *testing.T) {
	s := newTestService(t, &fakeSender{err: errors.New("rate limited")})
	assert.Error(t, s.SendWelcomeEmail(context.Background(), "a1@example.com", "Alice"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SendWelcomeEmail(ctx, "a1@example.com", "Alice"), context.Canceled)
}
