package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"github.com/sefazor/eventhub-backend/internal/config"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type emailSender interface {
	Send(params *resend.SendEmailRequest) (resend.SendEmailResponse, error)
}

type EmailService struct {
	client   emailSender
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(cfg config.EmailConfig, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(cfg.ResendAPIKey).Emails,
		from:     cfg.FromAddress,
		fromName: cfg.FromName,
		logger:   logger.Named("email"),
	}
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, to, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	html, err := s.render("welcome.html", map[string]interface{}{
		"Name":     name,
		"Account":  to,
		"FromName": s.fromName,
		"Year":     time.Now().Year(),
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Welcome to " + s.fromName + "!",
		Html:    html,
	}

	resp, err := s.client.Send(params)
	if err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}

	s.logger.Info("welcome email sent", zap.String("email_id", resp.Id))
	return nil
}

func (s *EmailService) render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return body.String(), nil
}
