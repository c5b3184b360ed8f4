package services

import (
	"context"
	"fmt"
	"log/slog"

	"dancemeet/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendEventInvitation sends an invitation email using the
// "event_invitation" template and the given data.
func (s *emailService) SendEventInvitation(ctx context.Context, data *domain.EventInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("event invitation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render event_invitation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	s.logger.Info("invitation email sent", "to", data.Email, "event", data.EventTitle)
	return nil
}
