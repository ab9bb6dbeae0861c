package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventregistration/internal/domain"
)

const registrationCreatedTemplate = "registration_created"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns a NotificationGateway that renders templates and sends them with mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.NotificationGateway {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRegistrationCreated notifies an event manager about a new registration. Replies go to the registrant.
func (s *emailService) SendRegistrationCreated(ctx context.Context, to string, data *domain.RegistrationCreatedEmailData) error {
	if data == nil {
		return fmt.Errorf("%w: registration email data is nil", domain.ErrDelivery)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(registrationCreatedTemplate, data)
	if err != nil {
		return fmt.Errorf("%w: render %s template: %w", domain.ErrDelivery, registrationCreatedTemplate, err)
	}
	msg := domain.Message{
		To:      []string{to},
		ReplyTo: data.Email,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: send registration email: %w", domain.ErrDelivery, err)
	}
	s.logger.InfoContext(ctx, "registration notification sent", "to", to, "title", data.Title)
	return nil
}
