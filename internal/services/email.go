package services

import (
	"context"
	"fmt"
	"log"

	"clubportal/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and
// template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendMembershipConfirmation sends the membership confirmation email using
// the "membership_confirmation" template.
func (s *emailService) SendMembershipConfirmation(ctx context.Context, data *domain.MembershipConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("membership confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("membership_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render membership_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send membership confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Membership confirmation sent to %s", data.Email)
	return nil
}

// SendApplicationDecision sends the accept/reject outcome email using the
// "application_decision" template.
func (s *emailService) SendApplicationDecision(ctx context.Context, data *domain.ApplicationDecisionEmailData) error {
	if data == nil {
		return fmt.Errorf("application decision data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("application_decision", data)
	if err != nil {
		return fmt.Errorf("failed to render application_decision template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send application decision email: %w", err)
	}
	log.Printf("[EMAIL] Application decision sent to %s", data.Email)
	return nil
}
