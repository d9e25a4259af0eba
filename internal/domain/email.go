package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the
// given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// MembershipConfirmationEmailData holds data for the membership confirmation
// email sent after an admin grants a membership.
type MembershipConfirmationEmailData struct {
	Email     string
	FirstName string
	Term      string
}

// ApplicationDecisionEmailData holds data for the application decision email.
type ApplicationDecisionEmailData struct {
	Email     string
	FirstName string
	Position  string
	Accepted  bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendMembershipConfirmation(ctx context.Context, data *MembershipConfirmationEmailData) error
	SendApplicationDecision(ctx context.Context, data *ApplicationDecisionEmailData) error
}
