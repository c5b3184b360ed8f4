package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventInvitationEmailData holds data for the event invitation email.
type EventInvitationEmailData struct {
	Email       string
	InviterName string
	EventTitle  string
	EventDate   string
	Address     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventInvitation(ctx context.Context, data *EventInvitationEmailData) error
}
