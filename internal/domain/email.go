package domain

import "context"

// Message is one outgoing e-mail. At least one of HTML and Text must be set.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers rendered messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationCreatedEmailData holds the fields of the "new registration" manager notification.
type RegistrationCreatedEmailData struct {
	Name      string
	Email     string
	Title     string
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

// NotificationGateway delivers registration notifications. Failures wrap ErrDelivery.
type NotificationGateway interface {
	SendRegistrationCreated(ctx context.Context, to string, data *RegistrationCreatedEmailData) error
}
