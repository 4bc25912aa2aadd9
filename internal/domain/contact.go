package domain

import "context"

// User-facing messages. Provider details never appear in these.
const (
	MsgMissingField     = "Please fill in all required fields."
	MsgInvalidEmail     = "Please enter a valid email address."
	MsgTransportFailure = "Failed to send message. Please try again later."
	MsgNotConfigured    = "Contact service temporarily unavailable"
	MsgSent             = "Your message has been sent successfully!"

	DefaultSubject = "No subject"
)

// ContactRequest represents a contact form submission. It is built fresh for every
// attempt and is not modified by the usecase.
type ContactRequest struct {
	Name    string `json:"name" validate:"notblank" example:"John Doe"`
	Email   string `json:"email" validate:"notblank,contact_email" example:"john@example.com"`
	Subject string `json:"subject" example:"Collaboration"`
	Message string `json:"message" validate:"notblank" example:"Hello"`
}

// TemplateParams is the payload handed to the email relay template.
type TemplateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// EmailRelay delivers a contact message through a hosted email provider.
type EmailRelay interface {
	Send(ctx context.Context, params TemplateParams) error
	IsConfigured() bool
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates the request and relays it. The returned error, when not nil,
	// is a *ContactError matching the result's Kind.
	Submit(ctx context.Context, req *ContactRequest) (SubmissionResult, error)
}
