package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/logger"
	"portfolio-contact-api/pkg/telemetry"
	"portfolio-contact-api/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultSendTimeout = 10 * time.Second

type contactUsecase struct {
	relay    domain.EmailRelay
	validate *validator.Validate
	timeout  time.Duration
}

// NewContactUsecase creates a new contact usecase. sendTimeout bounds the relay
// call; zero selects the default.
func NewContactUsecase(relay domain.EmailRelay, validate *validator.Validate, sendTimeout time.Duration) domain.ContactUsecase {
	if validate == nil {
		validate = validation.New()
	}
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	return &contactUsecase{
		relay:    relay,
		validate: validate,
		timeout:  sendTimeout,
	}
}

// Submit validates the contact request and relays it exactly once.
func (uc *contactUsecase) Submit(ctx context.Context, req *domain.ContactRequest) (domain.SubmissionResult, error) {
	if req == nil {
		req = &domain.ContactRequest{}
	}

	if kind := uc.check(req); kind != domain.KindNone {
		cerr := domain.NewContactError(kind, nil)
		return cerr.Result(), cerr
	}

	if uc.relay == nil || !uc.relay.IsConfigured() {
		cerr := domain.NewContactError(domain.KindConfiguration, errors.New("email relay is not configured"))
		return cerr.Result(), cerr
	}

	submissionID := uuid.NewString()
	ctx, span := telemetry.Tracer().Start(ctx, "contact.submit")
	defer span.End()
	span.SetAttributes(attribute.String("contact.submission_id", submissionID))

	sendCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	if err := uc.relay.Send(sendCtx, composeParams(req)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "relay failed")
		logger.Log.ErrorContext(ctx, "Failed to relay contact message",
			"submission_id", submissionID,
			"error", err,
		)
		cerr := domain.NewContactError(domain.KindTransportFailure, fmt.Errorf("failed to send contact email: %w", err))
		return cerr.Result(), cerr
	}

	logger.Log.InfoContext(ctx, "Contact message relayed", "submission_id", submissionID)
	return domain.Success(), nil
}

// check runs the field checks; missing fields win over a malformed address.
func (uc *contactUsecase) check(req *domain.ContactRequest) domain.ErrorKind {
	err := uc.validate.Struct(req)
	if err == nil {
		return domain.KindNone
	}
	if validation.HasTag(err, validation.TagNotBlank) {
		return domain.KindMissingField
	}
	if validation.HasTag(err, validation.TagContactEmail) {
		return domain.KindInvalidEmail
	}
	// unknown validator failure; treat as incomplete input rather than dispatching
	return domain.KindMissingField
}

func composeParams(req *domain.ContactRequest) domain.TemplateParams {
	subject := req.Subject
	if subject == "" {
		subject = domain.DefaultSubject
	}
	return domain.TemplateParams{
		FromName:  req.Name,
		FromEmail: req.Email,
		Subject:   subject,
		Message:   req.Message,
	}
}
