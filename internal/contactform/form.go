// Package contactform holds the caller-side state of one contact form: its working
// field values, the in-flight flag, and which banner is showing. The submission
// itself is delegated to a Submitter.
package contactform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"portfolio-contact-api/internal/domain"
)

// DefaultSuccessDisplay is how long the success banner stays up.
const DefaultSuccessDisplay = 5 * time.Second

// ErrInFlight is returned by Submit while an earlier attempt is unresolved.
var ErrInFlight = errors.New("contactform: submission already in flight")

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Submitter is satisfied by domain.ContactUsecase and by HTTP clients of the API.
type Submitter interface {
	Submit(ctx context.Context, req *domain.ContactRequest) (domain.SubmissionResult, error)
}

type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerSuccess
	BannerError
)

type Banner struct {
	Kind BannerKind
	Text string
}

type Form struct {
	submitter      Submitter
	successDisplay time.Duration

	mu      sync.Mutex
	values  domain.ContactRequest
	status  domain.SubmissionStatus
	banner  Banner
	dismiss *time.Timer
	// bumped on every transition so a stale dismiss timer does nothing
	generation uint64
}

type Option func(*Form)

// WithSuccessDisplay overrides how long the success banner is shown.
func WithSuccessDisplay(d time.Duration) Option {
	return func(f *Form) { f.successDisplay = d }
}

func New(submitter Submitter, opts ...Option) *Form {
	f := &Form{
		submitter:      submitter,
		successDisplay: DefaultSuccessDisplay,
		status:         domain.StatusIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Set updates one working field value.
func (f *Form) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldName:
		f.values.Name = value
	case FieldEmail:
		f.values.Email = value
	case FieldSubject:
		f.values.Subject = value
	case FieldMessage:
		f.values.Message = value
	default:
		return fmt.Errorf("contactform: unknown field %q", field)
	}
	return nil
}

// Values returns a copy of the working field values.
func (f *Form) Values() domain.ContactRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) Status() domain.SubmissionStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// InFlight reports whether the submit control should be disabled.
func (f *Form) InFlight() bool {
	return f.Status() == domain.StatusSubmitting
}

func (f *Form) Banner() Banner {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banner
}

// Submit sends a snapshot of the current values. It blocks until the submitter
// resolves and returns its result.
func (f *Form) Submit(ctx context.Context) (domain.SubmissionResult, error) {
	f.mu.Lock()
	if f.status == domain.StatusSubmitting {
		f.mu.Unlock()
		return domain.SubmissionResult{Status: domain.StatusSubmitting}, ErrInFlight
	}
	f.stopDismissLocked()
	f.generation++
	f.status = domain.StatusSubmitting
	f.banner = Banner{}
	req := f.values
	f.mu.Unlock()

	res, err := f.submitter.Submit(ctx, &req)
	if err == nil && !res.IsSuccess() {
		err = errors.New(res.Reason)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++

	if err != nil {
		reason := res.Reason
		if reason == "" {
			reason = domain.MsgTransportFailure
		}
		f.status = domain.StatusFailure
		f.banner = Banner{Kind: BannerError, Text: reason}
		return domain.Failure(res.Kind, reason), err
	}

	f.values = domain.ContactRequest{}
	f.status = domain.StatusSuccess
	f.banner = Banner{Kind: BannerSuccess, Text: domain.MsgSent}
	gen := f.generation
	f.dismiss = time.AfterFunc(f.successDisplay, func() { f.autoDismiss(gen) })
	return res, nil
}

// Reset returns the form to Idle without touching field values.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == domain.StatusSubmitting {
		return
	}
	f.stopDismissLocked()
	f.generation++
	f.status = domain.StatusIdle
	f.banner = Banner{}
}

func (f *Form) autoDismiss(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generation != gen || f.status != domain.StatusSuccess {
		return
	}
	f.status = domain.StatusIdle
	f.banner = Banner{}
	f.dismiss = nil
}

func (f *Form) stopDismissLocked() {
	if f.dismiss != nil {
		f.dismiss.Stop()
		f.dismiss = nil
	}
}
