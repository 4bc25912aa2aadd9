package domain

import (
	"errors"
	"fmt"
)

type SubmissionStatus string

const (
	StatusIdle       SubmissionStatus = "idle"
	StatusSubmitting SubmissionStatus = "submitting"
	StatusSuccess    SubmissionStatus = "success"
	StatusFailure    SubmissionStatus = "failure"
)

type ErrorKind string

const (
	KindNone             ErrorKind = ""
	KindMissingField     ErrorKind = "missing_field"
	KindInvalidEmail     ErrorKind = "invalid_email"
	KindTransportFailure ErrorKind = "transport_failure"
	KindConfiguration    ErrorKind = "configuration"
)

// SubmissionResult is the outcome of one submission attempt.
type SubmissionResult struct {
	Status SubmissionStatus `json:"status"`
	Kind   ErrorKind        `json:"kind,omitempty"`
	Reason string           `json:"reason,omitempty"`
}

func Success() SubmissionResult {
	return SubmissionResult{Status: StatusSuccess}
}

func Failure(kind ErrorKind, reason string) SubmissionResult {
	return SubmissionResult{Status: StatusFailure, Kind: kind, Reason: reason}
}

func (r SubmissionResult) IsSuccess() bool { return r.Status == StatusSuccess }

// ContactError is returned alongside a failed SubmissionResult. Message is safe to
// show to the sender; Err is for server-side logs only.
type ContactError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ContactError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *ContactError) Unwrap() error { return e.Err }

// Result converts the error into the result shown to the caller.
func (e *ContactError) Result() SubmissionResult {
	return Failure(e.Kind, e.Message)
}

func NewContactError(kind ErrorKind, err error) *ContactError {
	return &ContactError{Kind: kind, Message: MessageFor(kind), Err: err}
}

// MessageFor returns the user-facing message for kind.
func MessageFor(kind ErrorKind) string {
	switch kind {
	case KindMissingField:
		return MsgMissingField
	case KindInvalidEmail:
		return MsgInvalidEmail
	case KindConfiguration:
		return MsgNotConfigured
	case KindNone:
		return ""
	default:
		return MsgTransportFailure
	}
}

// KindOf reports the ErrorKind carried by err, or KindNone.
func KindOf(err error) ErrorKind {
	var ce *ContactError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindNone
}
