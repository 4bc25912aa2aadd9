package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Relay
type MockRelay struct {
	mock.Mock
}

func (m *MockRelay) Send(ctx context.Context, params domain.TemplateParams) error {
	return m.Called(ctx, params).Error(0)
}

func (m *MockRelay) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func configuredRelay() *MockRelay {
	relay := new(MockRelay)
	relay.On("IsConfigured").Return(true).Maybe()
	return relay
}

func TestContactMissingFields(t *testing.T) {
	cases := map[string]domain.ContactRequest{
		"empty name":            {Name: "", Email: "a@b.com", Message: "hi"},
		"whitespace name":       {Name: "  \t", Email: "a@b.com", Message: "hi"},
		"empty email":           {Name: "Jane", Email: "", Message: "hi"},
		"empty message":         {Name: "Jane", Email: "a@b.com", Message: ""},
		"whitespace message":    {Name: "Jane", Email: "a@b.com", Message: "\n  "},
		"all empty":             {},
		"missing with bad mail": {Name: "", Email: "not-an-email", Message: "hi"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			relay := configuredRelay()
			uc := usecase.NewContactUsecase(relay, nil, time.Second)

			res, err := uc.Submit(context.Background(), &req)
			require.Error(t, err)
			assert.Equal(t, domain.KindMissingField, domain.KindOf(err))
			assert.Equal(t, domain.Failure(domain.KindMissingField, "Please fill in all required fields."), res)
			relay.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestContactInvalidEmail(t *testing.T) {
	emails := []string{"john", "john@example", "john.example.com", "jo hn@example.com", "john@exam ple.com", "@example.com"}

	for _, email := range emails {
		t.Run(email, func(t *testing.T) {
			relay := configuredRelay()
			uc := usecase.NewContactUsecase(relay, nil, time.Second)

			res, err := uc.Submit(context.Background(), &domain.ContactRequest{Name: "Jane", Email: email, Message: "hi"})
			require.Error(t, err)
			assert.Equal(t, domain.KindInvalidEmail, domain.KindOf(err))
			assert.Equal(t, "Please enter a valid email address.", res.Reason)
			assert.Equal(t, domain.StatusFailure, res.Status)
			relay.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestContactSubject(t *testing.T) {
	t.Run("Should substitute No subject when empty", func(t *testing.T) {
		relay := configuredRelay()
		relay.On("Send", mock.Anything, mock.MatchedBy(func(p domain.TemplateParams) bool {
			return p.Subject == "No subject"
		})).Return(nil).Once()
		uc := usecase.NewContactUsecase(relay, nil, time.Second)

		res, err := uc.Submit(context.Background(), &domain.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "hi"})
		require.NoError(t, err)
		assert.True(t, res.IsSuccess())
		relay.AssertExpectations(t)
	})

	t.Run("Should pass a supplied subject verbatim", func(t *testing.T) {
		relay := configuredRelay()
		relay.On("Send", mock.Anything, mock.MatchedBy(func(p domain.TemplateParams) bool {
			return p.Subject == "  Hiring: Go role  "
		})).Return(nil).Once()
		uc := usecase.NewContactUsecase(relay, nil, time.Second)

		_, err := uc.Submit(context.Background(), &domain.ContactRequest{
			Name: "Jane", Email: "jane@example.com", Subject: "  Hiring: Go role  ", Message: "hi",
		})
		require.NoError(t, err)
		relay.AssertExpectations(t)
	})
}

func TestContactSuccessScenario(t *testing.T) {
	relay := configuredRelay()
	var recorded domain.TemplateParams
	relay.On("Send", mock.Anything, mock.AnythingOfType("domain.TemplateParams")).Return(nil).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(domain.TemplateParams)
	}).Once()
	uc := usecase.NewContactUsecase(relay, nil, time.Second)

	req := &domain.ContactRequest{Name: "John Doe", Email: "john@example.com", Subject: "", Message: "Hello"}
	res, err := uc.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionResult{Status: domain.StatusSuccess}, res)
	assert.Empty(t, res.Reason)
	assert.Equal(t, domain.TemplateParams{
		FromName:  "John Doe",
		FromEmail: "john@example.com",
		Subject:   "No subject",
		Message:   "Hello",
	}, recorded)
	// the request itself is left untouched
	assert.Equal(t, "", req.Subject)
	relay.AssertNumberOfCalls(t, "Send", 1)
}

func TestContactTransportFailure(t *testing.T) {
	causes := []error{
		errors.New("dial tcp: connection refused"),
		errors.New("emailjs: status 400: The Public Key is invalid"),
		context.DeadlineExceeded,
	}

	for _, cause := range causes {
		t.Run(cause.Error(), func(t *testing.T) {
			relay := configuredRelay()
			relay.On("Send", mock.Anything, mock.Anything).Return(cause).Once()
			uc := usecase.NewContactUsecase(relay, nil, time.Second)

			res, err := uc.Submit(context.Background(), &domain.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "hi"})
			require.Error(t, err)
			assert.Equal(t, domain.KindTransportFailure, domain.KindOf(err))
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, "Failed to send message. Please try again later.", res.Reason)
			assert.NotContains(t, res.Reason, cause.Error())
			relay.AssertNumberOfCalls(t, "Send", 1)
		})
	}
}

func TestContactSendTimeout(t *testing.T) {
	relay := configuredRelay()
	relay.On("Send", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		<-ctx.Done()
	}).Once()
	// the mock's return value is fixed, so observe the deadline instead
	uc := usecase.NewContactUsecase(&deadlineRelay{inner: relay}, nil, 20*time.Millisecond)

	start := time.Now()
	res, err := uc.Submit(context.Background(), &domain.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "hi"})
	assert.Less(t, time.Since(start), time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, domain.StatusFailure, res.Status)
	assert.Equal(t, domain.KindTransportFailure, res.Kind)
}

// deadlineRelay reports the context error once the wrapped relay returns.
type deadlineRelay struct {
	inner *MockRelay
}

func (d *deadlineRelay) Send(ctx context.Context, params domain.TemplateParams) error {
	if err := d.inner.Send(ctx, params); err != nil {
		return err
	}
	return ctx.Err()
}

func (d *deadlineRelay) IsConfigured() bool { return true }

func TestContactRelayNotConfigured(t *testing.T) {
	relay := new(MockRelay)
	relay.On("IsConfigured").Return(false)
	uc := usecase.NewContactUsecase(relay, nil, time.Second)

	res, err := uc.Submit(context.Background(), &domain.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, domain.KindConfiguration, res.Kind)
	relay.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestHealthCheck(t *testing.T) {
	t.Run("Should report ok with a configured relay and no redis", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(configuredRelay(), nil)
		assert.Equal(t, map[string]string{"status": "ok", "relay": "configured", "redis": "disabled"}, uc.Check(context.Background()))
	})

	t.Run("Should degrade when relay is missing", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(nil, func(context.Context) error { return errors.New("down") })
		got := uc.Check(context.Background())
		assert.Equal(t, "degraded", got["status"])
		assert.Equal(t, "not_configured", got["relay"])
		assert.Equal(t, "unavailable", got["redis"])
	})
}
