package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"portfolio-contact-api/config"
	"portfolio-contact-api/internal/domain"
)

const maxErrorBody = 512

// Client sends template emails through the EmailJS REST API.
type Client struct {
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	apiURL     string
	origin     string
	httpClient *http.Client
}

// ProviderError is returned when EmailJS answers with a non-200 status.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("emailjs: status %d: %s", e.StatusCode, e.Body)
}

type sendRequest struct {
	ServiceID      string                `json:"service_id"`
	TemplateID     string                `json:"template_id"`
	UserID         string                `json:"user_id"`
	AccessToken    string                `json:"accessToken,omitempty"`
	TemplateParams domain.TemplateParams `json:"template_params"`
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an EmailJS client. It fails with *config.ConfigurationError
// when an identifier is missing; there are no built-in credentials.
func NewClient(cfg config.EmailJSConfig, timeout time.Duration, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		apiURL:     cfg.APIURL,
		origin:     cfg.Origin,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Send posts params to the configured template. A nil error means EmailJS accepted it.
func (c *Client) Send(ctx context.Context, params domain.TemplateParams) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     c.templateID,
		UserID:         c.publicKey,
		AccessToken:    c.privateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ProviderError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// IsConfigured checks if the client has the identifiers EmailJS needs
func (c *Client) IsConfigured() bool {
	return c != nil && c.serviceID != "" && c.templateID != "" && c.publicKey != ""
}
