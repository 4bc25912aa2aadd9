package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-contact-api/config"
	"portfolio-contact-api/pkg/email"
	"portfolio-contact-api/pkg/emailjs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRelay(t *testing.T) {
	t.Run("Should build the EmailJS client by default", func(t *testing.T) {
		cfg := &config.Config{EmailJS: config.EmailJSConfig{ServiceID: "s", TemplateID: "t", PublicKey: "p"}}
		relay, err := newRelay(cfg)
		require.NoError(t, err)
		assert.IsType(t, &emailjs.Client{}, relay)
	})

	t.Run("Should build the SMTP relay when selected", func(t *testing.T) {
		cfg := &config.Config{
			Relay: config.RelaySMTP,
			SMTP:  config.SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "u", Password: "p", To: "to@example.com"},
		}
		relay, err := newRelay(cfg)
		require.NoError(t, err)
		assert.IsType(t, &email.EmailService{}, relay)
	})

	t.Run("Should fail fast without credentials", func(t *testing.T) {
		_, err := newRelay(&config.Config{})
		var cfgErr *config.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "EMAILJS_SERVICE_ID", cfgErr.Key)
	})
}

func TestSendCommand(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	t.Setenv("CONTACT_RELAY", "emailjs")
	t.Setenv("EMAILJS_SERVICE_ID", "service_cli")
	t.Setenv("EMAILJS_TEMPLATE_ID", "template_cli")
	t.Setenv("EMAILJS_PUBLIC_KEY", "public_cli")
	t.Setenv("EMAILJS_API_URL", srv.URL)

	t.Run("Should relay and print the success banner", func(t *testing.T) {
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs([]string{"send", "--name", "John Doe", "--email", "john@example.com", "--message", "Hello"})

		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Your message has been sent successfully!")
		assert.Equal(t, map[string]any{
			"from_name":  "John Doe",
			"from_email": "john@example.com",
			"subject":    "No subject",
			"message":    "Hello",
		}, got["template_params"])
	})

	t.Run("Should print the validation message and fail", func(t *testing.T) {
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs([]string{"send", "--name", "Jane", "--email", "not-an-email", "--message", "hi"})

		assert.Error(t, root.Execute())
		assert.Contains(t, out.String(), "Please enter a valid email address.")
	})
}
