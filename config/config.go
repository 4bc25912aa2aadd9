package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// EmailJSConfig identifies the EmailJS service, template and account used to relay
// contact messages. ServiceID, TemplateID and PublicKey have no defaults.
type EmailJSConfig struct {
	ServiceID  string `env:"EMAILJS_SERVICE_ID"`
	TemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	PublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	PrivateKey string `env:"EMAILJS_PRIVATE_KEY"` // accessToken, required by EmailJS strict mode
	APIURL     string `env:"EMAILJS_API_URL" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	Origin     string `env:"EMAILJS_ORIGIN"`
}

// SMTPConfig is the alternative relay: plain SMTP submission (e.g. Brevo).
type SMTPConfig struct {
	Host      string `env:"SMTP_HOST"`
	Port      string `env:"SMTP_PORT" envDefault:"587"`
	Username  string `env:"SMTP_USERNAME"`
	Password  string `env:"SMTP_PASSWORD"`
	FromEmail string `env:"SMTP_FROM_EMAIL"` // defaults to Username
	To        string `env:"CONTACT_EMAIL_TO"`
}

const (
	RelayEmailJS = "emailjs"
	RelaySMTP    = "smtp"
)

type LogConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"50"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"14"`
}

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	// Relay selects how contact messages leave the service: emailjs or smtp
	Relay       string `env:"CONTACT_RELAY" envDefault:"emailjs"`
	EmailJS     EmailJSConfig
	SMTP        SMTPConfig
	SendTimeout time.Duration `env:"CONTACT_SEND_TIMEOUT" envDefault:"10s"`

	Log LogConfig

	// CORS
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`

	// Redis/Upstash Configuration
	UpstashRedisURL      string `env:"UPSTASH_REDIS_URL"`
	UpstashRedisPassword string `env:"UPSTASH_REDIS_PASSWORD"`

	// Rate Limiting Configuration
	RateLimitContactPerMinute int `env:"RATE_LIMIT_CONTACT_PER_MINUTE" envDefault:"5"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"portfolio-contact-api"`
}

// ConfigurationError reports a setting that must be supplied but was not.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s is not set", e.Key)
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimRight(strings.TrimSpace(origin), "/")
	}

	return cfg, nil
}

// Validate checks the settings the selected contact relay cannot run without.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Relay) {
	case RelaySMTP:
		return c.SMTP.Validate()
	case RelayEmailJS, "":
		return c.EmailJS.Validate()
	default:
		return fmt.Errorf("configuration error: unknown CONTACT_RELAY %q", c.Relay)
	}
}

// Validate returns a *ConfigurationError naming the first blank identifier.
func (c EmailJSConfig) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"EMAILJS_SERVICE_ID", c.ServiceID},
		{"EMAILJS_TEMPLATE_ID", c.TemplateID},
		{"EMAILJS_PUBLIC_KEY", c.PublicKey},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigurationError{Key: r.key}
		}
	}
	return nil
}

// Validate returns a *ConfigurationError naming the first blank SMTP setting.
func (c SMTPConfig) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"SMTP_HOST", c.Host},
		{"SMTP_USERNAME", c.Username},
		{"SMTP_PASSWORD", c.Password},
		{"CONTACT_EMAIL_TO", c.To},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigurationError{Key: r.key}
		}
	}
	return nil
}
