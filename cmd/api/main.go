package main

import (
	"fmt"
	"os"
	"strings"

	"portfolio-contact-api/config"
	_ "portfolio-contact-api/docs" // Important for Swagger
	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/email"
	"portfolio-contact-api/pkg/emailjs"

	"github.com/spf13/cobra"
)

// @title           Portfolio Contact API
// @version         1.0
// @description     Relays portfolio contact-form messages through EmailJS.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "api",
		Short: "Portfolio contact API",
		Long: `Backend for the portfolio contact form. It validates messages and relays
them to the site owner through EmailJS or SMTP.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newSendCmd())
	return root
}

// newRelay builds the relay selected by CONTACT_RELAY. A missing identifier is a
// *config.ConfigurationError.
func newRelay(cfg *config.Config) (domain.EmailRelay, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Relay) {
	case config.RelaySMTP:
		svc, err := email.NewEmailService(cfg.SMTP)
		if err != nil {
			return nil, err
		}
		return svc, nil
	case config.RelayEmailJS, "":
		client, err := emailjs.NewClient(cfg.EmailJS, cfg.SendTimeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown relay %q", cfg.Relay)
	}
}
