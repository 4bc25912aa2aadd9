package main

import (
	"context"
	"errors"
	"fmt"

	"portfolio-contact-api/config"
	"portfolio-contact-api/internal/contactform"
	"portfolio-contact-api/internal/usecase"
	"portfolio-contact-api/pkg/logger"

	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	var name, emailAddr, subject, message string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one contact message through the configured relay",
		Long: `Send one contact message the same way the web form does. Useful to check
relay credentials after a deploy.

Example:
  api send --name "Jane" --email jane@example.com --message "Hello"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger.Init(cfg.Log)
			defer logger.Close()

			relay, err := newRelay(cfg)
			if err != nil {
				return err
			}

			form := contactform.New(usecase.NewContactUsecase(relay, nil, cfg.SendTimeout))
			fields := map[contactform.Field]string{
				contactform.FieldName:    name,
				contactform.FieldEmail:   emailAddr,
				contactform.FieldSubject: subject,
				contactform.FieldMessage: message,
			}
			for field, value := range fields {
				if err := form.Set(field, value); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			_, err = form.Submit(ctx)
			banner := form.Banner()
			fmt.Fprintln(cmd.OutOrStdout(), banner.Text)
			if err != nil {
				return errors.New(banner.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "sender name (required)")
	cmd.Flags().StringVar(&emailAddr, "email", "", "sender email (required)")
	cmd.Flags().StringVar(&subject, "subject", "", "subject, defaults to \"No subject\"")
	cmd.Flags().StringVar(&message, "message", "", "message body (required)")
	return cmd
}
