package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"portfolio-contact-api/config"
	"portfolio-contact-api/internal/domain"
)

// EmailService relays contact messages over SMTP. It is the alternative to
// EmailJS for deployments that own a mailbox (CONTACT_RELAY=smtp).
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg config.SMTPConfig) (*EmailService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	from := cfg.FromEmail
	if from == "" {
		from = cfg.Username
	}
	return &EmailService{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		fromEmail: from,
		toEmail:   cfg.To,
	}, nil
}

var contactTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #6366f1; margin-top: 10px; white-space: pre-wrap; }
    </style>
</head>
<body>
    <div class="container">
        <h1>New message from your portfolio</h1>
        <p><span class="label">From:</span> {{.FromName}} ({{.FromEmail}})</p>
        <p><span class="label">Subject:</span> {{.Subject}}</p>
        <div class="message-box">{{.Message}}</div>
    </div>
</body>
</html>`))

// BuildMessage renders the MIME message sent to the site owner.
func (s *EmailService) BuildMessage(params domain.TemplateParams) ([]byte, error) {
	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, params); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	subject := mime.QEncoding.Encode("utf-8", "Portfolio contact: "+params.Subject)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.fromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", s.toEmail)
	fmt.Fprintf(&msg, "Reply-To: %s\r\n", sanitizeHeader(params.FromEmail))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// Send delivers params to the configured recipient. ctx bounds the dial and the
// whole SMTP conversation.
func (s *EmailService) Send(ctx context.Context, params domain.TemplateParams) error {
	msg, err := s.BuildMessage(params)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.host, s.port)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(30 * time.Second))
	}

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start smtp session: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(tlsConfig(s.host)); err != nil {
			return fmt.Errorf("failed to start tls: %w", err)
		}
	}
	if err := c.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}
	if err := c.Mail(s.fromEmail); err != nil {
		return fmt.Errorf("smtp MAIL FROM failed: %w", err)
	}
	if err := c.Rcpt(s.toEmail); err != nil {
		return fmt.Errorf("smtp RCPT TO failed: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return c.Quit()
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s != nil && s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}

func tlsConfig(host string) *tls.Config {
	return &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(v)
}
