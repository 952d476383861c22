package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string // link base for verification / reset URLs
}

// SMTPProvider delivers mail through a plain SMTP relay.
type SMTPProvider struct {
	config   SMTPConfig
	dialer   *gomail.Dialer
	renderer TemplateRenderer
}

func NewSMTPProvider(config SMTPConfig, renderer TemplateRenderer) (*SMTPProvider, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", config.Port)
	}

	return &SMTPProvider{
		config:   config,
		dialer:   gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		renderer: renderer,
	}, nil
}

func (p *SMTPProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendVerification(to, token string) error {
	body, err := p.renderer.Render(TemplateVerification, TemplateData{
		"Link": fmt.Sprintf("%s/verify-email?token=%s", p.config.BaseURL, token),
	})
	if err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}
	return p.Send(to, "Verify your email address", body)
}

func (p *SMTPProvider) SendPasswordReset(to, token string) error {
	body, err := p.renderer.Render(TemplatePasswordReset, TemplateData{
		"Link": fmt.Sprintf("%s/reset-password?token=%s", p.config.BaseURL, token),
	})
	if err != nil {
		return fmt.Errorf("failed to render password reset email: %w", err)
	}
	return p.Send(to, "Reset your password", body)
}
