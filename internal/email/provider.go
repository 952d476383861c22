package email

// TemplateData feeds the HTML templates.
type TemplateData map[string]interface{}

// Provider sends the transactional emails the account flows need.
type Provider interface {
	// Send delivers a rendered HTML email.
	Send(to, subject, htmlBody string) error

	// SendVerification emails the account-confirmation link.
	SendVerification(to, token string) error

	// SendPasswordReset emails the password-reset link.
	SendPasswordReset(to, token string) error
}

// TemplateRenderer renders named HTML templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name, templateStr string) error
	LoadTemplates(dirPath string) error
}
