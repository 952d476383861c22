package app

// MockEmailProvider is used in tests and when SMTP is not configured.
type MockEmailProvider struct {
	Sent []SentEmail
}

type SentEmail struct {
	To      string
	Subject string
	Token   string
}

func (m *MockEmailProvider) Send(to, subject, htmlBody string) error {
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject})
	return nil
}

func (m *MockEmailProvider) SendVerification(to, token string) error {
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: "verification", Token: token})
	return nil
}

func (m *MockEmailProvider) SendPasswordReset(to, token string) error {
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: "password reset", Token: token})
	return nil
}
