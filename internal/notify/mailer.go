package notify

import (
	"fmt"
	"net/smtp"
)

// Sender delivers a single message to one recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail over plain-auth SMTP.
type SMTPMailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// NewSMTPMailer creates an SMTP mailer.
func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Password: password, From: from}
}

// Send delivers an HTML message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if m == nil || m.Host == "" || m.User == "" {
		return fmt.Errorf("smtp not configured")
	}
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.User, m.Password, m.Host)
	msg := []byte("From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" + body + "\r\n")
	return smtp.SendMail(addr, auth, m.From, []string{to}, msg)
}

// VerificationEmail renders the confirmation message pointing at the
// verify endpoint.
func VerificationEmail(appURL, token string) (subject, body string) {
	verificationURL := fmt.Sprintf("%s/api/auth/verify/%s", appURL, token)
	subject = "Confirm your registration"
	body = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome to the user management system!</h2>
  <p>To finish registration, please confirm your email:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #1890ff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; display: inline-block;">Confirm Email</a>
  </p>
  <p style="color: #666; font-size: 14px;">If you did not register, just ignore this message.</p>
</div>`, verificationURL)
	return subject, body
}
