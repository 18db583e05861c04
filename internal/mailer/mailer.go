package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers rendered notification mail. A failure is surfaced to the
// caller as-is; nothing is retried or queued.
type Mailer interface {
	Send(to, subject, html string) error
}

// SMTP sends mail through a single SMTP account.
type SMTP struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTP(host string, port int, username, password, from, fromName string) *SMTP {
	return &SMTP{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		fromName: fromName,
	}
}

func (s *SMTP) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

// VerificationBody renders the registration code mail.
func VerificationBody(code string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; padding: 20px; border: 1px solid #eee;">
          <h2 style="color: #f39c12;">Welcome to Bazzar!</h2>
          <p>Please use the following 8-character code to verify your account:</p>
          <h1 style="background: #f4f4f4; padding: 10px; text-align: center; letter-spacing: 5px;">%s</h1>
          <p>This code will expire in 10 minutes.</p>
        </div>`, code)
}

// LoginCodeBody renders the login verification mail.
func LoginCodeBody(code string) string {
	return fmt.Sprintf(`
        <div style="padding: 20px; border: 1px solid #eee;">
          <h2>Login Verification</h2>
          <p>Use the code below to complete your login:</p>
          <h1 style="background: #f4f4f4; text-align: center;">%s</h1>
        </div>`, code)
}
