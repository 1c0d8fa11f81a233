package mail

import (
	"fmt"
	"log/slog"

	gomail "gopkg.in/mail.v2"
)

// Mailer sends transactional mail over SMTP. A nil Mailer (no SMTP_HOST
// configured) logs the link instead of sending, which keeps local setups
// and tests working without a mail server.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	log      *slog.Logger
}

func NewMailer(host string, port int, username, password string, l *slog.Logger) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     username,
		log:      l,
	}
}

func (m *Mailer) SendVerificationEmail(to, link string) {
	subject := "Verify your email"
	body := fmt.Sprintf("<p>Click below to verify your email:</p><a href=%q>%s</a>", link, link)
	m.sendAsync(to, subject, body)
}

func (m *Mailer) SendPasswordResetEmail(to, link string) {
	subject := "Password Reset"
	body := fmt.Sprintf("<p>Click the link below to reset your password:</p><a href=%q>%s</a>", link, link)
	m.sendAsync(to, subject, body)
}

func (m *Mailer) sendAsync(to, subject, body string) {
	if m == nil {
		slog.Default().Info("mailer disabled, skipping email", "to", to, "subject", subject)
		return
	}
	go func() {
		if err := m.send(to, subject, body); err != nil {
			m.log.Error("email send failed", "to", to, "subject", subject, "error", err)
		}
	}()
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}
