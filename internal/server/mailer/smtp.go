package mailer

import (
	"context"
	"errors"
	"net/smtp"
)

// SMTPSender delivers mail over plain-auth SMTP.
type SMTPSender struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPSender(host, port, user, pass, from string) *SMTPSender {
	return &SMTPSender{host: host, port: port, user: user, pass: pass, from: from}
}

// Send builds an RFC 822 style plain-text message and submits it. An empty
// host means mail is not configured for this deployment.
func (s *SMTPSender) Send(_ context.Context, m Mail) error {
	if s.host == "" {
		return errors.New("smtp not configured")
	}

	msg := "From: " + s.from + "\r\n" +
		"To: " + m.To + "\r\n" +
		"Subject: " + m.Subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		m.Body + "\r\n"

	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	return smtp.SendMail(addr, auth, s.from, []string{m.To}, []byte(msg))
}
