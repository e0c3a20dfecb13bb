package email

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

type Sender interface {
	Send(to string, subject string, body string) error
}

// SMTPSender sends email via unauthenticated SMTP (Mailpit-compatible).
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host string, port string, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@klarrein.de"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

func (s *SMTPSender) Send(to string, subject string, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

// LogSender is used when no SMTP host is configured. Reset links then only
// show up in the access log of the instance that issued them.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(to string, subject string, body string) error {
	s.Logger.Info("email not sent (smtp disabled)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResetMail renders the German password-reset mail around a one-time link.
func ResetMail(resetURL string) (subject, body string) {
	subject = "Passwort zurücksetzen"
	body = "Hallo,\n\n" +
		"für Ihr Konto wurde das Zurücksetzen des Passworts angefordert.\n" +
		"Klicken Sie auf den folgenden Link, um ein neues Passwort zu vergeben:\n\n" +
		resetURL + "\n\n" +
		"Der Link ist 30 Minuten gültig. Falls Sie die Anfrage nicht gestellt\n" +
		"haben, können Sie diese E-Mail ignorieren.\n\n" +
		"Ihr Klar & Rein Team\n"
	return subject, body
}

func buildMessage(from, to, subject, body string) string {
	// Minimal RFC 5322 message; enough for Mailpit and most SMTP relays.
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
