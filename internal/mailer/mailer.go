// Package mailer delivers application email over SMTP. Every backend
// implements the single fixed Sender contract; callers never inspect the
// implementation.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/nightbite/restaurant-booking/internal/config"
)

// Sender is the one email capability the application depends on. A failed
// send is reported through the error return and must never abort the
// caller's control flow; OTP issuance in particular treats delivery as
// best-effort.
type Sender interface {
	Send(to, subject, text, html string) error
}

// SMTP sends mail through a plain SMTP server, with STARTTLS by default and
// implicit TLS when the security setting is "ssl" or the port is 465.
type SMTP struct {
	cfg config.SMTPConfig
}

// NewSMTP returns a Sender over the given transport settings.
func NewSMTP(cfg config.SMTPConfig) *SMTP { return &SMTP{cfg: cfg} }

// Send delivers one message. When html is non-empty it is sent as the body
// with a text/html content type, otherwise the plain text is used.
func (m *SMTP) Send(to, subject, text, html string) error {
	cfg := m.cfg
	if cfg.Username == "" {
		return fmt.Errorf("mailer: SMTP_USER not configured")
	}
	if cfg.From == "" {
		return fmt.Errorf("mailer: EMAIL_FROM not configured")
	}

	raw := buildRaw(cfg.From, to, subject, text, html)
	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	if strings.EqualFold(cfg.Security, "ssl") || cfg.Port == "465" {
		return m.sendTLS(addr, auth, cfg.From, to, raw)
	}
	// smtp.SendMail negotiates STARTTLS itself when the server offers it.
	return smtp.SendMail(addr, auth, cfg.From, []string{to}, raw)
}

func (m *SMTP) sendTLS(addr string, auth smtp.Auth, from, to string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return fmt.Errorf("mailer: TLS dial: %w", err)
	}
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	defer w.Close()
	_, err = w.Write(raw)
	return err
}

func buildRaw(from, to, subject, text, html string) []byte {
	body := text
	contentType := "text/plain"
	if html != "" {
		body = html
		contentType = "text/html"
	}
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString(fmt.Sprintf("Content-Type: %s; charset=\"UTF-8\"\r\n", contentType))
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
