package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// SMTP delivers mail over an implicit-TLS connection (port 465 style).
type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (m *SMTP) Send(ctx context.Context, to, subject, body string) error {
	addr := m.Host + ":" + m.Port

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: m.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Quit()

	if m.Username != "" {
		auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("From: %s\r\n", m.From) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"\r\n" +
		body

	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	return w.Close()
}
