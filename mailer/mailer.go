// Package mailer sends transactional email over SMTP. Delivery is
// best-effort: handlers fire sends from a goroutine and never report
// delivery failures to the end user.
package mailer

import (
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"net"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/liftsforlife/backend/config"
)

// Sender is what handlers depend on; tests swap in a fake.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SMTP struct {
	cfg  config.SMTP
	auth smtp.Auth
}

func New(cfg config.SMTP) *SMTP {
	return &SMTP{
		cfg:  cfg,
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}
}

func (m *SMTP) Send(to, subject, htmlBody string) error {
	msg := m.buildMessage(to, subject, htmlBody)
	address := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	// Port 465 = implicit TLS, otherwise STARTTLS
	if m.cfg.Port == 465 {
		return m.sendImplicitTLS(address, to, msg)
	}
	return m.sendSTARTTLS(address, to, msg)
}

func (m *SMTP) timeout() time.Duration {
	if m.cfg.Timeout == 0 {
		return 10 * time.Second
	}
	return m.cfg.Timeout
}

func (m *SMTP) sendImplicitTLS(address, to string, msg []byte) error {
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: m.timeout()}, "tcp", address, tlsConfig)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", address, err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	return m.sendViaClient(client, to, msg)
}

func (m *SMTP) sendSTARTTLS(address, to string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", address, m.timeout())
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", address, err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}

	return m.sendViaClient(client, to, msg)
}

func (m *SMTP) sendViaClient(client *smtp.Client, to string, msg []byte) error {
	if err := client.Auth(m.auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(m.cfg.Username); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return client.Quit()
}

func (m *SMTP) buildMessage(to, subject, htmlBody string) []byte {
	encodedSubject := mime.QEncoding.Encode("utf-8", subject)
	encodedSenderName := mime.QEncoding.Encode("utf-8", m.cfg.SenderName)

	msgID := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.cfg.Host)
	date := time.Now().Format(time.RFC1123Z)

	return fmt.Appendf(nil,
		"Message-ID: %s\r\n"+
			"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		msgID, date, to, encodedSenderName, m.cfg.Username, encodedSubject, htmlBody,
	)
}

// SendAsync fires the send from a goroutine and logs failures. The store
// mutation that triggered the email stands either way; emails are
// notifications, not transactional confirmations.
func SendAsync(s Sender, to, subject, htmlBody string) {
	go func() {
		if err := s.Send(to, subject, htmlBody); err != nil {
			log.Printf("mail to %s (%q) failed: %v", to, subject, err)
		}
	}()
}
