package utils

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"

	"gigbud/internal/config"
)

// Mailer delivers plain-text email. The services depend on this interface so
// tests can swap in a recorder.
type Mailer interface {
	Send(recipient, subject, message string) error
}

// SMTPMailer speaks STARTTLS SMTP using credentials from the config.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	sender   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		sender:   cfg.SMTPSender,
	}
}

func (m *SMTPMailer) Send(recipient, subject, message string) error {
	smtpAddr := m.host + ":" + m.port

	client, err := smtp.Dial(smtpAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: m.host,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = client.Mail(m.sender); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to create mail writer: %w", err)
	}

	emailBody := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.sender, recipient, subject, message)

	if _, err = writer.Write([]byte(emailBody)); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close mail writer: %w", err)
	}

	if err = client.Quit(); err != nil {
		log.Printf("Failed to close SMTP connection properly: %v", err)
	}
	return nil
}
