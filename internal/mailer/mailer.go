// Package mailer delivers application emails with the tailored résumé
// attached.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Default SMTP settings.
const (
	DefaultHost     = "smtp.qq.com"
	DefaultPort     = 465
	DefaultFromName = "求职者"
	DefaultTimeout  = 30 * time.Second
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("smtp credentials not configured")

// Attachment is a file attached to a message.
type Attachment struct {
	Name string
	Data []byte
}

// Message is one outgoing email.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment *Attachment
}

// Mailer sends messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig holds SMTP connection settings. Secure selects implicit TLS;
// otherwise STARTTLS is used when the server offers it.
type SMTPConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Secure   bool   `json:"secure" yaml:"secure"`
	User     string `json:"user" yaml:"user"`
	Pass     string `json:"-" yaml:"-"`
	From     string `json:"from" yaml:"from"`
	FromName string `json:"fromName" yaml:"fromName"`
}

// Enabled reports whether credentials are present.
func (c SMTPConfig) Enabled() bool {
	return c.User != "" && c.Pass != ""
}

// sender returns the From address, defaulting to the login user.
func (c SMTPConfig) sender() string {
	if c.From != "" {
		return c.From
	}
	return c.User
}

// SMTPMailer sends through an SMTP server.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer returns a mailer for cfg, filling unset fields with the
// defaults. It fails with ErrNotConfigured when credentials are missing.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.FromName == "" {
		cfg.FromName = DefaultFromName
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// Send dials the server and delivers msg.
func (s *SMTPMailer) Send(ctx context.Context, msg Message) error {
	m, err := buildMessage(s.cfg, msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Pass),
		mail.WithTimeout(DefaultTimeout),
	}
	if s.cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(cfg SMTPConfig, msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(cfg.FromName, cfg.sender()); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	if a := msg.Attachment; a != nil {
		m.AttachReadSeeker(a.Name, bytes.NewReader(a.Data), mail.WithFileContentType(mail.TypeTextPlain))
	}
	return m, nil
}
