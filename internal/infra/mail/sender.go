package mail

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"
)

var ErrNoRecipients = errors.New("mail: no recipients")

// SMTP接続情報
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SenderはgomailでHTMLメールを送る
type Sender struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// DI
func NewSender(cfg SMTPConfig) *Sender {
	return &Sender{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

// Sendは1通のメールを宛先全員に送る
func (s *Sender) Send(ctx context.Context, to []string, subject, html string) error {
	if len(to) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(s.message(to, subject, html))
}

func (s *Sender) message(to []string, subject, html string) *gomail.Message {
	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", s.from, s.fromName)
	} else {
		m.SetHeader("From", s.from)
	}
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	return m
}
