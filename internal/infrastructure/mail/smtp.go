package mail

import (
	gomail "github.com/go-mail/mail"

	"github.com/rafabene/tenantbase-backend/internal/domain/ports"
	"github.com/rafabene/tenantbase-backend/internal/infrastructure/config"
)

// SMTPSender implementa ports.Mailer via SMTP
type SMTPSender struct {
	host   string
	port   int
	user   string
	pass   string
	from   string
	logger ports.Logger
}

// NewSMTPSender cria um novo sender SMTP
func NewSMTPSender(cfg *config.SMTPConfig, logger ports.Logger) ports.Mailer {
	return &SMTPSender{
		host:   cfg.Host,
		port:   cfg.Port,
		user:   cfg.User,
		pass:   cfg.Pass,
		from:   cfg.From,
		logger: logger,
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	s.logger.Info("sending email", "to", to, "subject", subject)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		s.logger.Warn("email dispatch failed", "to", to, "error", err)
		return err
	}
	return nil
}
