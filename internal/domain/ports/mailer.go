package ports

// Mailer define a interface para envio de e-mails transacionais
type Mailer interface {
	Send(to, subject, htmlBody string) error
}
