package mail

import (
	"bytes"
	"html/template"
)

var forgotPasswordTmpl = template.Must(template.New("forgot-password").Parse(`
<html>
  <body>
    <p>Hello {{.AccountName}},</p>
    <p>A password reset was requested for your account.</p>
    <p><a href="{{.URL}}">Click here to reset your password</a></p>
    <p>If you did not request this, you can safely ignore this email.</p>
  </body>
</html>
`))

// ForgotPasswordBody monta o corpo HTML do e-mail de reset de senha
func ForgotPasswordBody(accountName, url string) (string, error) {
	var buf bytes.Buffer
	err := forgotPasswordTmpl.Execute(&buf, struct {
		AccountName string
		URL         string
	}{AccountName: accountName, URL: url})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
