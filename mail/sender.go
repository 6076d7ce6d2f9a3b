package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender delivers password-reset links.
type Sender interface {
	SendPasswordReset(ctx context.Context, to, name, link string) error
}

type PasswordResetData struct {
	Name string
	Link string
}

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>We received a request to reset your password. The link below is valid for one hour.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>If you did not ask for this, you can ignore this email.</p>`))

type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *SMTPSender) SendPasswordReset(ctx context.Context, to, name, link string) error {
	var body bytes.Buffer
	if err := passwordResetTemplate.Execute(&body, PasswordResetData{Name: name, Link: link}); err != nil {
		return fmt.Errorf("failed to render password reset email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Reset your password")
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email over SMTP: %w", err)
	}
	return nil
}

// LogSender only logs the link. Used when no SMTP host is configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendPasswordReset(ctx context.Context, to, name, link string) error {
	s.logger.Info("password reset requested, SMTP not configured",
		zap.String("to", to),
		zap.String("link", link))
	return nil
}
