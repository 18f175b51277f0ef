package email

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"vidtube/config"
)

var otpTemplate = template.Must(template.New("otp_email").Parse(`
<p>Hi,</p>
<p>Your one-time passcode is <b>{{.Code}}</b>.</p>
<p>It expires in {{.TTL}}. If you did not request it, ignore this email.</p>
`))

type Sender struct {
	dialer *gomail.Dialer
	from   string
	ttl    string
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
		ttl:    cfg.OtpTTL.String(),
	}
}

func (s *Sender) SendOtpEmail(to, code string) error {
	var body bytes.Buffer
	err := otpTemplate.Execute(&body, map[string]string{
		"Code": code,
		"TTL":  s.ttl,
	})
	if err != nil {
		return fmt.Errorf("failed to render otp email: %w", err)
	}
	return s.sendEmail(to, "Your verification code", body.String())
}

func (s *Sender) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
