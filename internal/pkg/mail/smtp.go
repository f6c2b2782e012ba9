package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"path/filepath"

	"github.com/gofiber/fiber/v2/log"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender renders <TemplateDir>/<TemplateID>.html locally and sends it
// over plain SMTP. Used with mailpit/mailhog in development.
type SMTPSender struct {
	addr        string
	auth        smtp.Auth
	from        string
	templateDir string
	send        sendFunc
}

func NewSMTPSender(cfg *Config) *SMTPSender {
	var auth smtp.Auth
	if cfg.SMTPUsername != "" && cfg.SMTPPassword != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}

	from := cfg.From
	if from == "" {
		from = "no-reply@localhost"
		log.Warnf("[SMTP] MAIL_FROM not set, using default sender: %s", from)
	}

	return &SMTPSender{
		addr:        fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		auth:        auth,
		from:        from,
		templateDir: cfg.TemplateDir,
		send:        smtp.SendMail,
	}
}

func (s *SMTPSender) render(n Notification) (string, error) {
	path := filepath.Join(s.templateDir, filepath.Base(n.TemplateID)+".html")
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to load mail template %s: %w", n.TemplateID, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, n.Data); err != nil {
		return "", fmt.Errorf("failed to render mail template %s: %w", n.TemplateID, err)
	}
	return buf.String(), nil
}

func (s *SMTPSender) Send(ctx context.Context, n Notification) error {
	if err := n.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := s.render(n)
	if err != nil {
		return err
	}

	subject := n.Subject
	if subject == "" {
		subject = n.TemplateID
	}

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", s.from, n.To, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	if err := s.send(s.addr, s.auth, s.from, []string{n.To}, msg); err != nil {
		log.Errorf("[SMTP] send error: %v", err)
		return err
	}
	log.Infof("[SMTP] Email sent to %s via %s", n.To, s.addr)
	return nil
}
