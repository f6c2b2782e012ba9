package mail

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridClient interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridSender sends dynamic template emails through SendGrid
type SendGridSender struct {
	client   sendgridClient
	from     string
	fromName string
}

func NewSendGridSender(cfg *Config) (*SendGridSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key is empty")
	}
	return &SendGridSender{
		client:   sendgrid.NewSendClient(cfg.APIKey),
		from:     cfg.From,
		fromName: cfg.FromName,
	}, nil
}

func (s *SendGridSender) buildMessage(n Notification) *sgmail.SGMailV3 {
	message := sgmail.NewV3Mail()
	message.SetFrom(sgmail.NewEmail(s.fromName, s.from))
	message.SetTemplateID(n.TemplateID)
	if len(n.Categories) > 0 {
		message.AddCategories(n.Categories...)
	}

	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail(n.ToName, n.To))
	if n.Subject != "" {
		p.Subject = n.Subject
	}
	for k, v := range n.Data {
		p.SetDynamicTemplateData(k, v)
	}
	message.AddPersonalizations(p)

	return message
}

func (s *SendGridSender) Send(ctx context.Context, n Notification) error {
	if err := n.validate(); err != nil {
		return err
	}

	response, err := s.client.SendWithContext(ctx, s.buildMessage(n))
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		log.Errorf("[SendGrid] error status=%d, body=%s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	log.Infof("[SendGrid] mail sent: status=%d to=%s template=%s", response.StatusCode, n.To, n.TemplateID)
	return nil
}
