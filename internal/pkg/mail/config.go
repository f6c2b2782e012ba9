package mail

import (
	"fmt"
	"strings"

	"github.com/ManuelReschke/AboCheckout/internal/pkg/env"
)

const (
	DriverSendGrid = "sendgrid"
	DriverSMTP     = "smtp"
)

// Templates holds the template id used for each checkout outcome
type Templates struct {
	FreeTrial        string
	GodparentGift    string
	FixedTermCard    string
	OpenEndedCard    string
	OpenEndedMandate string
}

type Config struct {
	Driver       string
	APIKey       string
	From         string
	FromName     string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	TemplateDir  string
	Templates    Templates
}

// LoadConfig loads mail configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Driver:       strings.ToLower(env.GetEnv("MAIL_DRIVER", DriverSendGrid)),
		APIKey:       env.GetEnv("SENDGRID_API_KEY", ""),
		From:         env.GetEnv("MAIL_FROM", ""),
		FromName:     env.GetEnv("MAIL_FROM_NAME", "Abonnements"),
		SMTPHost:     env.GetEnv("SMTP_HOST", "localhost"),
		SMTPPort:     env.GetEnv("SMTP_PORT", "1025"),
		SMTPUsername: env.GetEnv("SMTP_USERNAME", ""),
		SMTPPassword: env.GetEnv("SMTP_PASSWORD", ""),
		TemplateDir:  env.GetEnv("MAIL_TEMPLATE_DIR", "./templates/mail"),
		Templates: Templates{
			FreeTrial:        env.GetEnv("MAIL_TEMPLATE_FREE_TRIAL", ""),
			GodparentGift:    env.GetEnv("MAIL_TEMPLATE_GODPARENT_GIFT", ""),
			FixedTermCard:    env.GetEnv("MAIL_TEMPLATE_FIXED_TERM_CARD", ""),
			OpenEndedCard:    env.GetEnv("MAIL_TEMPLATE_OPEN_CARD", ""),
			OpenEndedMandate: env.GetEnv("MAIL_TEMPLATE_OPEN_MANDATE", ""),
		},
	}

	if config.From == "" {
		return nil, fmt.Errorf("MAIL_FROM is required")
	}
	switch config.Driver {
	case DriverSendGrid:
		if config.APIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is required for the sendgrid driver")
		}
	case DriverSMTP:
	default:
		return nil, fmt.Errorf("unsupported MAIL_DRIVER %q", config.Driver)
	}

	return config, nil
}
