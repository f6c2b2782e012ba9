package mail

import (
	"context"
	"errors"
)

// Notification is a templated transactional email.
type Notification struct {
	TemplateID string
	Categories []string
	To         string
	ToName     string
	Subject    string
	Data       map[string]interface{}
}

// Sender delivers a notification. Callers treat failures as best-effort.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

var ErrNoRecipient = errors.New("mail: notification has no recipient")

func (n Notification) validate() error {
	if n.To == "" {
		return ErrNoRecipient
	}
	if n.TemplateID == "" {
		return errors.New("mail: notification has no template id")
	}
	return nil
}

// New returns the sender selected by cfg.Driver
func New(cfg *Config) (Sender, error) {
	switch cfg.Driver {
	case DriverSendGrid:
		return NewSendGridSender(cfg)
	case DriverSMTP:
		return NewSMTPSender(cfg), nil
	default:
		return nil, errors.New("mail: unsupported driver " + cfg.Driver)
	}
}
