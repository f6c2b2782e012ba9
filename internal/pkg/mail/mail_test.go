package mail

import (
	"context"
	"errors"
	"net/smtp"
	"os"
	"path/filepath"
	"testing"

	"github.com/sendgrid/rest"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/AboCheckout/internal/pkg/env"
)

type fakeSendGrid struct {
	sent   []*sgmail.SGMailV3
	status int
	err    error
}

func (f *fakeSendGrid) SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status, Body: "{}"}, nil
}

func testNotification() Notification {
	return Notification{
		TemplateID: "d-123",
		Categories: []string{"checkout", "cb/paid"},
		To:         "jane@example.org",
		ToName:     "Jane Doe",
		Data:       map[string]interface{}{"checkout_id": 42, "name": "Jane Doe"},
	}
}

func TestSendGridSender_BuildMessage(t *testing.T) {
	s := &SendGridSender{from: "abo@example.org", fromName: "Abonnements"}
	msg := s.buildMessage(testNotification())

	assert.Equal(t, "d-123", msg.TemplateID)
	assert.Equal(t, []string{"checkout", "cb/paid"}, msg.Categories)
	assert.Equal(t, "abo@example.org", msg.From.Address)
	require.Len(t, msg.Personalizations, 1)
	p := msg.Personalizations[0]
	require.Len(t, p.To, 1)
	assert.Equal(t, "jane@example.org", p.To[0].Address)
	assert.Equal(t, 42, p.DynamicTemplateData["checkout_id"])
}

func TestSendGridSender_Send(t *testing.T) {
	fake := &fakeSendGrid{status: 202}
	s := &SendGridSender{client: fake, from: "abo@example.org"}

	require.NoError(t, s.Send(context.Background(), testNotification()))
	assert.Len(t, fake.sent, 1)

	fake.status = 400
	assert.Error(t, s.Send(context.Background(), testNotification()))

	fake.err = errors.New("timeout")
	assert.Error(t, s.Send(context.Background(), testNotification()))

	n := testNotification()
	n.To = ""
	assert.ErrorIs(t, s.Send(context.Background(), n), ErrNoRecipient)
}

func TestSMTPSender_Send(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "d-123.html"),
		[]byte(`<p>Commande {{.checkout_id}} pour {{.name}}</p>`), 0o644))

	var gotTo []string
	var gotMsg []byte
	s := NewSMTPSender(&Config{SMTPHost: "localhost", SMTPPort: "1025", From: "abo@example.org", TemplateDir: dir})
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "localhost:1025", addr)
		gotTo = to
		gotMsg = msg
		return nil
	}

	require.NoError(t, s.Send(context.Background(), testNotification()))
	assert.Equal(t, []string{"jane@example.org"}, gotTo)
	assert.Contains(t, string(gotMsg), "Commande 42 pour Jane Doe")
	assert.Contains(t, string(gotMsg), "Subject: d-123")

	n := testNotification()
	n.TemplateID = "missing"
	assert.Error(t, s.Send(context.Background(), n))
}

func TestLoadConfig(t *testing.T) {
	env.Env = map[string]string{"MAIL_DRIVER": "sendgrid", "MAIL_FROM": "abo@example.org"}
	t.Cleanup(func() { env.Env = nil })

	_, err := LoadConfig()
	assert.Error(t, err, "sendgrid requires an api key")

	env.Env["SENDGRID_API_KEY"] = "SG.key"
	env.Env["MAIL_TEMPLATE_OPEN_MANDATE"] = "d-sepa"
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "d-sepa", cfg.Templates.OpenEndedMandate)

	sender, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, sender)

	env.Env["MAIL_DRIVER"] = "smtp"
	cfg, err = LoadConfig()
	require.NoError(t, err)
	sender, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, sender)
}
