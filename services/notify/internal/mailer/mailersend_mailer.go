package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	return m.send(ctx, toEmail, toName, welcomeMessage(html.EscapeString(toName)))
}

func (m *MailerSendClient) SendCheckInValidatedEmail(ctx context.Context, toEmail, toName string, validatedAt time.Time) error {
	return m.send(ctx, toEmail, toName, checkInValidatedMessage(html.EscapeString(toName), validatedAt))
}

func (m *MailerSendClient) send(ctx context.Context, toEmail, toName string, msg message) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	email := m.client.Email.NewMessage()
	email.SetFrom(m.from)
	email.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	email.SetSubject(msg.subject)

	if strings.TrimSpace(msg.text) != "" {
		email.SetText(msg.text)
	}
	if strings.TrimSpace(msg.html) != "" {
		email.SetHTML(msg.html)
	}

	_, err := m.client.Email.Send(ctx, email)
	return err
}
