package mailer

import (
	"context"
	"time"

	"github.com/diagnosis/gympass/pkg/logger"
)

// DevMailer logs emails instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	d.log(ctx, toEmail, welcomeMessage(toName))
	return nil
}

func (d *DevMailer) SendCheckInValidatedEmail(ctx context.Context, toEmail, toName string, validatedAt time.Time) error {
	d.log(ctx, toEmail, checkInValidatedMessage(toName, validatedAt))
	return nil
}

func (d *DevMailer) log(ctx context.Context, toEmail string, msg message) {
	logger.InfoContext(ctx, "[DEV MAIL] "+msg.subject,
		"to", toEmail,
		"body", msg.text,
	)
}
