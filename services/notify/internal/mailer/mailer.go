package mailer

import (
	"context"
	"time"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
	SendCheckInValidatedEmail(ctx context.Context, toEmail, toName string, validatedAt time.Time) error
}

type message struct {
	subject string
	text    string
	html    string
}

func welcomeMessage(toName string) message {
	return message{
		subject: "Welcome to GymPass",
		text:    "Hi " + toName + ",\n\nYour account is ready. Find a gym nearby and check in to start tracking your workouts.",
		html: `
		<h2>Welcome to GymPass!</h2>
		<p>Hi ` + toName + `,</p>
		<p>Your account is ready. Find a gym nearby and check in to start tracking your workouts.</p>
	`,
	}
}

func checkInValidatedMessage(toName string, validatedAt time.Time) message {
	when := validatedAt.Format("Jan 2, 2006 at 15:04 MST")
	return message{
		subject: "Your check-in was validated",
		text:    "Hi " + toName + ",\n\nYour gym check-in was validated on " + when + ".",
		html: `
		<h2>Check-in validated</h2>
		<p>Hi ` + toName + `,</p>
		<p>Your gym check-in was validated on <strong>` + when + `</strong>.</p>
	`,
	}
}
