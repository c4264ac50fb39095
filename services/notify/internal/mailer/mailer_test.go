package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Service = (*DevMailer)(nil)
	_ Service = (*MailerSendClient)(nil)
)

func TestMessages(t *testing.T) {
	welcome := welcomeMessage("Jane")
	assert.Equal(t, "Welcome to GymPass", welcome.subject)
	assert.Contains(t, welcome.text, "Hi Jane")
	assert.Contains(t, welcome.html, "Hi Jane")

	at := time.Date(2023, time.January, 1, 13, 55, 0, 0, time.UTC)
	validated := checkInValidatedMessage("Jane", at)
	assert.Contains(t, validated.text, "Jan 1, 2023 at 13:55 UTC")
}

func TestMailerSendRequiresConfiguration(t *testing.T) {
	m := NewMailerSend("", "GymPass", "noreply@gympass.local")

	err := m.SendWelcomeEmail(context.Background(), "jane@example.com", "Jane")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestDevMailerNeverFails(t *testing.T) {
	m := NewDevMailer()
	require.NoError(t, m.SendWelcomeEmail(context.Background(), "jane@example.com", "Jane"))
	require.NoError(t, m.SendCheckInValidatedEmail(context.Background(), "jane@example.com", "Jane", time.Now()))
}
