package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/diagnosis/gympass/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	kind  string
	email string
	name  string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (m *fakeMailer) SendWelcomeEmail(_ context.Context, toEmail, toName string) error {
	m.sent = append(m.sent, sentEmail{"welcome", toEmail, toName})
	return m.err
}

func (m *fakeMailer) SendCheckInValidatedEmail(_ context.Context, toEmail, toName string, _ time.Time) error {
	m.sent = append(m.sent, sentEmail{"validated", toEmail, toName})
	return m.err
}

// fakeSubscriber keeps handlers by subject so tests can deliver messages synchronously.
type fakeSubscriber struct {
	handlers map[string]func(*events.Message)
	queues   map[string]string
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{
		handlers: make(map[string]func(*events.Message)),
		queues:   make(map[string]string),
	}
}

func (s *fakeSubscriber) Subscribe(subject string, handler func(*events.Message)) error {
	s.handlers[subject] = handler
	return nil
}

func (s *fakeSubscriber) QueueSubscribe(subject, queue string, handler func(*events.Message)) error {
	s.handlers[subject] = handler
	s.queues[subject] = queue
	return nil
}

func (s *fakeSubscriber) Close() error { return nil }

func (s *fakeSubscriber) deliver(t *testing.T, subject string, payload interface{}) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	handler, ok := s.handlers[subject]
	require.True(t, ok, "no handler for %s", subject)
	handler(&events.Message{Subject: subject, Data: data, Timestamp: time.Now(), ID: "evt-1"})
}

func TestNotifierSubscribesInQueueGroup(t *testing.T) {
	sub := newFakeSubscriber()
	require.NoError(t, New(&fakeMailer{}).Subscribe(sub))

	assert.Equal(t, "notify", sub.queues[events.UserRegistered])
	assert.Equal(t, "notify", sub.queues[events.CheckInValidated])
}

func TestUserRegisteredSendsWelcome(t *testing.T) {
	m := &fakeMailer{}
	sub := newFakeSubscriber()
	require.NoError(t, New(m).Subscribe(sub))

	sub.deliver(t, events.UserRegistered, events.UserRegisteredEvent{
		UserID: "user-01", Name: "Jane", Email: "jane@example.com", CreatedAt: time.Now(),
	})

	require.Len(t, m.sent, 1)
	assert.Equal(t, sentEmail{"welcome", "jane@example.com", "Jane"}, m.sent[0])
}

func TestCheckInValidatedSendsConfirmation(t *testing.T) {
	m := &fakeMailer{}
	sub := newFakeSubscriber()
	require.NoError(t, New(m).Subscribe(sub))

	sub.deliver(t, events.CheckInValidated, events.CheckInValidatedEvent{
		CheckInID: "check-in-01", UserID: "user-01", UserName: "Jane", UserEmail: "jane@example.com",
		GymID: "gym-01", ValidatedAt: time.Now(),
	})
	sub.deliver(t, events.CheckInValidated, events.CheckInValidatedEvent{
		CheckInID: "check-in-02", UserID: "user-02", GymID: "gym-01", ValidatedAt: time.Now(),
	})

	require.Len(t, m.sent, 1)
	assert.Equal(t, sentEmail{"validated", "jane@example.com", "Jane"}, m.sent[0])
}

func TestHandlerSurvivesMailerFailureAndBadPayload(t *testing.T) {
	m := &fakeMailer{err: errors.New("smtp down")}
	sub := newFakeSubscriber()
	require.NoError(t, New(m).Subscribe(sub))

	assert.NotPanics(t, func() {
		sub.deliver(t, events.UserRegistered, events.UserRegisteredEvent{Name: "Jane", Email: "jane@example.com"})
		sub.handlers[events.UserRegistered](&events.Message{Subject: events.UserRegistered, Data: []byte("{not json")})
	})
	assert.Len(t, m.sent, 1)
}
