package notifier

import (
	"context"
	"fmt"

	"github.com/diagnosis/gympass/pkg/events"
	"github.com/diagnosis/gympass/pkg/logger"
	"github.com/diagnosis/gympass/services/notify/internal/mailer"
	"github.com/prometheus/client_golang/prometheus"
)

const queueGroup = "notify"

var emailsSent = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gympass_notify_emails_total",
		Help: "Notification emails by subject and result",
	},
	[]string{"subject", "result"},
)

func init() {
	prometheus.MustRegister(emailsSent)
}

// Notifier turns domain events into emails.
type Notifier struct {
	mailer mailer.Service
}

func New(m mailer.Service) *Notifier {
	return &Notifier{mailer: m}
}

// Subscribe registers the handlers in a queue group so that replicas share the work.
func (n *Notifier) Subscribe(sub events.Subscriber) error {
	if err := sub.QueueSubscribe(events.UserRegistered, queueGroup, n.handle(n.userRegistered)); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.UserRegistered, err)
	}
	if err := sub.QueueSubscribe(events.CheckInValidated, queueGroup, n.handle(n.checkInValidated)); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.CheckInValidated, err)
	}
	return nil
}

func (n *Notifier) handle(fn func(ctx context.Context, msg *events.Message) error) func(*events.Message) {
	return func(msg *events.Message) {
		ctx := context.WithValue(context.Background(), logger.ServiceKey, "notify")
		if err := fn(ctx, msg); err != nil {
			emailsSent.WithLabelValues(msg.Subject, "error").Inc()
			logger.ErrorContext(ctx, "Failed to handle event", "subject", msg.Subject, "event_id", msg.ID, "error", err)
			return
		}
		emailsSent.WithLabelValues(msg.Subject, "sent").Inc()
	}
}

func (n *Notifier) userRegistered(ctx context.Context, msg *events.Message) error {
	var event events.UserRegisteredEvent
	if err := msg.Decode(&event); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return n.mailer.SendWelcomeEmail(ctx, event.Email, event.Name)
}

func (n *Notifier) checkInValidated(ctx context.Context, msg *events.Message) error {
	var event events.CheckInValidatedEvent
	if err := msg.Decode(&event); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if event.UserEmail == "" {
		logger.WarnContext(ctx, "Check-in validated event has no email, skipping", "check_in_id", event.CheckInID)
		return nil
	}
	return n.mailer.SendCheckInValidatedEmail(ctx, event.UserEmail, event.UserName, event.ValidatedAt)
}
