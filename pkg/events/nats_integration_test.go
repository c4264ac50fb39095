//go:build integration

package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startNATS(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "nats:2.10-alpine",
			ExposedPorts: []string{"4222/tcp"},
			WaitingFor:   wait.ForLog("Server is ready").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.PortEndpoint(ctx, "4222/tcp", "nats")
	require.NoError(t, err)
	return endpoint
}

func TestNATSEventBusRoundTrip(t *testing.T) {
	bus, err := NewNATSEventBus(startNATS(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })

	received := make(chan *Message, 1)
	require.NoError(t, bus.QueueSubscribe(CheckInValidated, "notify", func(msg *Message) {
		received <- msg
	}))

	validatedAt := time.Date(2023, time.January, 1, 13, 55, 0, 0, time.UTC)
	require.NoError(t, bus.Publish(context.Background(), CheckInValidated, CheckInValidatedEvent{
		CheckInID: "c1", UserID: "u1", UserEmail: "jane@example.com", GymID: "g1", ValidatedAt: validatedAt,
	}))

	select {
	case msg := <-received:
		var event CheckInValidatedEvent
		require.NoError(t, msg.Decode(&event))
		assert.Equal(t, CheckInValidated, msg.Subject)
		assert.NotEmpty(t, msg.ID)
		assert.Equal(t, "jane@example.com", event.UserEmail)
		assert.True(t, validatedAt.Equal(event.ValidatedAt))
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}
}
