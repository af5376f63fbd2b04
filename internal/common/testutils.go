package common

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

// TestRabbitMQ starts a RabbitMQ container for the duration of the test and
// returns its AMQP URL. It skips the test in short mode.
func TestRabbitMQ(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping RabbitMQ container in short mode")
	}

	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.12.11-management-alpine", rabbitmq.WithAdminUsername("guest"), rabbitmq.WithAdminPassword("guest"))
	if err != nil {
		t.Fatalf("could not start rabbitmq container: %v", err)
	}

	connURL, err := container.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("could not get rabbitmq connection URL: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("could not terminate container: %v", err)
		}
	})

	return connURL
}
