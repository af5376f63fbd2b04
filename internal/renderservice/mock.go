package renderservice

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/contentfilter/internal/common"
)

// MockMessageConsumer delivers Bodies once and then closes the channel.
type MockMessageConsumer struct {
	mock.Mock
	Bodies []string
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	args := m.Called(key, exchange, queue)
	if err := args.Error(0); err != nil {
		return nil, err
	}

	msgsChan := make(chan amqp.Delivery)

	go func() {
		defer close(msgsChan)

		for _, body := range m.Bodies {
			msgsChan <- amqp.Delivery{Body: []byte(body)}
		}
	}()

	return msgsChan, nil
}

type PublishedMessage struct {
	Body     []byte
	Key      common.BindingKey
	Exchange common.Exchange
}

// MockMessageProducer records published messages. The first Failures calls
// return Err.
type MockMessageProducer struct {
	mu        sync.Mutex
	Failures  int
	Err       error
	Published []PublishedMessage
	calls     int
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.calls <= m.Failures {
		return m.Err
	}
	m.Published = append(m.Published, PublishedMessage{Body: msg, Key: key, Exchange: exchange})
	return nil
}

func (m *MockMessageProducer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockMessageProducer) Messages() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedMessage(nil), m.Published...)
}

type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Info(msg string, args ...any) {
	m.Called(msg, args)
}
