package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Dispatcher publishes events to Aboweb. Delivery is at-least-once; retries
// and backoff belong to the backend client.
type Dispatcher interface {
	Publish(ctx context.Context, channel Channel, payload interface{}) error
}

// Envelope is the JSON body written to the queue.
type Envelope struct {
	MessageID string      `json:"id"`
	QueueName string      `json:"queueName"`
	SentAt    time.Time   `json:"sentAt"`
	Payload   interface{} `json:"message"`
}

// NewEnvelope wraps a payload with a fresh message id.
func NewEnvelope(channel Channel, destination string, payload interface{}) Envelope {
	return Envelope{
		MessageID: channel.messageIDPrefix() + uuid.New().String(),
		QueueName: destination,
		SentAt:    time.Now().UTC(),
		Payload:   payload,
	}
}

func (e Envelope) Marshal() ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message %s: %w", e.MessageID, err)
	}
	return body, nil
}

// New creates the dispatcher selected by cfg.Broker
func New(cfg *Config) (Dispatcher, error) {
	switch cfg.Broker {
	case BrokerSQS:
		return NewSQSDispatcher(cfg)
	case BrokerKafka:
		return NewKafkaDispatcher(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported broker %q", cfg.Broker)
	}
}
