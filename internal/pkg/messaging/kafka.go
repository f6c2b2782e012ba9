package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaDispatcher publishes to one topic per channel. Writers are created
// lazily and reused.
type KafkaDispatcher struct {
	brokers []string
	topics  map[Channel]string
	timeout time.Duration

	mu        sync.Mutex
	writers   map[Channel]messageWriter
	newWriter func(topic string) messageWriter
}

// NewKafkaDispatcher creates a dispatcher for the configured brokers
func NewKafkaDispatcher(cfg *Config) *KafkaDispatcher {
	brokers := []string{}
	for _, b := range strings.Split(cfg.KafkaBrokers, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	d := &KafkaDispatcher{
		brokers: brokers,
		topics:  cfg.Destinations,
		timeout: cfg.Timeout,
		writers: make(map[Channel]messageWriter),
	}
	d.newWriter = func(topic string) messageWriter {
		return &kafka.Writer{
			Addr:         kafka.TCP(d.brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		}
	}
	return d
}

func (d *KafkaDispatcher) writer(channel Channel) (messageWriter, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if w, ok := d.writers[channel]; ok {
		return w, nil
	}
	topic, ok := d.topics[channel]
	if !ok || topic == "" {
		return nil, fmt.Errorf("no topic configured for channel %s", channel)
	}
	w := d.newWriter(topic)
	d.writers[channel] = w
	return w, nil
}

func (d *KafkaDispatcher) Publish(ctx context.Context, channel Channel, payload interface{}) error {
	w, err := d.writer(channel)
	if err != nil {
		return err
	}

	envelope := NewEnvelope(channel, d.topics[channel], payload)
	body, err := envelope.Marshal()
	if err != nil {
		return err
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	msg := kafka.Message{
		Key:   []byte(envelope.MessageID),
		Value: body,
		Time:  envelope.SentAt,
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		log.Errorf("[Kafka] Failed to publish %s on %s: %v", envelope.MessageID, channel, err)
		return fmt.Errorf("kafka publish to %s failed: %w", channel, err)
	}

	log.Infof("[Kafka] Published %s on %s", envelope.MessageID, channel)
	return nil
}

// Close flushes and closes all writers
func (d *KafkaDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for ch, w := range d.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close writer for %s: %w", ch, err))
		}
	}
	d.writers = make(map[Channel]messageWriter)
	return errors.Join(errs...)
}
