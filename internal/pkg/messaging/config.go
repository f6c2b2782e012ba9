package messaging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ManuelReschke/AboCheckout/internal/pkg/env"
)

const (
	BrokerSQS   = "sqs"
	BrokerKafka = "kafka"
)

// Config holds dispatcher configuration. Destinations maps every channel to a
// full SQS queue URL or a Kafka topic, depending on Broker.
type Config struct {
	Broker          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	EndpointURL     string // Optional, for localstack/elasticmq
	KafkaBrokers    string
	Destinations    map[Channel]string
	Timeout         time.Duration
}

// LoadConfig loads dispatcher configuration from environment variables.
// SQS queue URLs are composed as https://sqs.<AWS_AREA>.<AWS_URL_BASE><path>.
func LoadConfig() (*Config, error) {
	config := &Config{
		Broker:          strings.ToLower(env.GetEnv("MESSAGE_BROKER", BrokerSQS)),
		Region:          env.GetEnv("AWS_AREA", "eu-west-2"),
		AccessKeyID:     env.GetEnv("AWS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("AWS_ACCESS_KEY", ""),
		EndpointURL:     env.GetEnv("AWS_SQS_ENDPOINT_URL", ""),
		KafkaBrokers:    env.GetEnv("KAFKA_BROKERS", ""),
		Destinations:    make(map[Channel]string),
		Timeout:         env.GetEnvDuration("MESSAGE_TIMEOUT", 10*time.Second),
	}
	base := env.GetEnv("AWS_URL_BASE", "amazonaws.com/")

	for _, ch := range AllChannels() {
		path := env.GetEnv(ch.envKey(), "")
		if path == "" {
			return nil, fmt.Errorf("%s is required", ch.envKey())
		}
		switch config.Broker {
		case BrokerSQS:
			config.Destinations[ch] = fmt.Sprintf("https://sqs.%s.%s%s", config.Region, base, path)
		case BrokerKafka:
			config.Destinations[ch] = path
		}
	}

	switch config.Broker {
	case BrokerSQS:
		if config.AccessKeyID == "" || config.SecretAccessKey == "" {
			return nil, errors.New("AWS_KEY_ID and AWS_ACCESS_KEY are required for the sqs broker")
		}
	case BrokerKafka:
		if strings.TrimSpace(config.KafkaBrokers) == "" {
			return nil, errors.New("KAFKA_BROKERS is required for the kafka broker")
		}
	default:
		return nil, fmt.Errorf("unsupported MESSAGE_BROKER %q", config.Broker)
	}

	return config, nil
}
