package messaging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/gofiber/fiber/v2/log"
)

type sqsSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSDispatcher publishes one SQS message per event
type SQSDispatcher struct {
	client    sqsSender
	queueURLs map[Channel]string
	cfg       *Config
}

// NewSQSDispatcher creates an SQS client with static credentials
func NewSQSDispatcher(cfg *Config) (*SQSDispatcher, error) {
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sqs.NewFromConfig(awsConfig, func(o *sqs.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	})

	log.Infof("[SQS] Dispatcher initialized for %d queues in %s", len(cfg.Destinations), cfg.Region)
	return &SQSDispatcher{client: client, queueURLs: cfg.Destinations, cfg: cfg}, nil
}

func (d *SQSDispatcher) Publish(ctx context.Context, channel Channel, payload interface{}) error {
	queueURL, ok := d.queueURLs[channel]
	if !ok || queueURL == "" {
		return fmt.Errorf("no queue configured for channel %s", channel)
	}

	envelope := NewEnvelope(channel, queueURL, payload)
	body, err := envelope.Marshal()
	if err != nil {
		return err
	}

	if d.cfg != nil && d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	out, err := d.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"producer_id": {
				DataType:    aws.String("String"),
				StringValue: aws.String(envelope.MessageID),
			},
		},
	})
	if err != nil {
		log.Errorf("[SQS] Failed to publish %s on %s: %v", envelope.MessageID, channel, err)
		return fmt.Errorf("sqs publish to %s failed: %w", channel, err)
	}

	log.Infof("[SQS] Published %s on %s (sqs id %s)", envelope.MessageID, channel, aws.ToString(out.MessageId))
	return nil
}
