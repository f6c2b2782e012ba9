package jobqueue

import (
	"context"
	"fmt"

	"github.com/ManuelReschke/AboCheckout/internal/pkg/mail"
)

// QueuedSender implements mail.Sender by enqueueing a send_email job.
// Delivery and retries happen in the queue workers.
type QueuedSender struct {
	queue *Queue
}

func NewQueuedSender(queue *Queue) *QueuedSender {
	return &QueuedSender{queue: queue}
}

func (s *QueuedSender) Send(ctx context.Context, n mail.Notification) error {
	if n.To == "" {
		return mail.ErrNoRecipient
	}

	payload := SendEmailJobPayloadFromNotification(n)
	if _, err := s.queue.EnqueueJob(ctx, JobTypeSendEmail, payload.ToMap()); err != nil {
		return fmt.Errorf("failed to queue email for %s: %w", n.To, err)
	}
	return nil
}
