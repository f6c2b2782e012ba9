//go:build test
// +build test

package jobqueue

import (
	"time"
)

// TestJobFactory creates test jobs for different types
func TestJobFactory() map[JobType]*Job {
	now := time.Now()

	return map[JobType]*Job{
		JobTypeSendEmail: {
			ID:     "test-email-job",
			Type:   JobTypeSendEmail,
			Status: JobStatusPending,
			Payload: SendEmailJobPayload{
				TemplateID: "d-test",
				To:         "client@example.org",
				Data:       map[string]interface{}{"checkout_id": 1},
			}.ToMap(),
			CreatedAt:  now,
			UpdatedAt:  now,
			RetryCount: 0,
			MaxRetries: DefaultMaxRetries,
		},
	}
}

// WaitForCondition waits for a condition to be true with timeout
func WaitForCondition(condition func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}
