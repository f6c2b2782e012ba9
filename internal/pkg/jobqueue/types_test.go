package jobqueue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/AboCheckout/internal/pkg/mail"
)

func TestJobStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   JobStatus
		expected string
	}{
		{"Pending", JobStatusPending, "pending"},
		{"Processing", JobStatusProcessing, "processing"},
		{"Completed", JobStatusCompleted, "completed"},
		{"Failed", JobStatusFailed, "failed"},
		{"Retrying", JobStatusRetrying, "retrying"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.status))
		})
	}
	assert.Equal(t, "send_email", string(JobTypeSendEmail))
}

func TestJob_IsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		job       *Job
		retryable bool
	}{
		{"Failed job with retries remaining", &Job{Status: JobStatusFailed, RetryCount: 1, MaxRetries: 3}, true},
		{"Failed job with no retries remaining", &Job{Status: JobStatusFailed, RetryCount: 3, MaxRetries: 3}, false},
		{"Completed job", &Job{Status: JobStatusCompleted, RetryCount: 1, MaxRetries: 3}, false},
		{"Pending job", &Job{Status: JobStatusPending, RetryCount: 0, MaxRetries: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.job.IsRetryable())
		})
	}
}

func TestJob_StatusTransitions(t *testing.T) {
	job := &Job{Status: JobStatusPending, MaxRetries: 3}

	beforeTime := time.Now()
	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	require.NotNil(t, job.ProcessedAt)
	assert.False(t, job.ProcessedAt.Before(beforeTime))

	job.MarkAsFailed("smtp timeout")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "smtp timeout", job.ErrorMsg)
	assert.Equal(t, 1, job.RetryCount)
	assert.True(t, job.IsRetryable())

	job.MarkAsRetrying()
	assert.Equal(t, JobStatusRetrying, job.Status)

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
	assert.Empty(t, job.ErrorMsg)
}

func TestSendEmailJobPayload_ToMap(t *testing.T) {
	payload := SendEmailJobPayload{TemplateID: "d-1", To: "a@example.org"}
	assert.Equal(t, map[string]interface{}{"template_id": "d-1", "to": "a@example.org"}, payload.ToMap())

	payload.ToName = "A"
	payload.Categories = []string{"checkout"}
	m := payload.ToMap()
	assert.Equal(t, "A", m["to_name"])
	assert.Equal(t, []string{"checkout"}, m["categories"])
}

func TestSendEmailJobPayload_ThroughJob(t *testing.T) {
	n := mail.Notification{
		TemplateID: "d-paid",
		Categories: []string{"checkout", "cb/paid"},
		To:         "jane@example.org",
		ToName:     "Jane Doe",
		Data:       map[string]interface{}{"checkout_id": 42, "price": "12.50"},
	}

	job := &Job{ID: "j1", Type: JobTypeSendEmail, Payload: SendEmailJobPayloadFromNotification(n).ToMap()}
	raw, err := json.Marshal(job)
	require.NoError(t, err)

	var stored Job
	require.NoError(t, json.Unmarshal(raw, &stored))

	payload, err := SendEmailJobPayloadFromMap(stored.Payload)
	require.NoError(t, err)
	got := payload.Notification()
	assert.Equal(t, n.TemplateID, got.TemplateID)
	assert.Equal(t, n.Categories, got.Categories)
	assert.Equal(t, n.ToName, got.ToName)
	// numbers come back as float64 after the JSON hop
	assert.Equal(t, float64(42), got.Data["checkout_id"])
	assert.Equal(t, "12.50", got.Data["price"])
}

func TestSendEmailJobPayloadFromMap_InvalidData(t *testing.T) {
	payload, err := SendEmailJobPayloadFromMap(map[string]interface{}{"invalid": make(chan int)})
	assert.Error(t, err)
	assert.Nil(t, payload)

	payload, err = SendEmailJobPayloadFromMap(map[string]interface{}{"to": 12})
	assert.Error(t, err)
	assert.Nil(t, payload)
}
