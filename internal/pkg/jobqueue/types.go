package jobqueue

import (
	"encoding/json"
	"time"

	"github.com/ManuelReschke/AboCheckout/internal/pkg/mail"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeSendEmail JobType = "send_email"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// SendEmailJobPayload carries one transactional email
type SendEmailJobPayload struct {
	TemplateID string                 `json:"template_id"`
	Categories []string               `json:"categories,omitempty"`
	To         string                 `json:"to"`
	ToName     string                 `json:"to_name,omitempty"`
	Subject    string                 `json:"subject,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// SendEmailJobPayloadFromNotification copies a notification into a job payload
func SendEmailJobPayloadFromNotification(n mail.Notification) SendEmailJobPayload {
	return SendEmailJobPayload{
		TemplateID: n.TemplateID,
		Categories: n.Categories,
		To:         n.To,
		ToName:     n.ToName,
		Subject:    n.Subject,
		Data:       n.Data,
	}
}

// ToMap converts the payload to a map for storage
func (p SendEmailJobPayload) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"template_id": p.TemplateID,
		"to":          p.To,
	}
	if len(p.Categories) > 0 {
		m["categories"] = p.Categories
	}
	if p.ToName != "" {
		m["to_name"] = p.ToName
	}
	if p.Subject != "" {
		m["subject"] = p.Subject
	}
	if len(p.Data) > 0 {
		m["data"] = p.Data
	}
	return m
}

// Notification converts the payload back for a mail.Sender
func (p SendEmailJobPayload) Notification() mail.Notification {
	return mail.Notification{
		TemplateID: p.TemplateID,
		Categories: p.Categories,
		To:         p.To,
		ToName:     p.ToName,
		Subject:    p.Subject,
		Data:       p.Data,
	}
}

// SendEmailJobPayloadFromMap creates a payload from a map
func SendEmailJobPayloadFromMap(data map[string]interface{}) (*SendEmailJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload SendEmailJobPayload
	if err := json.Unmarshal(jsonData, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// IsRetryable checks if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
