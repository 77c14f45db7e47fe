// Package jobs defines background task types and the Asynq worker
// that processes them.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeDeliverNotification is the task type for delivering a
	// stored notification to its addressee (email, push, websocket).
	TaskTypeDeliverNotification = "notification:deliver"
)

// DeliverNotificationPayload identifies the notification to deliver.
// It carries ids only; the handler re-reads current state so a
// notification deleted before delivery is simply skipped.
type DeliverNotificationPayload struct {
	NotificationID string `json:"notification_id"`
	TenantID       string `json:"tenant_id"`
	UserID         string `json:"user_id"`
	Subject        string `json:"subject"`
}

// NewDeliverNotificationTask constructs an Asynq task.
func NewDeliverNotificationTask(payload DeliverNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDeliverNotification, data), nil
}

// DeliverNotificationHandler returns the handler for delivery tasks.
func DeliverNotificationHandler(logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload DeliverNotificationPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		// Placeholder transport: log-only delivery. SMTP/webpush wiring
		// slots in here without changing the task contract.
		if logger != nil {
			logger.Info("deliver notification",
				slog.String("notification_id", payload.NotificationID),
				slog.String("tenant_id", payload.TenantID),
				slog.String("user_id", payload.UserID),
				slog.String("subject", payload.Subject))
		}
		return nil
	}
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueDelivery enqueues a notification delivery task.
func (c *Client) EnqueueDelivery(ctx context.Context, payload DeliverNotificationPayload) error {
	task, err := NewDeliverNotificationTask(payload)
	if err != nil {
		return fmt.Errorf("jobs: build delivery task: %w", err)
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault)); err != nil {
		return fmt.Errorf("jobs: enqueue delivery: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	return c.client.Close()
}
