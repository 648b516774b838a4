package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskUserEvent is the job type name stored in Redis.
	TaskUserEvent = "user:event"
)

// UserEventType names a user lifecycle transition.
type UserEventType string

const (
	UserCreated UserEventType = "created"
	UserUpdated UserEventType = "updated"
	UserDeleted UserEventType = "deleted"
)

// UserEventPayload is the JSON payload of a user lifecycle task.
//
// The password is deliberately absent.
type UserEventPayload struct {
	Type       UserEventType `json:"type"`
	UserID     int64         `json:"user_id"`
	Name       string        `json:"name,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewUserEventTask constructs the asynq task for a lifecycle event.
//
// Events go to the "low" queue and are retried a few times; they are an
// audit trail and never block the request that produced them.
func NewUserEventTask(event UserEventPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskUserEvent,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(10*time.Second),
	), nil
}
