package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleUserEventTask records a user lifecycle event in the audit log.
//
// A malformed payload is skipped with asynq.SkipRetry since retrying
// cannot fix it.
func (j *JobService) handleUserEventTask(ctx context.Context, t *asynq.Task) error {
	var p UserEventPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal user event payload: %v: %w", err, asynq.SkipRetry)
	}

	taskID, _ := asynq.GetTaskID(ctx)

	j.logger.Info().
		Str("task_id", taskID).
		Str("type", string(p.Type)).
		Int64("user_id", p.UserID).
		Str("name", p.Name).
		Time("occurred_at", p.OccurredAt).
		Msg("user lifecycle event")

	return nil
}
