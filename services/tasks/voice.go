package tasks

import (
	"encoding/json"
	"time"

	"servicehub/models"

	"github.com/hibiken/asynq"
)

const TypeProcessVoice = "voice:process"

func NewVoiceTask(payload models.VoiceTaskPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeProcessVoice, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Timeout(3 * time.Minute)}

	return task, opts, nil
}
