package tasks

import (
	"encoding/json"
	"time"

	"healthhub/config"
	"healthhub/models"

	"github.com/hibiken/asynq"
)

// TypeSendReminder is the asynq task type for appointment reminders.
const TypeSendReminder = "reminder:send"

// NewReminderTask builds the queued task for one appointment reminder,
// scheduled to fire at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// NewQueueClient returns an asynq client on the reminder queue database.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
}
