package cron

import (
	"context"
	"encoding/json"
	"time"

	"healthhub/config"
	appointmentRepo "healthhub/database/repository/appointment"
	"healthhub/models"
	"healthhub/services/notification"
	"healthhub/services/tasks"
	"healthhub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the reminder queue consumer in the background. It
// delivers the push and marks the reminder sent on the appointment so it is
// never delivered twice.
func InitReminderWorker(notifSvc notification.NotificationService, appts appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, appts))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting reminder worker")

		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker failed to start",
				zap.Int("attempt", attempt), zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("reminder worker exhausted start attempts")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService, appts appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		// The booking may have been cancelled after the reminder was queued.
		appt, err := appts.GetByID(p.AppointmentID)
		if err != nil {
			return err
		}
		if appt == nil || !appt.IsOccupying() {
			logger.Info("dropping reminder for inactive appointment",
				zap.String("appointmentId", p.AppointmentID))
			return nil
		}

		// A reschedule rebuilds the reminder plan without dequeuing the tasks
		// of the old slot. A queued task whose fire time no longer matches the
		// reminder it indexes belongs to that old plan and must not fire.
		if stale, reason := staleReminder(appt.Reminders, p); stale {
			logger.Info("dropping stale reminder",
				zap.String("appointmentId", p.AppointmentID),
				zap.Int("reminderIndex", p.ReminderIndex),
				zap.String("reason", reason))
			return nil
		}

		data := map[string]string{
			"appointmentId": p.AppointmentID,
			"fireDate":      p.FireDate,
		}
		if err := notifSvc.SendPush(ctx, p.PatientID, p.Title, p.Body, data); err != nil {
			logger.Error("failed to deliver reminder",
				zap.String("appointmentId", p.AppointmentID), zap.Error(err))
			return err
		}

		if err := appts.MarkReminderSent(p.AppointmentID, p.ReminderIndex); err != nil {
			logger.Warn("failed to mark reminder sent",
				zap.String("appointmentId", p.AppointmentID), zap.Error(err))
		}
		return nil
	}
}

// staleReminder reports whether the queued payload still lines up with the
// appointment's current reminder plan. FireDate is compared at second
// precision, matching the RFC3339 formatting used when the task was built.
func staleReminder(reminders []models.Reminder, p models.ReminderPayload) (bool, string) {
	if p.ReminderIndex < 0 || p.ReminderIndex >= len(reminders) {
		return true, "index out of range"
	}
	current := reminders[p.ReminderIndex]
	if current.Sent {
		return true, "already sent"
	}
	fireAt, err := time.Parse(time.RFC3339, p.FireDate)
	if err != nil {
		return true, "unparseable fire date"
	}
	if !current.ScheduledFor.Truncate(time.Second).Equal(fireAt.Truncate(time.Second)) {
		return true, "fire time mismatch"
	}
	return false, ""
}
