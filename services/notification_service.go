// services/notification_service.go
package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"barbershop-backend/logger"
	"barbershop-backend/models"
)

// NotificationService is the gateway in front of the configured Notifier.
// Every dispatch writes a NotificationLog row; delivery happens off the
// caller's critical path and failed rows are retried by the cron sweeper
// until the attempt budget runs out.
type NotificationService struct {
	db          *gorm.DB
	notifier    Notifier
	maxAttempts int
	retryBase   time.Duration

	// async is disabled in tests so deliveries are deterministic.
	async bool
}

func NewNotificationService(db *gorm.DB, notifier Notifier, maxAttempts int) *NotificationService {
	if maxAttempts < 1 {
		maxAttempts = 5
	}
	return &NotificationService{
		db:          db,
		notifier:    notifier,
		maxAttempts: maxAttempts,
		retryBase:   time.Minute,
		async:       true,
	}
}

// Dispatch records the message and delivers it. Failures are logged and
// retried later; they never reach the intake workflows.
func (s *NotificationService) Dispatch(kind, message string) {
	entry := &models.NotificationLog{
		Kind:    kind,
		Channel: s.notifier.Name(),
		Message: message,
		Status:  models.NotificationPending,
	}
	if err := s.db.Create(entry).Error; err != nil {
		logger.Error("failed to record notification", "kind", kind, "error", err)
		return
	}

	if s.async {
		go s.deliver(entry.ID)
	} else {
		s.deliver(entry.ID)
	}
}

func (s *NotificationService) deliver(id uint) {
	var entry models.NotificationLog
	if err := s.db.First(&entry, id).Error; err != nil {
		logger.Error("notification log row missing", "id", id, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sendErr := s.notifier.Send(ctx, entry.Message)
	entry.Attempts++

	if sendErr != nil {
		entry.Status = models.NotificationFailed
		if entry.Attempts >= s.maxAttempts {
			entry.Status = models.NotificationDead
		}
		entry.LastError = sendErr.Error()
		logger.Error("notification delivery failed",
			"id", entry.ID,
			"channel", entry.Channel,
			"attempts", entry.Attempts,
			"status", entry.Status,
			"error", sendErr,
		)
	} else {
		now := time.Now()
		entry.Status = models.NotificationSent
		entry.SentAt = &now
		entry.LastError = ""
	}

	if err := s.db.Save(&entry).Error; err != nil {
		logger.Error("failed to update notification log", "id", entry.ID, "error", err)
	}
}

// RetryFailed redelivers failed notifications whose backoff window has
// passed. Attempt N waits N*retryBase after the previous failure.
func (s *NotificationService) RetryFailed() {
	var entries []models.NotificationLog
	err := s.db.
		Where("status = ? AND attempts < ?", models.NotificationFailed, s.maxAttempts).
		Find(&entries).Error
	if err != nil {
		logger.Error("failed to load failed notifications", "error", err)
		return
	}

	now := time.Now()
	for _, entry := range entries {
		due := entry.UpdatedAt.Add(time.Duration(entry.Attempts) * s.retryBase)
		if due.After(now) {
			continue
		}
		s.deliver(entry.ID)
	}
}

// StartRetryScheduler runs the dead-letter sweeper on the given cron spec.
func (s *NotificationService) StartRetryScheduler(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, s.RetryFailed); err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("notification retry scheduler started", "spec", spec)
	return c, nil
}
