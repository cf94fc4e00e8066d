package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"barbershop-backend/models"
)

// openTestDB gives each test its own in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps every session on the same in-memory db.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Master{},
		&models.Order{},
		&models.Review{},
		&models.NotificationLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

type fakeModerator struct {
	scores map[string]float64
	err    error
}

func (f *fakeModerator) Classify(_ context.Context, _ string) (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (f *fakeNotifier) Name() string { return "fake" }

func (f *fakeNotifier) Send(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("channel down")
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeNotifier) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// newTestGateway builds a synchronous NotificationService so tests can
// assert delivery deterministically.
func newTestGateway(db *gorm.DB, notifier Notifier) *NotificationService {
	gateway := NewNotificationService(db, notifier, 3)
	gateway.async = false
	gateway.retryBase = 0
	return gateway
}

func notificationCount(t *testing.T, db *gorm.DB, kind string) int64 {
	t.Helper()
	var count int64
	err := db.Model(&models.NotificationLog{}).Where("kind = ?", kind).Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}
