package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-backend/models"
)

func TestDispatchRecordsSuccessfulDelivery(t *testing.T) {
	db := openTestDB(t)
	notifier := &fakeNotifier{}
	gateway := newTestGateway(db, notifier)

	gateway.Dispatch(models.NotificationKindOrder, "hello")

	var entry models.NotificationLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, models.NotificationSent, entry.Status)
	assert.Equal(t, 1, entry.Attempts)
	assert.NotNil(t, entry.SentAt)
	assert.Empty(t, entry.LastError)
	assert.Equal(t, "fake", entry.Channel)
}

func TestDispatchFailureIsSwallowedAndLogged(t *testing.T) {
	db := openTestDB(t)
	notifier := &fakeNotifier{fail: true}
	gateway := newTestGateway(db, notifier)

	// Must not panic or propagate anything to the caller.
	gateway.Dispatch(models.NotificationKindReview, "hello")

	var entry models.NotificationLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, models.NotificationFailed, entry.Status)
	assert.Equal(t, 1, entry.Attempts)
	assert.Equal(t, "channel down", entry.LastError)
	assert.Nil(t, entry.SentAt)
}

func TestRetryFailedRedelivers(t *testing.T) {
	db := openTestDB(t)
	notifier := &fakeNotifier{fail: true}
	gateway := newTestGateway(db, notifier)

	gateway.Dispatch(models.NotificationKindOrder, "hello")
	require.Equal(t, 0, notifier.sentCount())

	// Channel comes back; the sweeper delivers the backlog.
	notifier.fail = false
	gateway.RetryFailed()

	var entry models.NotificationLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, models.NotificationSent, entry.Status)
	assert.Equal(t, 2, entry.Attempts)
	assert.Equal(t, 1, notifier.sentCount())
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	db := openTestDB(t)
	notifier := &fakeNotifier{fail: true}
	gateway := newTestGateway(db, notifier) // maxAttempts = 3

	gateway.Dispatch(models.NotificationKindOrder, "hello")
	gateway.RetryFailed()
	gateway.RetryFailed()

	var entry models.NotificationLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, models.NotificationDead, entry.Status)
	assert.Equal(t, 3, entry.Attempts)

	// Dead rows are never picked up again.
	gateway.RetryFailed()
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, 3, entry.Attempts)
}

func TestRetryRespectsBackoffWindow(t *testing.T) {
	db := openTestDB(t)
	notifier := &fakeNotifier{fail: true}
	gateway := newTestGateway(db, notifier)
	gateway.retryBase = 10 * time.Minute

	gateway.Dispatch(models.NotificationKindOrder, "hello")
	notifier.fail = false

	// The first failure just happened; the backoff window is still open.
	gateway.RetryFailed()

	var entry models.NotificationLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, models.NotificationFailed, entry.Status)
	assert.Equal(t, 1, entry.Attempts)
}
