package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-backend/apperrors"
	"barbershop-backend/models"
)

func TestDeleteMasterCascadesReviewsKeepsOrders(t *testing.T) {
	db := openTestDB(t)
	svc := NewMasterService(db)

	master := createMaster(t, db, "Борис")
	other := createMaster(t, db, "Иван")

	require.NoError(t, db.Create(&models.Review{
		Text: "отлично", Rating: 5, MasterID: master.ID, IsPublished: true,
	}).Error)
	require.NoError(t, db.Create(&models.Review{
		Text: "чужой отзыв", Rating: 4, MasterID: other.ID, IsPublished: true,
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		ClientName: "Иванов", Phone: "+79001234567", MasterID: &master.ID,
	}).Error)

	require.NoError(t, svc.Delete(master.ID))

	var masterCount int64
	db.Model(&models.Master{}).Where("id = ?", master.ID).Count(&masterCount)
	assert.Equal(t, int64(0), masterCount)

	// Reviews cannot outlive their master.
	var reviewCount int64
	db.Model(&models.Review{}).Where("master_id = ?", master.ID).Count(&reviewCount)
	assert.Equal(t, int64(0), reviewCount)

	var otherReviews int64
	db.Model(&models.Review{}).Where("master_id = ?", other.ID).Count(&otherReviews)
	assert.Equal(t, int64(1), otherReviews, "other masters' reviews stay")

	// Orders survive with the reference cleared.
	var order models.Order
	require.NoError(t, db.First(&order).Error)
	assert.Nil(t, order.MasterID)
}

func TestDeleteMasterNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewMasterService(db)

	err := svc.Delete(12345)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestIncrementViewCount(t *testing.T) {
	db := openTestDB(t)
	svc := NewMasterService(db)
	master := createMaster(t, db, "Борис")

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.IncrementViewCount(master.ID))
	}

	var stored models.Master
	require.NoError(t, db.First(&stored, master.ID).Error)
	assert.Equal(t, 3, stored.ViewCount)
}

func TestGetWithDetailsFiltersUnpublishedReviews(t *testing.T) {
	db := openTestDB(t)
	svc := NewMasterService(db)
	master := createMaster(t, db, "Борис")

	require.NoError(t, db.Create(&models.Review{
		Text: "виден", Rating: 5, MasterID: master.ID, IsPublished: true,
	}).Error)
	require.NoError(t, db.Create(&models.Review{
		Text: "скрыт", Rating: 1, MasterID: master.ID, IsPublished: false,
	}).Error)

	loaded, err := svc.GetWithDetails(master.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Reviews, 1)
	assert.Equal(t, "виден", loaded.Reviews[0].Text)
}

func TestMasterServicesRoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := NewMasterService(db)
	haircut := createService(t, db, "Стрижка")
	shave := createService(t, db, "Бритье")

	master := &models.Master{Name: "Борис", Phone: "+79001234567", IsActive: true}
	require.NoError(t, svc.Create(master, []uint{haircut.ID}))

	list, err := svc.ServicesOf(master.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Стрижка", list[0].Name)

	require.NoError(t, svc.ReplaceServices(master, []uint{shave.ID}))
	list, err = svc.ServicesOf(master.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Бритье", list[0].Name)
}

func TestMasterDeletionDoesNotBreakOrderIntake(t *testing.T) {
	db := openTestDB(t)
	masters := NewMasterService(db)
	notifier := &fakeNotifier{}
	orders := NewOrderService(db, newTestGateway(db, notifier), "http://127.0.0.1:8080/admin")

	master := createMaster(t, db, "Борис")
	haircut := createService(t, db, "Стрижка")

	order, err := orders.SubmitOrder(context.Background(), OrderInput{
		ClientName: "Иванов",
		Phone:      "+79001234567",
		MasterID:   &master.ID,
		ServiceIDs: []uint{haircut.ID},
	})
	require.NoError(t, err)

	require.NoError(t, masters.Delete(master.ID))

	reloaded, err := orders.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.MasterID)
	require.Len(t, reloaded.Services, 1)
}
