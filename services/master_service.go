// services/master_service.go
package services

import (
	"errors"

	"gorm.io/gorm"

	"barbershop-backend/apperrors"
	"barbershop-backend/models"
)

type MasterService struct {
	db *gorm.DB
}

func NewMasterService(db *gorm.DB) *MasterService {
	return &MasterService{db: db}
}

// ListActive returns the masters shown on the public site.
func (s *MasterService) ListActive() ([]models.Master, error) {
	var masters []models.Master
	err := s.db.Where("is_active = ?", true).Order("name").Find(&masters).Error
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return masters, nil
}

// GetWithDetails loads a master with services and published reviews for
// the profile page.
func (s *MasterService) GetWithDetails(id uint) (*models.Master, error) {
	var master models.Master
	err := s.db.
		Preload("Services").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("created_at DESC")
		}).
		First(&master, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("master")
		}
		return nil, apperrors.Database(err)
	}
	return &master, nil
}

// IncrementViewCount bumps the profile counter in place, so concurrent
// views never lose an increment to read-modify-write races.
func (s *MasterService) IncrementViewCount(id uint) error {
	err := s.db.Model(&models.Master{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	if err != nil {
		return apperrors.Database(err)
	}
	return nil
}

// ServicesOf returns the services a master offers (order form AJAX).
func (s *MasterService) ServicesOf(id uint) ([]models.Service, error) {
	var master models.Master
	if err := s.db.First(&master, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("master")
		}
		return nil, apperrors.Database(err)
	}

	var services []models.Service
	if err := s.db.Model(&master).Association("Services").Find(&services); err != nil {
		return nil, apperrors.Database(err)
	}
	return services, nil
}

// CountActive backs the thanks page counter.
func (s *MasterService) CountActive() (int64, error) {
	var count int64
	err := s.db.Model(&models.Master{}).Where("is_active = ?", true).Count(&count).Error
	if err != nil {
		return 0, apperrors.Database(err)
	}
	return count, nil
}

// Create persists a master and links the offered services.
func (s *MasterService) Create(master *models.Master, serviceIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(master).Error; err != nil {
			return apperrors.Database(err)
		}
		if len(serviceIDs) == 0 {
			return nil
		}
		var services []models.Service
		if err := tx.Where("id IN ?", serviceIDs).Find(&services).Error; err != nil {
			return apperrors.Database(err)
		}
		if err := tx.Model(master).Association("Services").Append(&services); err != nil {
			return apperrors.Database(err)
		}
		return nil
	})
}

// ReplaceServices swaps the master's offered service set.
func (s *MasterService) ReplaceServices(master *models.Master, serviceIDs []uint) error {
	var services []models.Service
	if len(serviceIDs) > 0 {
		if err := s.db.Where("id IN ?", serviceIDs).Find(&services).Error; err != nil {
			return apperrors.Database(err)
		}
	}
	if err := s.db.Model(master).Association("Services").Replace(&services); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

// Delete removes a master together with their reviews; orders keep their
// rows and lose only the master reference. One transaction so a crash
// cannot leave reviews pointing at a deleted master.
func (s *MasterService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var master models.Master
		if err := tx.First(&master, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("master")
			}
			return apperrors.Database(err)
		}

		if err := tx.Where("master_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return apperrors.Database(err)
		}
		if err := tx.Model(&models.Order{}).Where("master_id = ?", id).
			Update("master_id", nil).Error; err != nil {
			return apperrors.Database(err)
		}
		if err := tx.Model(&master).Association("Services").Clear(); err != nil {
			return apperrors.Database(err)
		}
		if err := tx.Delete(&master).Error; err != nil {
			return apperrors.Database(err)
		}
		return nil
	})
}
