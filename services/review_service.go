// services/review_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"barbershop-backend/apperrors"
	"barbershop-backend/logger"
	"barbershop-backend/models"
)

// ErrModerationUnavailable marks a review that was accepted but could not
// be moderated. The review stays unpublished until staff look at it.
var ErrModerationUnavailable = errors.New("moderation service unavailable")

type ReviewInput struct {
	ClientName string
	Text       string
	Rating     int
	MasterID   uint
	Photo      string
}

type ReviewService struct {
	db            *gorm.DB
	moderator     Moderator
	notifications *NotificationService
	thresholds    map[string]float64
	adminBaseURL  string
}

func NewReviewService(db *gorm.DB, moderator Moderator, notifications *NotificationService, thresholds map[string]float64, adminBaseURL string) *ReviewService {
	return &ReviewService{
		db:            db,
		moderator:     moderator,
		notifications: notifications,
		thresholds:    thresholds,
		adminBaseURL:  adminBaseURL,
	}
}

// SubmitReview runs the review intake workflow:
// validate -> persist unpublished -> moderate -> persist decision -> notify
// if published.
//
// When the moderation call itself fails the review stays unpublished
// (fail-closed) and the returned error carries ErrModerationUnavailable
// together with the persisted review, so the handler can confirm receipt
// while surfacing the dependency failure.
func (s *ReviewService) SubmitReview(ctx context.Context, input ReviewInput) (*models.Review, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Text) == "" {
		fields["text"] = "Текст отзыва обязателен"
	}
	if input.Rating < 1 || input.Rating > 5 {
		fields["rating"] = "Оценка должна быть от 1 до 5"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation("Проверьте ввод данных", fields)
	}

	var master models.Master
	if err := s.db.First(&master, input.MasterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("master")
		}
		return nil, apperrors.Database(err)
	}

	review := &models.Review{
		Text:        input.Text,
		ClientName:  input.ClientName,
		Rating:      input.Rating,
		MasterID:    master.ID,
		Photo:       input.Photo,
		IsPublished: false,
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, apperrors.Database(err)
	}

	scores, err := s.moderator.Classify(ctx, review.Text)
	if err != nil {
		logger.Error("moderation call failed", "review_id", review.ID, "error", err)
		return review, apperrors.External(
			fmt.Errorf("%w: %v", ErrModerationUnavailable, err),
			"review accepted, moderation pending",
		)
	}

	if Acceptable(scores, s.thresholds) {
		review.IsPublished = true
		if err := s.db.Model(review).Update("is_published", true).Error; err != nil {
			return review, apperrors.Database(err)
		}
		s.notifications.Dispatch(models.NotificationKindReview, s.reviewMessage(review))
	} else {
		// Explicit and idempotent: created unpublished, stays unpublished.
		if err := s.db.Model(review).Update("is_published", false).Error; err != nil {
			return review, apperrors.Database(err)
		}
		logger.Info("review held back by moderation",
			"review_id", review.ID,
			"client", review.ClientName,
		)
	}

	return review, nil
}

// ListPublished returns published reviews, newest first, optionally
// filtered by master.
func (s *ReviewService) ListPublished(masterID uint) ([]models.Review, error) {
	query := s.db.Where("is_published = ?", true).Order("created_at DESC")
	if masterID != 0 {
		query = query.Where("master_id = ?", masterID)
	}
	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, apperrors.Database(err)
	}
	return reviews, nil
}

func (s *ReviewService) reviewMessage(r *models.Review) string {
	name := r.ClientName
	if name == "" {
		name = "Аноним"
	}
	return fmt.Sprintf(`*Новый отзыв от клиента!*

*Имя:* %s
*Текст:* %s
*Оценка:* %d
*Ссылка на отзыв:* %s/reviews/%d

#отзыв`, name, r.Text, r.Rating, s.adminBaseURL, r.ID)
}
