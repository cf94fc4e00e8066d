// controllers/review.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barbershop-backend/logger"
	"barbershop-backend/services"
	"barbershop-backend/utils"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

type CreateReviewInput struct {
	ClientName string `json:"client_name"`
	Text       string `json:"text" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	MasterID   uint   `json:"master_id" binding:"required"`
	Photo      string `json:"photo"`
}

// CreateReview is the public review form submission
func (ctl *ReviewController) CreateReview(c *gin.Context) {
	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	review, err := ctl.reviews.SubmitReview(c.Request.Context(), services.ReviewInput{
		ClientName: input.ClientName,
		Text:       input.Text,
		Rating:     input.Rating,
		MasterID:   input.MasterID,
		Photo:      input.Photo,
	})
	if err != nil {
		// Moderation outage: the review is saved unpublished, so the
		// customer still gets a confirmation.
		if review != nil && errors.Is(err, services.ErrModerationUnavailable) {
			logger.Warn("review accepted without moderation", "review_id", review.ID, "error", err)
		} else {
			utils.RespondAppError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"review":   review,
		"message":  "Ваш отзыв успешно добавлен! Он будет опубликован после проверки модератором.",
		"redirect": "/thanks/review",
	})
}

// GetReviews lists published reviews, optionally for one master
func (ctl *ReviewController) GetReviews(c *gin.Context) {
	var masterID uint
	if raw := c.Query("master_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid master_id format")
			return
		}
		masterID = uint(parsed)
	}

	reviews, err := ctl.reviews.ListPublished(masterID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
