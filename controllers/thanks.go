// controllers/thanks.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/services"
	"barbershop-backend/utils"
)

type ThanksController struct {
	masters *services.MasterService
}

func NewThanksController(masters *services.MasterService) *ThanksController {
	return &ThanksController{masters: masters}
}

// Thanks backs the confirmation page shown after a form submission
func (ctl *ThanksController) Thanks(c *gin.Context) {
	count, err := ctl.masters.CountActive()
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	var sourceMessage string
	switch c.Param("source") {
	case "order":
		sourceMessage = "Ваш заказ успешно создан и принят в обработку"
	case "review":
		sourceMessage = "Ваш отзыв успешно отправлен и будет опубликован после модерации"
	default:
		sourceMessage = "Спасибо за посещение!"
	}

	c.JSON(http.StatusOK, gin.H{
		"masters_count":      count,
		"additional_message": "Спасибо, что выбрали нас!",
		"source_message":     sourceMessage,
	})
}
