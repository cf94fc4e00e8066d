package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barbershop-backend/utils"
)

// parseIDParam reads the :id route parameter. On failure it has already
// written the 400 response.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}
