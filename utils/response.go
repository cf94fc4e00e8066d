// utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop-backend/apperrors"
)

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondAppError maps an application error onto the HTTP response. Unknown
// error types become a plain 500.
func RespondAppError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		c.JSON(appErr.HTTPCode, gin.H{"error": appErr})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
