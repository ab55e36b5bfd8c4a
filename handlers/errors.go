package handlers

import (
	"errors"
	"net/http"

	"views-prediction-api/services"

	"github.com/gin-gonic/gin"
)

// respondError sends {"error": msg} and stops the handler chain.
func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// statusFor maps input problems to 400; everything else is a failed
// prediction and surfaces as 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
