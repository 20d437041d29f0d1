package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"admissions/internal/services"
)

func applicationIDFromCtx(c *gin.Context) (string, bool) {
	v, ok := c.Get("application_id")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// statusFor maps the service error taxonomy onto HTTP statuses; anything
// unrecognized is a storage-level failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrInvalidOrExpiredCode),
		errors.Is(err, services.ErrMissingDocuments),
		errors.Is(err, services.ErrEmptyAcademicList),
		errors.Is(err, services.ErrInvalidSelection),
		errors.Is(err, services.ErrIncompleteApplication),
		errors.Is(err, services.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrStageConflict),
		errors.Is(err, services.ErrAlreadySubmitted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
