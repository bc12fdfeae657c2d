package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"

	"github.com/thereayou/blog-lite/internal/database"
)

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func abortWithError(c *gin.Context, status int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// writeError is the single place where store and validation errors become
// HTTP statuses. Unknown errors are logged and hidden behind a 500.
func writeError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.Is(err, database.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, database.ErrConflict):
		abortWithError(c, http.StatusBadRequest, "CONFLICT", err.Error(), nil)
	case errors.As(err, &fieldErrs):
		abortWithError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", fieldErrs)
	default:
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// bindJSON decodes and validates the body, writing a 422 on failure.
func bindJSON(c *gin.Context, req validation.Validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid request body", gin.H{"body": err.Error()})
		return false
	}
	if err := req.Validate(); err != nil {
		writeError(c, err)
		return false
	}
	return true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed",
			gin.H{"id": "must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
