package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/middleware"
	"github.com/mroshb/buynothing/pkg/errors"
	"github.com/mroshb/buynothing/pkg/logger"
)

func statusForCode(code string) int {
	switch code {
	case errors.ErrCodeValidation, errors.ErrCodeEmptyOffer:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeNotFound, errors.ErrCodeNoBoxAvailable:
		return http.StatusNotFound
	case errors.ErrCodeConflict, errors.ErrCodeAlreadyExists:
		return http.StatusConflict
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeUpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders an application error as a JSON body with a stable code.
// Internal details never reach the client.
func respondError(c *gin.Context, err error) {
	code := errors.Code(err)
	status := statusForCode(code)

	message := "something went wrong"
	if appErr, ok := err.(*errors.AppError); ok && status < http.StatusInternalServerError {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			"path", c.FullPath(),
			"request_id", middleware.GetRequestID(c),
			"code", code,
			"error", err,
		)
	}

	c.JSON(status, gin.H{
		"error": message,
		"code":  code,
	})
}
