package api

import (
	"log/slog"
	"net/http"

	"vehicle-rental/internal/handler/httperr"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// respondError maps a use case error to its HTTP status. Unclassified
// errors become a 500 without details.
func respondError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrInvalidCredentials):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid username or password", nil)
		return
	case errs.Is(err, commands.ErrTokenValidation):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
		return
	}

	switch errs.Classify(err) {
	case errs.ErrValidation:
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errs.ErrNotFound:
		httperr.AbortWithError(c, http.StatusNotFound, err, err.Error(), nil)
	case errs.ErrForbidden:
		httperr.AbortWithError(c, http.StatusForbidden, err, err.Error(), nil)
	case errs.ErrConflict:
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)
	default:
		slog.ErrorContext(c.Request.Context(), "unhandled error",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"error", err.Error(),
			"trace", errs.Trace(err, 16))
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func badRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}
