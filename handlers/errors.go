package handlers

import (
	"errors"
	"net/http"

	"quotecompare/models"
	"quotecompare/services/admin"
	"quotecompare/services/quote"
	"quotecompare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, quote.ErrContactEmailRequired),
		errors.Is(err, quote.ErrInvalidContactEmail),
		errors.Is(err, admin.ErrInvalidStatus),
		errors.Is(err, admin.ErrInvalidDate):
		return http.StatusBadRequest
	case models.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateResponse),
		errors.Is(err, models.ErrQuoteClosed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes the error body. Unexpected errors are logged and
// replaced by the generic message.
func respondError(c *gin.Context, err error, genericMsg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error(genericMsg, zap.Error(err))
		utils.JSONError(c, status, genericMsg)
		return
	}
	utils.JSONError(c, status, err.Error())
}

func badInput(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{Error: "invalid input", Details: err.Error()})
}
