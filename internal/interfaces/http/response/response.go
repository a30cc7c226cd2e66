package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "token-forge.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error maps err to a status and a {code, message, detail, errors} body.
func Error(c *gin.Context, err error) {
	var (
		validationErr *domainerrors.ValidationError
		storeErr      *domainerrors.StoreError
		appErr        *domainerrors.AppError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    domainerrors.CodeValidationFailed,
			"message": "validation failed",
			"detail":  validationErr.Error(),
			"errors":  validationErr.Violations,
		})
	case errors.As(err, &storeErr):
		c.JSON(storeErr.Status(), gin.H{
			"code":    storeErr.Code(),
			"message": storeErr.Summary(),
			"detail":  storeErr.Error(),
		})
	case errors.As(err, &appErr):
		c.JSON(appErr.Status, gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
			"detail":  appErr.Message,
		})
	default:
		internal := domainerrors.InternalError(err)
		c.JSON(internal.Status, gin.H{
			"code":    internal.Code,
			"message": internal.Message,
			"detail":  internal.Message,
		})
	}
}
