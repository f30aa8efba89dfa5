package response

import (
	"errors"
	"net/http"

	"spotly/internal/shared/apperrors"
	"spotly/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError writes err using the status code of its kind.
// Unclassified errors are logged and reported without their details.
func RespondError(c *gin.Context, err error) {
	code, body := errorBody(err)

	if code >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).LogHTTPError(c, err, code)
	}
	if code == http.StatusServiceUnavailable {
		c.Header("Retry-After", "1")
	}

	RespondJSON(c, "error", code, body.Message, nil, body)
}

func errorBody(err error) (int, ErrorDetail) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, ErrorDetail{
			Code:    apperrors.ErrInternal.Code,
			Message: apperrors.ErrInternal.Message,
		}
	}

	detail := ErrorDetail{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Detail:    appErr.Detail,
		Retryable: apperrors.IsRetryable(appErr),
	}
	return StatusFor(appErr), detail
}

// StatusFor maps an application error to its HTTP status
func StatusFor(appErr *apperrors.Error) int {
	switch appErr.Kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindConflict, apperrors.KindCapacityExhausted:
		return http.StatusConflict
	case apperrors.KindNotFound:
		return http.StatusNotFound
	}
	if errors.Is(appErr, apperrors.ErrStoreUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
