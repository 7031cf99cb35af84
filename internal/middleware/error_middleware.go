package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/pkg/apperrors"
)

// HandleAPIError maps an error onto the gateway's error response
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	var httpErr *apperrors.HTTPError

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(enums.ErrorCodeValidationFailed, "Validation failed")
		if errors.As(err, &customErr) {
			detail = detail.WithDetails(customErr.Error())
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(enums.ErrorCodeBadRequest, "Bad request").WithDetails(err.Error()),
		))
	case errors.Is(err, apperrors.ErrTokenNotFound), errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(enums.ErrorCodeUnauthorized, "Authentication required"),
		))
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(enums.ErrorCodeResourceNotFound, "Resource not found"),
		))
	case errors.Is(err, apperrors.ErrScriptLoad), errors.Is(err, apperrors.ErrPlayerNotReady):
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.NewErrorDetail(enums.ErrorCodeExternalServiceError, "Player API unavailable").WithDetails(err.Error()),
		))
	case errors.As(err, &httpErr):
		// Backend answered with an error status; pass it through
		c.JSON(httpErr.Status, dto.NewErrorResponse(
			dto.NewErrorDetail(enums.ErrorCodeExternalServiceError, "Backend request failed").WithDetails(string(httpErr.Body)),
		))
	case errors.Is(err, apperrors.ErrTransport):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			dto.NewErrorDetail(enums.ErrorCodeExternalServiceError, "Backend unreachable").WithDetails(err.Error()),
		))
	default:
		detail := dto.NewErrorDetail(enums.ErrorCodeInternalServer, "Internal server error")
		if gin.Mode() != gin.ReleaseMode {
			detail = detail.WithDebugInfo("%v", err)
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	}
}
