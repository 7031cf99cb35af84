package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/pkg/auth"
)

// Context keys set by BearerAuth
const (
	ContextToken  = "authToken"
	ContextUserID = "userID"
	ContextRole   = "userRole"
)

// BearerAuth requires a backend-issued bearer token on gateway routes that
// call the backend on the caller's behalf. The signature is the backend's
// concern; the gateway only rejects missing, malformed and expired tokens.
func BearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Browsers cannot set headers on WebSocket upgrades
			authHeader = c.Query("token")
		}

		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(enums.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		token, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(enums.ErrorCodeUnauthorized, "Invalid authorization header"),
			))
			return
		}

		claims, err := auth.Inspect(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(enums.ErrorCodeUnauthorized, "Invalid token").WithDetails(err.Error()),
			))
			return
		}
		if claims.Expired(time.Now()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(enums.ErrorCodeUnauthorized, "Token expired"),
			))
			return
		}

		c.Set(ContextToken, token)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
