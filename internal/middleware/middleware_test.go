package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/pkg/apperrors"
	"github.com/amrelfalogy/smarted/internal/pkg/auth"
	"github.com/amrelfalogy/smarted/internal/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func tokenExpiring(t *testing.T, expires time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID:           "admin-1",
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)},
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestBearerAuth(t *testing.T) {
	valid := tokenExpiring(t, time.Now().Add(time.Hour))
	expired := tokenExpiring(t, time.Now().Add(-time.Hour))

	router := gin.New()
	router.GET("/private", BearerAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"token":  c.GetString(ContextToken),
			"userId": c.GetString(ContextUserID),
			"role":   c.GetString(ContextRole),
		})
	})

	tests := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{name: "valid header", header: "Bearer " + valid, status: http.StatusOK},
		{name: "valid query token", query: "?token=Bearer%20" + valid, status: http.StatusOK},
		{name: "missing", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "malformed", header: "Bearer not-a-jwt", status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, valid, body["token"])
				assert.Equal(t, "admin-1", body["userId"])
				assert.Equal(t, "admin", body["role"])
			}
		})
	}
}

func TestRequestIDReusesOrAssigns(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.Request.Header.Get(RequestIDHeader))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assigned := rec.Header().Get(RequestIDHeader)
	assert.Len(t, assigned, 36)
	assert.Equal(t, assigned, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-42")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", rec.Header().Get(RequestIDHeader))
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := metrics.New()
	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/gateway/player/:elementId", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, id := range []string{"a", "b"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/gateway/player/"+id, nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/gateway/player/:elementId", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   enums.ErrorCode
	}{
		{"validation", apperrors.NewValidationError("title is required"), http.StatusBadRequest, enums.ErrorCodeValidationFailed},
		{"bad request", fmt.Errorf("parse: %w", apperrors.ErrBadRequest), http.StatusBadRequest, enums.ErrorCodeBadRequest},
		{"missing token", apperrors.ErrTokenNotFound, http.StatusUnauthorized, enums.ErrorCodeUnauthorized},
		{"backend 401", &apperrors.HTTPError{Status: http.StatusUnauthorized}, http.StatusUnauthorized, enums.ErrorCodeUnauthorized},
		{"backend 404", &apperrors.HTTPError{Status: http.StatusNotFound}, http.StatusNotFound, enums.ErrorCodeResourceNotFound},
		{"script load", fmt.Errorf("%w: blocked", apperrors.ErrScriptLoad), http.StatusServiceUnavailable, enums.ErrorCodeExternalServiceError},
		{"backend conflict", &apperrors.HTTPError{Status: http.StatusConflict, Body: []byte(`{"message":"duplicate"}`)}, http.StatusConflict, enums.ErrorCodeExternalServiceError},
		{"transport", &apperrors.TransportError{Err: errors.New("refused")}, http.StatusBadGateway, enums.ErrorCodeExternalServiceError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, enums.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestHandleAPIErrorDebugInfoOutsideRelease(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	HandleAPIError(c, errors.New("boom"))

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "boom", resp.Error.DebugInfo)
}

type playerQuery struct {
	VideoID string `form:"videoId" validate:"required"`
	Width   int    `form:"width" validate:"omitempty,min=1,max=4096"`
}

func TestBindQuery(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		ok     bool
		field  string
		status int
	}{
		{name: "valid", query: "?videoId=abc&width=800", ok: true},
		{name: "missing required", query: "?width=800", field: "VideoID", status: http.StatusBadRequest},
		{name: "out of range", query: "?videoId=abc&width=9000", field: "Width", status: http.StatusBadRequest},
		{name: "not a number", query: "?videoId=abc&width=wide", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)

			var q playerQuery
			ok := BindQuery(c, &q)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, "abc", q.VideoID)
				return
			}
			assert.Equal(t, tt.status, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, enums.ErrorCodeValidationFailed, resp.Error.Code)
			if tt.field != "" {
				assert.Equal(t, tt.field, resp.Error.Field)
			}
		})
	}
}
