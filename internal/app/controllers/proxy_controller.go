package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/pkg/metrics"
)

// ProxyPrefix is the gateway path under which requests are forwarded
const ProxyPrefix = "/proxy"

// ProxyController forwards same-origin requests to the backend
type ProxyController struct {
	proxy   *httputil.ReverseProxy
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewProxyController creates a ProxyController for backendURL. A nil
// transport uses http.DefaultTransport.
func NewProxyController(backendURL string, transport http.RoundTripper, m *metrics.Metrics, logger zerolog.Logger) (*ProxyController, error) {
	target, err := url.Parse(backendURL)
	if err != nil {
		return nil, err
	}

	c := &ProxyController{metrics: m, logger: logger}
	c.proxy = &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.Out.URL.Path = strings.TrimPrefix(r.In.URL.Path, ProxyPrefix)
			// Keeps escapes such as %2F intact; empty when the path needs none.
			r.Out.URL.RawPath = strings.TrimPrefix(r.In.URL.RawPath, ProxyPrefix)
			r.SetURL(target)
		},
		Transport:    transport,
		ErrorHandler: c.handleError,
	}
	return c, nil
}

// Forward relays a request to the backend
// @Summary Forward a request to the backend
// @Description Sends method, path, query, headers and body to the backend and returns its status, headers and body unchanged.
// @Tags proxy
// @Accept json
// @Produce json
// @Param path path string true "Backend path, e.g. api/users"
// @Success 200 {object} object "Backend response, passed through"
// @Failure 500 {object} dto.ProxyErrorResponse "Backend unreachable"
// @Router /proxy/{path} [get]
func (c *ProxyController) Forward(ctx *gin.Context) {
	c.proxy.ServeHTTP(ctx.Writer, ctx.Request)
}

func (c *ProxyController) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if c.metrics != nil {
		c.metrics.ProxyErrors.Inc()
	}
	c.logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Proxy request failed")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(dto.ProxyErrorResponse{
		Error:   "Proxy request failed",
		Details: err.Error(),
	})
}
