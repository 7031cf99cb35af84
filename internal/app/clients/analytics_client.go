package clients

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/app/models"
	"github.com/amrelfalogy/smarted/internal/pkg/helpers"
	"github.com/amrelfalogy/smarted/internal/pkg/logger"
)

// Analytics endpoints live outside the /api prefix on the backend.
const analyticsPath = "/analytics"

// AnalyticsClient reads dashboard aggregates
type AnalyticsClient struct {
	base   *BaseClient
	logger zerolog.Logger
}

// NewAnalyticsClient creates an AnalyticsClient
func NewAnalyticsClient(base *BaseClient) *AnalyticsClient {
	return &AnalyticsClient{base: base, logger: logger.ForResource("analytics")}
}

// Dashboard returns the admin dashboard totals
func (c *AnalyticsClient) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	o := op{resource: "analytics", operation: "dashboard"}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, analyticsPath+"/dashboard", nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapDashboard)
}

// Users returns registration analytics grouped by period (day, week, month).
// An empty period lets the backend pick its default.
func (c *AnalyticsClient) Users(ctx context.Context, period string) (*models.UserAnalytics, error) {
	o := op{resource: "analytics", operation: "users"}
	path := helpers.WithQuery(analyticsPath+"/users", helpers.NewQuery().String("period", period))
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, func(raw json.RawMessage) (*models.UserAnalytics, error) {
		var ua models.UserAnalytics
		err := json.Unmarshal(raw, &ua)
		return &ua, err
	})
}

func unwrapDashboard(raw json.RawMessage) (*models.DashboardStats, error) {
	if hasKey(raw, "stats") {
		var env struct {
			Stats models.DashboardStats `json:"stats"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		return &env.Stats, nil
	}
	var stats models.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
