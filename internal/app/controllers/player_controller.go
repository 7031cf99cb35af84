package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/app/player"
	"github.com/amrelfalogy/smarted/internal/middleware"
	"github.com/amrelfalogy/smarted/internal/pkg/metrics"
)

// PlayerQuery are the options of GET /gateway/player/:elementId
type PlayerQuery struct {
	VideoID        string `form:"videoId" validate:"required"`
	Width          int    `form:"width" validate:"omitempty,min=1,max=4096"`
	Height         int    `form:"height" validate:"omitempty,min=1,max=4096"`
	Autoplay       bool   `form:"autoplay"`
	Loop           bool   `form:"loop"`
	Mute           bool   `form:"mute"`
	PlaysInline    bool   `form:"playsinline"`
	ModestBranding *bool  `form:"modestbranding"`
	Controls       *bool  `form:"controls"`
	Rel            *bool  `form:"rel"`
}

func (q PlayerQuery) options() player.PlayerOptions {
	return player.PlayerOptions{
		VideoID:        q.VideoID,
		Width:          q.Width,
		Height:         q.Height,
		Autoplay:       q.Autoplay,
		Loop:           q.Loop,
		Mute:           q.Mute,
		PlaysInline:    q.PlaysInline,
		ModestBranding: q.ModestBranding,
		Controls:       q.Controls,
		Rel:            q.Rel,
	}
}

type describer interface {
	Descriptor() dto.PlayerDescriptor
}

// PlayerController serves embed descriptors through the player bridge
type PlayerController struct {
	bridge  *player.Bridge
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewPlayerController creates a new PlayerController
func NewPlayerController(bridge *player.Bridge, m *metrics.Metrics, logger zerolog.Logger) *PlayerController {
	return &PlayerController{bridge: bridge, metrics: m, logger: logger}
}

// GetPlayer creates or returns an embedded player
// @Summary Create or fetch an embedded player
// @Description Returns the live player registered under elementId when it plays the same video, otherwise creates one once the player API is ready.
// @Tags player
// @Produce json
// @Param elementId path string true "Element ID"
// @Param videoId query string true "Video ID or URL"
// @Param width query int false "Width in pixels (default 640)"
// @Param height query int false "Height in pixels (default 360)"
// @Param autoplay query bool false "Start playing at once"
// @Param loop query bool false "Loop the video"
// @Param controls query bool false "Show controls (default true)"
// @Param rel query bool false "Show related videos (default false)"
// @Success 200 {object} dto.APIResponse{data=dto.PlayerDescriptor} "Existing player"
// @Success 201 {object} dto.APIResponse{data=dto.PlayerDescriptor} "Player created"
// @Failure 400 {object} dto.ErrorResponse "Invalid options"
// @Failure 422 {object} dto.ErrorResponse "Player rejected the video"
// @Failure 503 {object} dto.ErrorResponse "Player API unavailable"
// @Router /gateway/player/{elementId} [get]
func (c *PlayerController) GetPlayer(ctx *gin.Context) {
	elementID := ctx.Param("elementId")

	var query PlayerQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	opts := query.options()

	if existing, ok := c.bridge.Get(elementID); ok && existing.VideoID() == player.ExtractVideoID(opts.VideoID) {
		if d, ok := existing.(describer); ok {
			ctx.JSON(http.StatusOK, dto.NewAPIResponse(d.Descriptor()))
			return
		}
	}

	p, err := c.bridge.CreatePlayer(ctx.Request.Context(), elementID, opts, player.Handlers{
		OnError: func(code int) {
			c.logger.Warn().Str("elementId", elementID).Int("code", code).Msg("Player error")
		},
	})
	if err != nil {
		var perr *player.PlayerError
		if errors.As(err, &perr) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(
				dto.NewErrorDetail(enums.ErrorCodeValidationFailed, perr.Error()).WithField("videoId").WithDetails(perr.Code),
			))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.syncGauge()

	d, ok := p.(describer)
	if !ok {
		ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.PlayerDescriptor{ElementID: p.ElementID(), VideoID: p.VideoID()}))
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(d.Descriptor()))
}

// DestroyPlayer tears down an embedded player
// @Summary Destroy an embedded player
// @Tags player
// @Param elementId path string true "Element ID"
// @Success 204 "Player destroyed"
// @Failure 404 {object} dto.ErrorResponse "No such player"
// @Router /gateway/player/{elementId} [delete]
func (c *PlayerController) DestroyPlayer(ctx *gin.Context) {
	elementID := ctx.Param("elementId")

	found, err := c.bridge.Destroy(elementID)
	c.syncGauge()
	if !found {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(enums.ErrorCodeResourceNotFound, "Player not found").WithField("elementId"),
		))
		return
	}
	if err != nil {
		// Entry is gone either way
		c.logger.Warn().Err(err).Str("elementId", elementID).Msg("Player teardown reported an error")
	}
	ctx.Status(http.StatusNoContent)
}

func (c *PlayerController) syncGauge() {
	if c.metrics != nil {
		c.metrics.Players.Set(float64(c.bridge.Registry().Len()))
	}
}
