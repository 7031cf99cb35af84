package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/amrelfalogy/smarted/internal/app/controllers"
	"github.com/amrelfalogy/smarted/internal/middleware"
	"github.com/amrelfalogy/smarted/internal/pkg/metrics"
	"github.com/amrelfalogy/smarted/internal/pkg/websocket"
)

// SetupRouter configures all gateway routes
func SetupRouter(
	router *gin.Engine,
	proxyController *controllers.ProxyController,
	uploadController *controllers.UploadController,
	playerController *controllers.PlayerController,
	wsHandler *websocket.Handler,
	m *metrics.Metrics,
) {
	// --- Same-origin proxy ---
	// The backend authenticates proxied calls itself
	router.Any(controllers.ProxyPrefix+"/*path", proxyController.Forward)

	gateway := router.Group("/gateway")

	// --- Upload relay ---
	uploads := gateway.Group("/uploads")
	{
		uploads.POST("/:kind", middleware.BearerAuth(), uploadController.Relay)
		uploads.GET("/:uploadId/ws", wsHandler.HandleConnection)
	}

	// --- Player embeds ---
	players := gateway.Group("/player")
	{
		players.GET("/:elementId", playerController.GetPlayer)
		players.DELETE("/:elementId", playerController.DestroyPlayer)
	}

	router.GET("/ping", controllers.Ping)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
}
