package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
)

// Handler for upload progress WebSocket connections
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Follow an upload over WebSocket
// @Description Upgrades to a WebSocket that streams progress, completed and error messages of one relayed upload. The latest message is replayed on connect.
// @Tags uploads, websocket
// @Produce json
// @Param uploadId path string true "Upload ID returned by the upload relay"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 404 {object} dto.ErrorResponse "Unknown upload"
// @Router /gateway/uploads/{uploadId}/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	uploadID := c.Param("uploadId")
	if !h.hub.Known(uploadID) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(enums.ErrorCodeResourceNotFound, "Upload not found").WithField("uploadId"),
		))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("uploadID", uploadID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		uploadID: uploadID,
		logger:   h.logger,
	}
	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Debug().
		Str("uploadID", uploadID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
