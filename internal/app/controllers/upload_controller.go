package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/app/clients"
	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/middleware"
	"github.com/amrelfalogy/smarted/internal/pkg/credstore"
	"github.com/amrelfalogy/smarted/internal/pkg/filestorage"
	"github.com/amrelfalogy/smarted/internal/pkg/metrics"
	"github.com/amrelfalogy/smarted/internal/pkg/websocket"
)

const relayTimeout = 30 * time.Minute

// UploadController accepts browser uploads and relays them to the backend,
// publishing progress on the WebSocket hub.
type UploadController struct {
	backendURL string
	httpClient *http.Client
	storage    *filestorage.LocalStorage
	hub        *websocket.Hub
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	relays     sync.WaitGroup
}

// NewUploadController creates a new UploadController
func NewUploadController(backendURL string, httpClient *http.Client, storage *filestorage.LocalStorage, hub *websocket.Hub, m *metrics.Metrics, logger zerolog.Logger) *UploadController {
	return &UploadController{
		backendURL: backendURL,
		httpClient: httpClient,
		storage:    storage,
		hub:        hub,
		metrics:    m,
		logger:     logger,
	}
}

// Relay starts an upload relay
// @Summary Relay an upload to the backend
// @Description Accepts a multipart file and returns at once with an upload ID. Progress, completion and failure are streamed on /gateway/uploads/{uploadId}/ws.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Upload kind" Enums(image, video, document, receipt)
// @Param file formData file true "File to upload; the field may also be named after the kind"
// @Success 202 {object} dto.APIResponse{data=dto.UploadAccepted} "Upload accepted"
// @Failure 400 {object} dto.ErrorResponse "Unknown kind or missing file"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /gateway/uploads/{kind} [post]
func (c *UploadController) Relay(ctx *gin.Context) {
	kind := enums.UploadKind(ctx.Param("kind"))
	if !kind.Valid() {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(enums.ErrorCodeBadRequest, "Unknown upload kind").WithField("kind"),
		))
		return
	}

	header, err := formFile(ctx, kind.FieldName(), "file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(enums.ErrorCodeValidationFailed, "File is required").WithField(kind.FieldName()).WithDetails(err.Error()),
		))
		return
	}

	// The request's multipart files are removed when the handler returns, so
	// the relay works from its own copy.
	spool, err := c.storage.Spool(header)
	if err != nil {
		c.logger.Error().Err(err).Str("fileName", header.Filename).Msg("Failed to spool upload")
		middleware.HandleAPIError(ctx, err)
		return
	}

	store := credstore.NewMemoryStore()
	_ = store.Set(credstore.AuthTokenKey, ctx.GetString(middleware.ContextToken))
	uploader := clients.NewUploadClient(clients.NewBaseClient(c.backendURL, c.httpClient, store))

	uploadID := uuid.NewString()
	c.hub.Track(uploadID)

	c.relays.Add(1)
	go c.relay(uploadID, kind, uploader, spool)

	c.logger.Info().
		Str("uploadID", uploadID).
		Str("kind", string(kind)).
		Str("fileName", header.Filename).
		Int64("size", spool.Size).
		Msg("Upload relay started")

	ctx.JSON(http.StatusAccepted, dto.NewAPIResponse(dto.UploadAccepted{
		UploadID: uploadID,
		Kind:     string(kind),
		FileName: header.Filename,
	}))
}

// Wait blocks until every running relay has finished
func (c *UploadController) Wait() {
	c.relays.Wait()
}

func (c *UploadController) relay(uploadID string, kind enums.UploadKind, uploader *clients.UploadClient, spool *filestorage.SpooledFile) {
	defer c.relays.Done()
	defer func() {
		if err := spool.Release(); err != nil {
			c.logger.Warn().Err(err).Str("uploadID", uploadID).Msg("Failed to release spooled upload")
		}
	}()
	file := clients.UploadFile{Name: spool.Filename, Size: spool.Size, Content: spool}

	ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
	defer cancel()

	if c.metrics != nil {
		c.metrics.UploadStarted()
	}
	outcome := metrics.OutcomeFailed

	for ev := range uploader.Upload(ctx, file, kind) {
		msg := &websocket.Message{UploadID: uploadID}
		switch {
		case ev.Progress != nil:
			msg.Type = websocket.TypeProgress
			msg.Percent = ev.Progress.Percent
			msg.BytesLoaded = ev.Progress.BytesLoaded
			msg.BytesTotal = ev.Progress.BytesTotal
		case ev.Completed != nil:
			outcome = metrics.OutcomeCompleted
			msg.Type = websocket.TypeCompleted
			msg.Percent = 100
			msg.URL = ev.Completed.URL
			msg.FileName = ev.Completed.FileName
			msg.FileSize = ev.Completed.FileSize
		case ev.Err != nil:
			msg.Type = websocket.TypeError
			msg.Error = ev.Err.Error()
		}
		c.hub.Publish(msg)
	}

	if c.metrics != nil {
		c.metrics.UploadFinished(string(kind), outcome, file.Size)
	}
	c.logger.Info().Str("uploadID", uploadID).Str("outcome", outcome).Msg("Upload relay finished")
}

// formFile returns the first present multipart file among names
func formFile(ctx *gin.Context, names ...string) (*multipart.FileHeader, error) {
	var lastErr error
	for _, name := range names {
		header, err := ctx.FormFile(name)
		if err == nil {
			return header, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
