package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/app/models"
	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/pkg/apperrors"
	"github.com/amrelfalogy/smarted/internal/pkg/helpers"
	"github.com/amrelfalogy/smarted/internal/pkg/logger"
)

const uploadsPath = "/api/uploads"

// UploadFile is the source of one upload. Size is the total byte count used
// for percentages; a non-positive Size reports 0% until completion.
type UploadFile struct {
	Name    string
	Size    int64
	Content io.Reader
}

// UploadEvent is one item of an upload stream. Exactly one field is set.
// Completed and Err are terminal; the stream is closed right after them.
type UploadEvent struct {
	Progress  *models.UploadProgress
	Completed *models.UploadedFile
	Err       error
}

// UploadClient sends files to the backend's upload endpoints
type UploadClient struct {
	base   *BaseClient
	logger zerolog.Logger
}

// NewUploadClient creates an UploadClient
func NewUploadClient(base *BaseClient) *UploadClient {
	return &UploadClient{base: base, logger: logger.ForResource("uploads")}
}

// Upload streams file to /api/uploads/{kind} as multipart form data and
// returns the event stream of that single upload. Progress events follow the
// bytes read from file.Content; the stream ends with Completed or Err.
//
// Reading the stream is optional. Progress is queued and never holds up the
// body, so the upload finishes even when the caller drops the channel. An
// abandoned stream keeps one goroutine parked on the terminal event until ctx
// is cancelled.
func (c *UploadClient) Upload(ctx context.Context, file UploadFile, kind enums.UploadKind) <-chan UploadEvent {
	o := op{resource: "uploads", operation: "upload-" + string(kind)}

	if !kind.Valid() || file.Content == nil {
		err := apperrors.NewValidationError(fmt.Sprintf("upload kind %q is not supported or content is missing", kind))
		o.log(c.logger, err)
		events := make(chan UploadEvent, 1)
		events <- UploadEvent{Err: err}
		close(events)
		return events
	}

	events := make(chan UploadEvent)
	queue := newEventQueue()
	go queue.forward(ctx, events)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	writerDone := make(chan error, 1)

	go func() {
		src := &countingReader{
			r: file.Content,
			onRead: func(loaded int64) {
				queue.push(UploadEvent{Progress: &models.UploadProgress{
					Percent:     helpers.ClampPercent(helpers.Percentage(loaded, file.Size)),
					BytesLoaded: loaded,
					BytesTotal:  file.Size,
				}})
			},
		}
		err := writeMultipart(mw, kind.FieldName(), file.Name, src)
		pw.CloseWithError(err)
		writerDone <- err
	}()

	go func() {
		uploaded, err := c.send(ctx, kind, mw.FormDataContentType(), pr)
		// Unblocks the writer if the backend answered before reading the whole body.
		pr.Close()
		if werr := <-writerDone; werr != nil && !errors.Is(werr, io.ErrClosedPipe) {
			err = fmt.Errorf("failed to stream %s: %w", file.Name, werr)
		}

		if err != nil {
			o.log(c.logger, err)
			queue.finish(UploadEvent{Err: err})
			return
		}
		queue.finish(UploadEvent{Completed: uploaded})
	}()

	return events
}

// maxPendingProgress bounds the progress backlog of a slow reader. Beyond it
// the newest tick replaces the last queued one.
const maxPendingProgress = 64

// eventQueue decouples the upload from its reader. push and finish never
// block; forward delivers in order.
type eventQueue struct {
	mu      sync.Mutex
	pending []UploadEvent
	done    bool
	wake    chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{wake: make(chan struct{}, 1)}
}

func (q *eventQueue) push(ev UploadEvent) {
	q.mu.Lock()
	if n := len(q.pending); n >= maxPendingProgress && q.pending[n-1].Progress != nil {
		q.pending[n-1] = ev
	} else {
		q.pending = append(q.pending, ev)
	}
	q.mu.Unlock()
	q.signal()
}

// finish queues the terminal event; nothing may be pushed after it
func (q *eventQueue) finish(ev UploadEvent) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.done = true
	q.mu.Unlock()
	q.signal()
}

func (q *eventQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// forward drains the queue into events and closes it after the terminal
// event, or as soon as ctx is done.
func (q *eventQueue) forward(ctx context.Context, events chan<- UploadEvent) {
	defer close(events)
	for {
		q.mu.Lock()
		batch, done := q.pending, q.done
		q.pending = nil
		q.mu.Unlock()

		for _, ev := range batch {
			if !sendEvent(ctx, events, ev) {
				return
			}
		}
		if done {
			return
		}

		select {
		case <-q.wake:
		case <-ctx.Done():
			return
		}
	}
}

func (c *UploadClient) send(ctx context.Context, kind enums.UploadKind, contentType string, body io.Reader) (*models.UploadedFile, error) {
	req, err := c.base.newRequest(ctx, http.MethodPost, uploadsPath+escapeID(string(kind)), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	raw, err := c.base.send(req)
	if err != nil {
		return nil, err
	}
	uploaded, err := unwrapUploadedFile(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode uploads response: %w", err)
	}
	return uploaded, nil
}

// DeleteFile removes a previously uploaded file by its URL
func (c *UploadClient) DeleteFile(ctx context.Context, fileURL string) error {
	o := op{resource: "uploads", operation: "delete"}
	req := dto.DeleteFileRequest{FileURL: fileURL}
	if err := validatePayload(c.logger, o, req); err != nil {
		return err
	}
	_, err := c.base.doJSON(ctx, c.logger, o, http.MethodDelete, uploadsPath, req)
	return err
}

// Stats returns storage counters per upload kind
func (c *UploadClient) Stats(ctx context.Context) (*models.UploadStats, error) {
	o := op{resource: "uploads", operation: "stats"}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, uploadsPath+"/stats", nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, func(raw json.RawMessage) (*models.UploadStats, error) {
		var stats models.UploadStats
		err := json.Unmarshal(raw, &stats)
		return &stats, err
	})
}

func writeMultipart(mw *multipart.Writer, field, name string, src io.Reader) error {
	part, err := mw.CreateFormFile(field, name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, src); err != nil {
		return err
	}
	return mw.Close()
}

// sendEvent delivers ev unless ctx is done first
func sendEvent(ctx context.Context, events chan<- UploadEvent, ev UploadEvent) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// countingReader reports the running byte total after every non-empty read
type countingReader struct {
	r      io.Reader
	loaded int64
	onRead func(loaded int64)
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.loaded += int64(n)
		cr.onRead(cr.loaded)
	}
	return n, err
}

// unwrapUploadedFile accepts {file: {...}} or the bare {url, fileName, fileSize}.
func unwrapUploadedFile(raw json.RawMessage) (*models.UploadedFile, error) {
	if hasKey(raw, "file") {
		var env struct {
			File models.UploadedFile `json:"file"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		return &env.File, nil
	}
	var uploaded models.UploadedFile
	if err := json.Unmarshal(raw, &uploaded); err != nil {
		return nil, err
	}
	if uploaded.URL == "" {
		return nil, fmt.Errorf("missing url")
	}
	return &uploaded, nil
}
