package websocket

import "time"

// Message types
const (
	TypeProgress  = "progress"
	TypeCompleted = "completed"
	TypeError     = "error"
)

// Message is one upload update sent to subscribers
type Message struct {
	// Type is progress, completed or error
	Type string `json:"type"`

	// Upload this message belongs to
	UploadID string `json:"uploadId"`

	// Progress fields
	Percent     int   `json:"percent"`
	BytesLoaded int64 `json:"bytesLoaded"`
	BytesTotal  int64 `json:"bytesTotal"`

	// Completion fields
	URL      string `json:"url,omitempty"`
	FileName string `json:"fileName,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`

	// Error is the failure text of an error message
	Error string `json:"error,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Terminal reports whether no further messages follow m for its upload
func (m *Message) Terminal() bool {
	return m.Type == TypeCompleted || m.Type == TypeError
}
