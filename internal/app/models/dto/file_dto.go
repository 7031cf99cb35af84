package dto

// DeleteFileRequest is the body of DELETE /api/uploads
type DeleteFileRequest struct {
	FileURL string `json:"fileUrl" validate:"required"`
}

// UploadAccepted is returned by the gateway when an upload relay starts
type UploadAccepted struct {
	UploadID string `json:"uploadId"`
	Kind     string `json:"kind"`
	FileName string `json:"fileName"`
}

// PlayerDescriptor describes an embeddable player created by the gateway
type PlayerDescriptor struct {
	ElementID string            `json:"elementId"`
	VideoID   string            `json:"videoId"`
	EmbedURL  string            `json:"embedUrl"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Vars      map[string]string `json:"playerVars"`
}
