package models

import "github.com/amrelfalogy/smarted/internal/app/models/dto/enums"

// UploadProgress is an ephemeral progress sample of one upload
type UploadProgress struct {
	Percent     int   `json:"percent"`
	BytesLoaded int64 `json:"bytesLoaded"`
	BytesTotal  int64 `json:"bytesTotal"`
}

// UploadedFile is the backend's answer to a completed upload
type UploadedFile struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}

// UploadStats is the payload of GET /api/uploads/stats
type UploadStats struct {
	TotalFiles int                      `json:"totalFiles"`
	TotalBytes int64                    `json:"totalSize"`
	ByKind     map[enums.UploadKind]int `json:"byType"`
}
