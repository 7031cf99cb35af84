package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/amrelfalogy/smarted/internal/pkg/logger"
)

// LocalStorage keeps uploaded files on the local filesystem while they are
// relayed to the backend.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating it if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if basePath == "" {
		return nil, errors.New("storage path is required")
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Debug().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// BasePath returns the storage root
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SpooledFile is a stored copy of an upload, positioned at its first byte.
// Release closes and deletes it.
type SpooledFile struct {
	*os.File
	Filename string
	Size     int64
}

// Release closes the file and removes it from storage
func (f *SpooledFile) Release() error {
	closeErr := f.File.Close()
	if err := os.Remove(f.File.Name()); err != nil && !os.IsNotExist(err) {
		logger.Error().Err(err).Str("path", f.File.Name()).Msg("Failed to delete spooled file")
		return fmt.Errorf("failed to delete spooled file: %w", err)
	}
	return closeErr
}

// Spool copies a multipart upload into storage under a unique name that
// keeps the original extension.
func (ls *LocalStorage) Spool(fileHeader *multipart.FileHeader) (*SpooledFile, error) {
	if fileHeader == nil {
		return nil, errors.New("no file uploaded")
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join(ls.basePath, uuid.New().String()+filepath.Ext(fileHeader.Filename))
	dst, err := os.OpenFile(dstPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create spool file")
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}
	spooled := &SpooledFile{File: dst, Filename: fileHeader.Filename}

	n, err := io.Copy(dst, src)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = spooled.Release()
		return nil, fmt.Errorf("failed to spool file content: %w", err)
	}
	if _, err := dst.Seek(0, io.SeekStart); err != nil {
		_ = spooled.Release()
		return nil, fmt.Errorf("failed to rewind spool file: %w", err)
	}
	spooled.Size = n

	logger.Debug().Str("filename", fileHeader.Filename).Str("spooled_as", dstPath).Int64("size", n).Msg("Upload spooled")
	return spooled, nil
}

// Purge removes files left behind by an earlier run
func (ls *LocalStorage) Purge() error {
	entries, err := os.ReadDir(ls.basePath)
	if err != nil {
		return fmt.Errorf("failed to read storage directory: %w", err)
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(ls.basePath, e.Name())); err == nil {
			removed++
		}
	}
	if removed > 0 {
		logger.Info().Int("count", removed).Str("path", ls.basePath).Msg("Removed stale spool files")
	}
	return nil
}
