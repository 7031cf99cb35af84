package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/amrelfalogy/smarted/internal/pkg/logger"
)

// LocalStore persists values as a YAML map in a single file readable only by
// the current user.
type LocalStore struct {
	path string
	mu   sync.Mutex
}

// NewLocalStore creates a LocalStore at path, creating the parent directory.
func NewLocalStore(path string) (*LocalStore, error) {
	if path == "" {
		return nil, errors.New("credential store path is required")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create credential directory")
		return nil, fmt.Errorf("failed to create credential directory %s: %w", dir, err)
	}
	return &LocalStore{path: path}, nil
}

// Path returns the backing file path
func (s *LocalStore) Path() string {
	return s.path
}

// Get implements Store
func (s *LocalStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set implements Store
func (s *LocalStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Remove implements Store
func (s *LocalStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *LocalStore) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

// save writes through a temp file and rename so a crash never leaves a
// truncated credentials file behind.
func (s *LocalStore) save(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("failed to create temp credentials file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to restrict credentials file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close credentials file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		logger.Error().Err(err).Str("path", s.path).Msg("Failed to replace credentials file")
		return fmt.Errorf("failed to replace credentials file: %w", err)
	}
	return nil
}
