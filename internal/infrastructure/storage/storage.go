package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopfront/core/internal/infrastructure/config"
)

// ErrCorrupted is returned when the store file exists but does not decode.
// Unlike the usual "treat as empty" shortcut, a corrupted catalog is surfaced
// so the operator can recover the file instead of silently losing it.
var ErrCorrupted = errors.New("store file is corrupted")

// Store wraps a single JSON file that holds one top-level value, rewritten
// wholesale on every save. The catalog is small by design (marketing scale),
// so full-file rewrites are acceptable.
type Store struct {
	path   string
	pretty bool
}

// New creates a store for the configured file, creating the parent directory
// and initializing an empty collection when the file does not exist yet.
func New(cfg config.StoreConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	s := &Store{
		path:   cfg.Path,
		pretty: cfg.Pretty,
	}

	if _, err := os.Stat(cfg.Path); os.IsNotExist(err) {
		if err := s.Write([]any{}); err != nil {
			return nil, fmt.Errorf("failed to initialize store file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat store file: %w", err)
	}

	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Read decodes the whole file into dest.
func (s *Store) Read(dest any) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read store file: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupted, s.path, err)
	}

	return nil
}

// Write serializes v and replaces the file atomically: the new content is
// written to a temp file in the same directory and renamed over the original,
// so a crash mid-write can never leave a half-written catalog behind.
func (s *Store) Write(v any) error {
	var (
		data []byte
		err  error
	)
	if s.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode store content: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp store file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp store file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}

// HealthCheck verifies the backing file is present and decodable.
func (s *Store) HealthCheck() error {
	var v any
	if err := s.Read(&v); err != nil {
		return fmt.Errorf("store health check failed: %w", err)
	}
	return nil
}
