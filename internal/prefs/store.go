package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pfxdev/pfx/internal/fsops"
)

// ErrCorrupt indicates a persisted record that exists but cannot be
// decoded.
var ErrCorrupt = errors.New("config record corrupt")

// Store provides an interface for persisting the prefix configuration.
type Store interface {
	// Load reads the persisted record. A missing record yields an empty
	// Config, not an error.
	Load() (*Config, error)

	// Save writes the record atomically in its canonical form.
	Save(cfg *Config) error
}

// FileStore implements Store using a JSON file on disk.
type FileStore struct {
	fs   fsops.FS
	path string
}

// NewFileStore creates a new FileStore backed by the given file path.
func NewFileStore(fs fsops.FS, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Load reads the persisted record, returning an empty Config when the
// file does not exist.
func (s *FileStore) Load() (*Config, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config record: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	cfg.normalize()
	return &cfg, nil
}

// Save writes the record atomically. The record is normalized first so
// that saving an unchanged config still produces the canonical on-disk
// form.
func (s *FileStore) Save(cfg *Config) error {
	cfg.normalize()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config record: %w", err)
	}

	if err := s.fs.AtomicWrite(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config record: %w", err)
	}

	return nil
}
