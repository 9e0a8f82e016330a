package grantstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/ports"
	"gopkg.in/yaml.v3"
)

// fileStoreConfig holds configuration for the FileStore.
type fileStoreConfig struct {
	path      string                // Path to the grants file
	validator ports.GrantsValidator // Optional schema check before decoding
}

func defaultFileStoreConfig() fileStoreConfig {
	return fileStoreConfig{
		path: filepath.Join(os.Getenv("HOME"), ".permgrant", "grants.yaml"),
	}
}

// FileStoreOption configures a FileStore instance.
type FileStoreOption func(*fileStoreConfig)

// WithPath sets the path to the grants file.
func WithPath(path string) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.path = path
	}
}

// WithValidator checks the raw document before it is decoded.
func WithValidator(v ports.GrantsValidator) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.validator = v
	}
}

// FileStore reads the initial grant table from a YAML file. It never writes:
// grants do not outlive the process.
type FileStore struct {
	config fileStoreConfig
}

// NewFileStore creates a new FileStore with the given options.
func NewFileStore(opts ...FileStoreOption) ports.GrantStore {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileStore{config: cfg}
}

// Load retrieves all granted patterns.
func (s *FileStore) Load() (*entities.GrantSet, error) {
	data, err := os.ReadFile(s.config.path)
	if os.IsNotExist(err) {
		// Return empty set if file doesn't exist
		return &entities.GrantSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read grant store: %w", err)
	}

	if s.config.validator != nil {
		if err := s.validate(data); err != nil {
			return nil, err
		}
	}

	var grants entities.GrantSet
	if err := yaml.Unmarshal(data, &grants); err != nil {
		return nil, fmt.Errorf("failed to parse grant store: %w", err)
	}
	return &grants, nil
}

func (s *FileStore) validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse grant store: %w", err)
	}

	res, err := s.config.validator.Validate(doc)
	if err != nil {
		return fmt.Errorf("failed to validate grant store: %w", err)
	}
	if !res.Valid {
		msgs := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
		}
		return fmt.Errorf("invalid grant store %s: %s", s.config.path, strings.Join(msgs, "; "))
	}
	return nil
}

// ConfigPath returns the path to the backing store.
func (s *FileStore) ConfigPath() string {
	return s.config.path
}
