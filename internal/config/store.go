package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ytget/md-wr/internal/model"
	"github.com/ytget/md-wr/internal/platform"
)

// Store reads and writes settings through a structured backend when one is
// present, and through one {key}.txt file per key in the config directory
// otherwise. When the backend rejects a write, that single call is served by
// the file instead. Backend presence is fixed at construction.
type Store struct {
	backend   Backend
	configDir string
	logger    *zap.Logger
}

// NewStore creates a store. A nil backend puts the store in file-only mode.
// The config directory is created eagerly; failure is logged and retried on each file write.
func NewStore(backend Backend, configDir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		backend:   backend,
		configDir: configDir,
		logger:    logger,
	}
	s.ensureConfigDir()
	return s
}

// HasBackend reports whether a structured backend serves reads and writes
func (s *Store) HasBackend() bool {
	return s.backend != nil
}

// BackendName returns the structured backend's name, or "file" in file-only mode
func (s *Store) BackendName() string {
	if s.backend == nil {
		return "file"
	}
	return s.backend.Name()
}

// ConfigDir returns the directory holding flat-file settings
func (s *Store) ConfigDir() string {
	return s.configDir
}

// FilePath returns the fallback file for key
func (s *Store) FilePath(key string) string {
	return filepath.Join(s.configDir, key+FileExtension)
}

// Get returns the value of key as text.
// With a backend, the backend's value is returned even for keys never written.
// Without one, def is returned when the file cannot be read.
func (s *Store) Get(key, def string) string {
	if err := validateKey(key); err != nil {
		s.logger.Debug("settings read skipped", zap.String("key", key), zap.Error(err))
		return def
	}

	if s.backend != nil {
		switch TypeOf(key) {
		case TypeBool:
			return strconv.FormatBool(s.backend.Bool(key))
		case TypeInt:
			return strconv.Itoa(s.backend.Int(key))
		default:
			return s.backend.String(key)
		}
	}

	value, err := platform.ReadTextFile(s.FilePath(key))
	if err != nil {
		return def
	}
	return value
}

// Set stores value under key.
// Values for typed keys must parse; a *ParseError aborts the call before anything is written.
func (s *Store) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if s.backend == nil {
		return s.writeFile(key, value)
	}

	var err error
	switch t := TypeOf(key); t {
	case TypeBool:
		b, perr := model.ParseBool(value)
		if perr != nil {
			return &ParseError{Key: key, Value: value, Type: t, Err: perr}
		}
		err = s.backend.SetBool(key, b)
	case TypeInt:
		i, perr := strconv.ParseInt(value, 10, 32)
		if perr != nil {
			return &ParseError{Key: key, Value: value, Type: t, Err: perr}
		}
		err = s.backend.SetInt(key, int(i))
	default:
		err = s.backend.SetString(key, value)
	}

	if err != nil {
		s.logger.Warn("structured settings write failed, falling back to file",
			zap.String("key", key),
			zap.String("backend", s.backend.Name()),
			zap.Error(err))
		return s.writeFile(key, value)
	}
	return nil
}

// Close releases the backend when it holds resources
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Store) ensureConfigDir() {
	if err := platform.CreateDirectoryIfNotExists(s.configDir); err != nil {
		s.logger.Error("failed to create config directory",
			zap.String("dir", s.configDir),
			zap.Error(err))
	}
}

func (s *Store) writeFile(key, value string) error {
	s.ensureConfigDir()
	if err := platform.WriteFileAtomic(s.FilePath(key), []byte(value)); err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	return nil
}

// validateKey rejects keys that would not map to a single file inside the config directory
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
