package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// FallbackConfigDir is joined to the home directory when no user config dir is known
const FallbackConfigDir = ".config"

// TempFilePrefix marks in-flight atomic writes so they can be told apart from settings files
const TempFilePrefix = ".tmp-"

// UserConfigDir returns {platform-config-root}/{namespace}
func UserConfigDir(namespace string) (string, error) {
	if namespace == "" {
		return "", errors.New("config namespace is empty")
	}

	root, err := os.UserConfigDir()
	if err != nil {
		// no platform config root, use ~/.config
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "", fmt.Errorf("failed to resolve config root: %w", err)
		}
		root = filepath.Join(home, FallbackConfigDir)
	}

	return filepath.Join(root, namespace), nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dirPath)
		}
		return nil
	}
	return os.MkdirAll(dirPath, DefaultDirPermissions)
}

// ReadTextFile returns the whole file as a string
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFileAtomic writes data next to path under a unique temp name and renames it into place.
// Readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, TempFilePrefix+uuid.NewString())

	if err := os.WriteFile(tmp, data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
