package config

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"
)

// OpenBackend constructs the structured backend selected by opts.
// Any failure wraps ErrBackendUnavailable; the returned Backend is then nil.
func OpenBackend(opts Options, prefs fyne.Preferences, logger *zap.Logger) (Backend, error) {
	if opts.Backend == BackendNone {
		return nil, fmt.Errorf("%w: disabled by configuration", ErrBackendUnavailable)
	}

	schema, err := LoadSchema(AppID, opts.SchemaDirs, opts.UseBundledSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	switch opts.Backend {
	case BackendPreferences:
		b, err := NewPreferencesBackend(prefs, schema)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BackendSQLite:
		b, err := OpenSQLiteBackend(filepath.Join(opts.ConfigDir, SQLiteFileName), schema, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrBackendUnavailable, opts.Backend)
	}
}

// OpenStore builds the store for opts, degrading to flat files when no backend can be constructed
func OpenStore(opts Options, prefs fyne.Preferences, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	backend, err := OpenBackend(opts, prefs, logger)
	if err != nil {
		logger.Warn("structured settings unavailable, using flat files",
			zap.String("dir", opts.ConfigDir),
			zap.Error(err))
	}

	store := NewStore(backend, opts.ConfigDir, logger)
	logger.Info("settings store ready",
		zap.String("backend", store.BackendName()),
		zap.String("dir", store.ConfigDir()))
	return store
}
