package config

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/ytget/md-wr/internal/platform"
)

// SQLiteFileName is the database file created in the config directory
const SQLiteFileName = "settings.db"

// MemoryDSN opens a private in-memory database
const MemoryDSN = ":memory:"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteBackend stores settings in a SQLite table validated against a schema.
type SQLiteBackend struct {
	db     *sql.DB
	schema *Schema
	logger *zap.Logger
}

// OpenSQLiteBackend opens (or creates) the database at path and applies pending migrations.
// Pass MemoryDSN for an in-memory database.
func OpenSQLiteBackend(path string, schema *Schema, logger *zap.Logger) (*SQLiteBackend, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: no schema", ErrBackendUnavailable)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if path != MemoryDSN {
		if err := platform.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("%w: creating database directory: %w", ErrBackendUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrBackendUnavailable, err)
	}

	// One connection keeps an in-memory database alive and avoids "database is locked".
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: pinging database: %w", ErrBackendUnavailable, err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: setting busy timeout: %w", ErrBackendUnavailable, err)
	}

	b := &SQLiteBackend{db: db, schema: schema, logger: logger}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %w", ErrBackendUnavailable, err)
	}
	return b, nil
}

// Name returns the backend name
func (b *SQLiteBackend) Name() string {
	return BackendSQLite
}

// Close closes the database
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) migrate() error {
	if _, err := b.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		prefix, _, _ := strings.Cut(entry.Name(), "_")
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return fmt.Errorf("invalid migration filename %q: %w", entry.Name(), err)
		}

		var applied int
		if err := b.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&applied); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if applied > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := b.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}
	return nil
}

// read returns the stored text for key; ok is false when unset or unreadable
func (b *SQLiteBackend) read(key string) (string, bool) {
	var value string
	err := b.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			b.logger.Warn("settings read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

func (b *SQLiteBackend) write(key string, t ValueType, value string) error {
	_, err := b.db.Exec(`INSERT INTO settings (key, kind, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET kind = excluded.kind, value = excluded.value, updated_at = excluded.updated_at`,
		key, string(t), value)
	if err != nil {
		return fmt.Errorf("%w: writing key %q: %w", ErrOperationRejected, key, err)
	}
	return nil
}

// Bool returns a boolean key, or its schema default when unset
func (b *SQLiteBackend) Bool(key string) bool {
	k, err := b.schema.Check(key, TypeBool)
	if err != nil {
		return false
	}
	if raw, ok := b.read(key); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return k.BoolDefault()
}

// Int returns an integer key, or its schema default when unset
func (b *SQLiteBackend) Int(key string) int {
	k, err := b.schema.Check(key, TypeInt)
	if err != nil {
		return 0
	}
	if raw, ok := b.read(key); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return k.IntDefault()
}

// String returns a string key, or its schema default when unset
func (b *SQLiteBackend) String(key string) string {
	k, err := b.schema.Check(key, TypeString)
	if err != nil {
		return ""
	}
	if raw, ok := b.read(key); ok {
		return raw
	}
	return k.Default
}

// SetBool stores a boolean key
func (b *SQLiteBackend) SetBool(key string, value bool) error {
	if _, err := b.schema.Check(key, TypeBool); err != nil {
		return err
	}
	return b.write(key, TypeBool, strconv.FormatBool(value))
}

// SetInt stores an integer key within its declared range
func (b *SQLiteBackend) SetInt(key string, value int) error {
	k, err := b.schema.Check(key, TypeInt)
	if err != nil {
		return err
	}
	if err := k.CheckInt(value); err != nil {
		return err
	}
	return b.write(key, TypeInt, strconv.Itoa(value))
}

// SetString stores a string key
func (b *SQLiteBackend) SetString(key, value string) error {
	if _, err := b.schema.Check(key, TypeString); err != nil {
		return err
	}
	return b.write(key, TypeString, value)
}
