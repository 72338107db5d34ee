package config

// Backend is a structured, schema-typed settings store.
// Reads never fail: unknown or unset keys yield the backend's own default.
// Writes return an error wrapping ErrOperationRejected when the store refuses them.
type Backend interface {
	Name() string

	Bool(key string) bool
	Int(key string) int
	String(key string) string

	SetBool(key string, value bool) error
	SetInt(key string, value int) error
	SetString(key, value string) error
}

// Backend names accepted by the "backend" option
const (
	BackendPreferences = "preferences"
	BackendSQLite      = "sqlite"
	BackendNone        = "none"
)
