package config

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable means no structured store could be constructed; the store runs on flat files only.
	ErrBackendUnavailable = errors.New("structured settings backend unavailable")

	// ErrOperationRejected means a structured store refused a specific typed write.
	ErrOperationRejected = errors.New("settings operation rejected")

	// ErrInvalidValue matches every *ParseError.
	ErrInvalidValue = errors.New("invalid settings value")

	// ErrInvalidKey is returned for keys that cannot name a settings file.
	ErrInvalidKey = errors.New("invalid settings key")

	// ErrSchemaNotFound means no schema with the requested id is installed.
	ErrSchemaNotFound = errors.New("settings schema not found")
)

// ParseError reports a value that does not match its key's type
type ParseError struct {
	Key   string
	Value string
	Type  ValueType
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s value %q for key %q: %v", e.Type, e.Value, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidValue) hold for any ParseError
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidValue
}
