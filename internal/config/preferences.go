package config

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// PreferencesBackend stores settings in the Fyne application preferences,
// accepting only the keys and types its schema declares.
type PreferencesBackend struct {
	prefs  fyne.Preferences
	schema *Schema
}

// NewPreferencesBackend binds prefs to schema
func NewPreferencesBackend(prefs fyne.Preferences, schema *Schema) (*PreferencesBackend, error) {
	if prefs == nil {
		return nil, fmt.Errorf("%w: no application preferences", ErrBackendUnavailable)
	}
	if schema == nil {
		return nil, fmt.Errorf("%w: no schema", ErrBackendUnavailable)
	}
	return &PreferencesBackend{prefs: prefs, schema: schema}, nil
}

// Name returns the backend name
func (b *PreferencesBackend) Name() string {
	return BackendPreferences
}

// prefKey namespaces keys so several schemas can share one preferences file
func (b *PreferencesBackend) prefKey(key string) string {
	return b.schema.ID + "." + key
}

// Bool returns a boolean key, or its schema default when unset
func (b *PreferencesBackend) Bool(key string) bool {
	k, err := b.schema.Check(key, TypeBool)
	if err != nil {
		return false
	}
	return b.prefs.BoolWithFallback(b.prefKey(key), k.BoolDefault())
}

// Int returns an integer key, or its schema default when unset
func (b *PreferencesBackend) Int(key string) int {
	k, err := b.schema.Check(key, TypeInt)
	if err != nil {
		return 0
	}
	return b.prefs.IntWithFallback(b.prefKey(key), k.IntDefault())
}

// String returns a string key, or its schema default when unset
func (b *PreferencesBackend) String(key string) string {
	k, err := b.schema.Check(key, TypeString)
	if err != nil {
		return ""
	}
	return b.prefs.StringWithFallback(b.prefKey(key), k.Default)
}

// SetBool stores a boolean key
func (b *PreferencesBackend) SetBool(key string, value bool) error {
	if _, err := b.schema.Check(key, TypeBool); err != nil {
		return err
	}
	b.prefs.SetBool(b.prefKey(key), value)
	return nil
}

// SetInt stores an integer key within its declared range
func (b *PreferencesBackend) SetInt(key string, value int) error {
	k, err := b.schema.Check(key, TypeInt)
	if err != nil {
		return err
	}
	if err := k.CheckInt(value); err != nil {
		return err
	}
	b.prefs.SetInt(b.prefKey(key), value)
	return nil
}

// SetString stores a string key
func (b *PreferencesBackend) SetString(key, value string) error {
	if _, err := b.schema.Check(key, TypeString); err != nil {
		return err
	}
	b.prefs.SetString(b.prefKey(key), value)
	return nil
}
