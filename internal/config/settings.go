package config

import (
	"strconv"

	"go.uber.org/multierr"

	"github.com/ytget/md-wr/internal/model"
)

// Default values
const (
	DefaultHomeURL  = "https://fyne.io"
	DefaultLanguage = "system"
)

// Settings exposes the application's settings keys with typed accessors on top of a Store
type Settings struct {
	store *Store
}

// NewSettings creates a new settings manager
func NewSettings(store *Store) *Settings {
	return &Settings{store: store}
}

// Store returns the underlying store
func (s *Settings) Store() *Store {
	return s.store
}

// GetNavigationState returns the saved navigation panel state
func (s *Settings) GetNavigationState() model.NavigationState {
	def := model.DefaultNavigationState()
	return model.ParseNavigationState(
		s.store.Get(KeyNavigationPanelVisible, "false"),
		s.store.Get(KeyPanedPosition, strconv.Itoa(def.Position)),
	)
}

// SetNavigationState saves both navigation keys; a failure on one does not skip the other
func (s *Settings) SetNavigationState(state model.NavigationState) error {
	return multierr.Append(
		s.store.Set(KeyNavigationPanelVisible, strconv.FormatBool(state.Visible)),
		s.store.Set(KeyPanedPosition, strconv.Itoa(state.Position)),
	)
}

// GetText returns the text saved under key, or "" when nothing is saved
func (s *Settings) GetText(key string) string {
	return s.store.Get(key, "")
}

// SetText saves text under key
func (s *Settings) SetText(key, text string) error {
	return s.store.Set(key, text)
}

// GetHomeURL returns the address linked from the navigation panel
func (s *Settings) GetHomeURL() string {
	u := s.store.Get(KeyHomeURL, "")
	if u == "" {
		return DefaultHomeURL
	}
	return u
}

// SetHomeURL sets the navigation panel address; empty restores the default
func (s *Settings) SetHomeURL(u string) error {
	if u == "" {
		u = DefaultHomeURL
	}
	return s.store.Set(KeyHomeURL, u)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.store.Get(KeyLanguage, "")
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) error {
	return s.store.Set(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}
