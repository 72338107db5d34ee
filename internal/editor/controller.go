package editor

import (
	"errors"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ytget/md-wr/internal/model"
)

// NavigationHideDelay is how long a hidden navigation panel stays attached,
// matching the panel's slide-out transition.
const NavigationHideDelay = 200 * time.Millisecond

// textLogInterval throttles the per-keystroke diagnostic
const textLogInterval = time.Second

// ErrNoSettingsKey is returned by Save when the editor is not bound to a key
var ErrNoSettingsKey = errors.New("no settings key configured for this editor")

// Controller holds the editor's state and persists it through Settings.
// It is not safe for concurrent use; every method must run on the UI thread.
type Controller struct {
	view      View
	settings  Settings
	scheduler Scheduler
	logger    *zap.Logger
	textLog   *rate.Sometimes

	settingsKey   string
	autoSave      bool
	loading       bool
	focused       bool
	navVisible    bool
	panedPosition int
	pendingDetach Timer
	detachGen     uint64
	disposed      bool
}

// Option configures a Controller
type Option func(*Controller)

// WithScheduler sets the scheduler for deferred panel removal
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a controller for view. Auto-save starts disabled and no key is bound.
func NewController(view View, settings Settings, opts ...Option) *Controller {
	c := &Controller{
		view:          view,
		settings:      settings,
		scheduler:     TimeScheduler{},
		logger:        zap.NewNop(),
		textLog:       &rate.Sometimes{First: 1, Interval: textLogInterval},
		panedPosition: model.DefaultPanedPosition,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSettingsKey binds the editor to key and loads the text saved under it
func (c *Controller) SetSettingsKey(key string) {
	c.settingsKey = key
	c.Load()
}

// SettingsKey returns the bound key, or "" when unbound
func (c *Controller) SettingsKey() string {
	return c.settingsKey
}

// SetAutoSave enables or disables saving on every text change
func (c *Controller) SetAutoSave(autoSave bool) {
	c.autoSave = autoSave
}

// AutoSave reports whether auto-save is enabled
func (c *Controller) AutoSave() bool {
	return c.autoSave
}

// Load replaces the editor text with the saved text. Saves are suppressed meanwhile.
func (c *Controller) Load() {
	if c.settingsKey == "" {
		return
	}

	c.loading = true
	text := c.settings.GetText(c.settingsKey)
	c.view.SetText(text)
	c.updateStats(text)
	c.loading = false

	c.logger.Debug("loaded text",
		zap.String("key", c.settingsKey),
		zap.Int("length", len(text)))
}

// Save writes the current text under the bound key
func (c *Controller) Save() error {
	if c.loading {
		return nil
	}
	if c.settingsKey == "" {
		c.logger.Warn("save skipped", zap.Error(ErrNoSettingsKey))
		return ErrNoSettingsKey
	}

	if err := c.settings.SetText(c.settingsKey, c.view.Text()); err != nil {
		c.logger.Error("failed to save text",
			zap.String("key", c.settingsKey),
			zap.Error(err))
		return err
	}
	c.logger.Debug("text saved", zap.String("key", c.settingsKey))
	return nil
}

// TextChanged must be called after every edit of the view's text
func (c *Controller) TextChanged(text string) {
	c.updateStats(text)
	c.textLog.Do(func() {
		c.logger.Debug("notes updated", zap.Int("length", len(text)))
	})

	if c.autoSave && c.settingsKey != "" {
		_ = c.Save()
	}
}

// Clear empties the editor, saving the empty text when auto-save is on.
// A view that already holds no text reports no change, so TextChanged is called directly.
func (c *Controller) Clear() {
	prev := c.view.Text()
	c.view.SetText("")
	if prev == "" {
		c.TextChanged("")
	}
}

// FocusChanged updates placeholder visibility as the text area gains or loses focus
func (c *Controller) FocusChanged(focused bool) {
	c.focused = focused
	c.view.SetPlaceholderVisible(!focused && model.IsBlank(c.view.Text()))
}

// Stats returns counters for the current text
func (c *Controller) Stats() model.TextStats {
	return model.CountText(c.view.Text())
}

func (c *Controller) updateStats(text string) {
	c.view.ShowStats(model.CountText(text))
	c.view.SetPlaceholderVisible(!c.focused && model.IsBlank(text))
}

// NavigationVisible reports whether the navigation panel is shown
func (c *Controller) NavigationVisible() bool {
	return c.navVisible
}

// PanedPosition returns the cached splitter position used when the panel is shown
func (c *Controller) PanedPosition() int {
	return c.panedPosition
}

// ToggleNavigation flips panel visibility; currentPosition is the live splitter position
func (c *Controller) ToggleNavigation(currentPosition int) {
	c.SetNavigationVisible(!c.navVisible, currentPosition)
}

// SetNavigationVisible shows or hides the navigation panel and saves the new state.
// Hiding caches currentPosition and detaches the panel after NavigationHideDelay.
func (c *Controller) SetNavigationVisible(visible bool, currentPosition int) {
	c.navVisible = visible
	c.cancelDetach()

	if visible {
		c.view.ShowNavigation(c.panedPosition)
	} else {
		if currentPosition > 0 {
			c.panedPosition = currentPosition
		}
		c.view.HideNavigation()
		gen := c.detachGen
		c.pendingDetach = c.scheduler.AfterFunc(NavigationHideDelay, func() { c.detachIfHidden(gen) })
	}

	state := model.NavigationState{Visible: c.navVisible, Position: c.panedPosition}
	if err := c.settings.SetNavigationState(state); err != nil {
		c.logger.Error("failed to save navigation state", zap.Error(err))
	}
	c.logger.Debug("navigation state saved",
		zap.Bool("visible", state.Visible),
		zap.Int("position", state.Position))
}

// LoadNavigationState applies the saved navigation state to the view
func (c *Controller) LoadNavigationState() model.NavigationState {
	state := c.settings.GetNavigationState()
	c.navVisible = state.Visible
	c.panedPosition = state.Position
	c.cancelDetach()

	if state.Visible {
		c.view.ShowNavigation(state.Position)
	} else {
		c.view.HideNavigation()
		c.view.DetachNavigation()
	}

	c.logger.Debug("navigation state loaded",
		zap.Bool("visible", state.Visible),
		zap.Int("position", state.Position))
	return state
}

// detachIfHidden runs the detach scheduled as generation gen. An action that
// was already queued on the UI thread when its timer was cancelled is ignored.
func (c *Controller) detachIfHidden(gen uint64) {
	if gen != c.detachGen {
		return
	}
	c.pendingDetach = nil
	if c.disposed || c.navVisible {
		return
	}
	c.view.DetachNavigation()
}

func (c *Controller) cancelDetach() {
	c.detachGen++
	if c.pendingDetach != nil {
		c.pendingDetach.Stop()
		c.pendingDetach = nil
	}
}

// Dispose cancels pending work and saves the final text and navigation state.
// The controller must not be used afterwards.
func (c *Controller) Dispose() error {
	if c.disposed {
		return nil
	}
	c.cancelDetach()

	var err error
	if c.autoSave && c.settingsKey != "" {
		err = multierr.Append(err, c.Save())
	}
	err = multierr.Append(err, c.settings.SetNavigationState(model.NavigationState{
		Visible:  c.navVisible,
		Position: c.panedPosition,
	}))
	c.disposed = true
	return err
}
