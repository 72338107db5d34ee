package editor

import (
	"time"

	"github.com/ytget/md-wr/internal/model"
)

// View is the widget surface a Controller drives. All calls happen on the UI thread.
type View interface {
	Text() string
	// SetText replaces the text. A change must be reported through the
	// controller's TextChanged, as an entry's OnChanged does.
	SetText(text string)
	ShowStats(stats model.TextStats)
	SetPlaceholderVisible(visible bool)

	// ShowNavigation attaches and reveals the navigation panel at position
	ShowNavigation(position int)
	// HideNavigation starts concealing the panel; it stays attached until DetachNavigation
	HideNavigation()
	// DetachNavigation removes the concealed panel from the layout
	DetachNavigation()
}

// Settings persists editor text and navigation state
type Settings interface {
	GetText(key string) string
	SetText(key, text string) error
	GetNavigationState() model.NavigationState
	SetNavigationState(state model.NavigationState) error
}

// Timer is a pending one-shot action
type Timer interface {
	// Stop cancels the action, reporting whether it had not run yet
	Stop() bool
}

// Scheduler runs a no-argument action once after a delay, on the UI thread
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
