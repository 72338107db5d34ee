package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Layout sizing
const (
	EditorMinWidth  float32 = 320
	EditorMinHeight float32 = 150

	NavigationMinWidth float32 = 180

	PreferencesDialogWidth  float32 = 460
	PreferencesDialogHeight float32 = 260
)

// Split offsets are clamped so neither pane collapses entirely
const (
	MinSplitOffset = 0.1
	MaxSplitOffset = 0.9
)

// Text fragments
const (
	WordsLabelFormat = "%s: %d"
	CharsLabelFormat = "%s: %d"
)
