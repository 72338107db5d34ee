package editor

// Package editor implements the notes editor's behaviour independently of the
// widget toolkit: loading and saving text under a settings key, auto-save,
// text statistics, and the navigation panel's visibility and splitter
// position, including the delayed detach after the panel is hidden.
