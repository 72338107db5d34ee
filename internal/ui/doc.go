package ui

// Package ui contains the Fyne-based desktop user interface: the notes editor
// widget with its navigation panel, the main window and menus, and the
// preferences dialog. UI strings are localized via Localization; editor
// behaviour lives in package editor.
