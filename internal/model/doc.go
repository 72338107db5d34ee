package model

// Package model defines the editor's plain data: text statistics shown under
// the editor pane and the persisted navigation panel state.
