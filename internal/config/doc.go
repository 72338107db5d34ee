package config

// Package config persists application settings. A Store sends each key to a
// schema-typed structured backend (Fyne preferences or SQLite) when one could
// be constructed, and to one plain-text file per key in the config directory
// otherwise or whenever the backend rejects a write. Options holds the shell
// configuration read through viper.
