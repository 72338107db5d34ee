// Package cli wires the md-wr command line: shell options from flags, the
// environment and config.yaml, the logger, the settings store, and either the
// editor window or one of the headless settings commands.
package cli
