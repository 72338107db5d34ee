package platform

// Package platform contains OS/platform integration glue: resolving the
// per-user config root and the filesystem helpers behind the flat-file
// settings fallback (directory creation, whole-file reads, atomic writes).
