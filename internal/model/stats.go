package model

import (
	"strings"
	"unicode/utf8"
)

// TextStats holds the counters displayed under the editor
type TextStats struct {
	Chars int // Unicode code points
	Words int // whitespace-separated fields
}

// CountText computes statistics for text
func CountText(text string) TextStats {
	return TextStats{
		Chars: utf8.RuneCountInString(text),
		Words: len(strings.Fields(text)),
	}
}

// IsBlank reports whether text has nothing but whitespace, which is when the placeholder shows
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
