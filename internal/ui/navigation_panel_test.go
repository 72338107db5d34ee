package ui

import (
	"errors"
	"testing"
)

func TestValidateHomeURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"blank", "   ", false},
		{"https", "https://fyne.io", false},
		{"http with path", "http://example.com/docs?q=1", false},
		{"ftp", "ftp://example.com", true},
		{"no scheme", "example.com", true},
		{"no host", "https://", true},
		{"garbage", "://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHomeURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHomeURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNavigationPanel_SetHomeURL(t *testing.T) {
	newTestApp(t)
	p := NewNavigationPanel("Preview", "https://fyne.io")

	if p.HomeURL() != "https://fyne.io" {
		t.Errorf("Expected initial URL, got %q", p.HomeURL())
	}

	if err := p.SetHomeURL("https://example.com/notes"); err != nil {
		t.Fatalf("SetHomeURL failed: %v", err)
	}
	if p.HomeURL() != "https://example.com/notes" {
		t.Errorf("Expected updated URL, got %q", p.HomeURL())
	}
	if p.link.Text != "https://example.com/notes" {
		t.Errorf("Expected link text to follow URL, got %q", p.link.Text)
	}

	err := p.SetHomeURL("file:///etc/passwd")
	if !errors.Is(err, ErrInvalidURL) {
		t.Errorf("Expected ErrInvalidURL, got %v", err)
	}
	if p.HomeURL() != "https://example.com/notes" {
		t.Errorf("Invalid URL should leave link unchanged, got %q", p.HomeURL())
	}
}

func TestNavigationPanel_MinWidth(t *testing.T) {
	newTestApp(t)
	p := NewNavigationPanel("", "https://fyne.io")

	if p.MinSize().Width < NavigationMinWidth {
		t.Errorf("Expected min width >= %v, got %v", NavigationMinWidth, p.MinSize().Width)
	}
}
