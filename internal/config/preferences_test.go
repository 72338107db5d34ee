package config

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewPreferencesBackend_Unavailable(t *testing.T) {
	schema, err := BundledSchema(AppID)
	if err != nil {
		t.Fatalf("BundledSchema failed: %v", err)
	}

	if _, err := NewPreferencesBackend(nil, schema); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Expected ErrBackendUnavailable without preferences, got %v", err)
	}
	if _, err := NewPreferencesBackend(test.NewApp().Preferences(), nil); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Expected ErrBackendUnavailable without schema, got %v", err)
	}
}

func TestPreferencesBackend_Namespaced(t *testing.T) {
	prefs := test.NewApp().Preferences()
	schema, _ := BundledSchema(AppID)
	b, err := NewPreferencesBackend(prefs, schema)
	if err != nil {
		t.Fatalf("NewPreferencesBackend failed: %v", err)
	}

	if err := b.SetInt(KeyPanedPosition, 333); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}

	if got := prefs.Int(AppID + "." + KeyPanedPosition); got != 333 {
		t.Errorf("Expected namespaced preference 333, got %d", got)
	}
	if got := prefs.IntWithFallback(KeyPanedPosition, -1); got != -1 {
		t.Errorf("Bare key should not be written, got %d", got)
	}
}

func TestPreferencesBackend_Rejections(t *testing.T) {
	b := newPreferencesBackend(t)

	tests := []struct {
		name string
		err  error
	}{
		{"undeclared key", b.SetString("undeclared", "x")},
		{"type mismatch", b.SetBool(KeyUserNotes, true)},
		{"type mismatch on int key", b.SetString(KeyPanedPosition, "300")},
	}

	for _, tt := range tests {
		if !errors.Is(tt.err, ErrOperationRejected) {
			t.Errorf("%s: expected ErrOperationRejected, got %v", tt.name, tt.err)
		}
	}

	// Rejected writes leave the stored value alone
	if got := b.Int(KeyPanedPosition); got != 250 {
		t.Errorf("Expected default 250 after rejection, got %d", got)
	}
}

func TestPreferencesBackend_DeclaredRange(t *testing.T) {
	schema, err := ParseSchema([]byte("id: ranged\nkeys:\n  - {name: zoom, type: i, default: \"5\", range: {min: 1, max: 10}}\n"))
	if err != nil {
		t.Fatalf("ParseSchema failed: %v", err)
	}
	b, err := NewPreferencesBackend(test.NewApp().Preferences(), schema)
	if err != nil {
		t.Fatalf("NewPreferencesBackend failed: %v", err)
	}

	if err := b.SetInt("zoom", 11); !errors.Is(err, ErrOperationRejected) {
		t.Errorf("Expected ErrOperationRejected above the range, got %v", err)
	}
	if err := b.SetInt("zoom", 10); err != nil {
		t.Errorf("SetInt at the bound failed: %v", err)
	}
	if got := b.Int("zoom"); got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
}

func TestPreferencesBackend_PanedPositionUnbounded(t *testing.T) {
	b := newPreferencesBackend(t)

	for _, v := range []int{-5, 20000, 1<<31 - 1} {
		if err := b.SetInt(KeyPanedPosition, v); err != nil {
			t.Fatalf("SetInt(%d) failed: %v", v, err)
		}
		if got := b.Int(KeyPanedPosition); got != v {
			t.Errorf("Expected %d, got %d", v, got)
		}
	}
}
