package config

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"go.uber.org/zap"
)

func testOptions(t *testing.T, backend string) Options {
	t.Helper()
	return Options{
		ConfigDir:        t.TempDir(),
		Backend:          backend,
		UseBundledSchema: true,
		SettingsKey:      KeyUserNotes,
		WindowWidth:      1000,
		WindowHeight:     700,
	}
}

func TestOpenBackend(t *testing.T) {
	prefs := test.NewApp().Preferences()

	b, err := OpenBackend(testOptions(t, BackendPreferences), prefs, zap.NewNop())
	if err != nil {
		t.Fatalf("preferences backend: %v", err)
	}
	if b.Name() != BackendPreferences {
		t.Errorf("Expected %s, got %s", BackendPreferences, b.Name())
	}

	b, err = OpenBackend(testOptions(t, BackendSQLite), prefs, zap.NewNop())
	if err != nil {
		t.Fatalf("sqlite backend: %v", err)
	}
	if b.Name() != BackendSQLite {
		t.Errorf("Expected %s, got %s", BackendSQLite, b.Name())
	}
	b.(*SQLiteBackend).Close()
}

func TestOpenBackend_Unavailable(t *testing.T) {
	prefs := test.NewApp().Preferences()

	noSchema := testOptions(t, BackendPreferences)
	noSchema.UseBundledSchema = false

	tests := []struct {
		name  string
		opts  Options
		prefs bool
	}{
		{"disabled", testOptions(t, BackendNone), true},
		{"schema not installed", noSchema, true},
		{"no preferences", testOptions(t, BackendPreferences), false},
	}

	for _, tt := range tests {
		p := prefs
		if !tt.prefs {
			p = nil
		}
		b, err := OpenBackend(tt.opts, p, zap.NewNop())
		if !errors.Is(err, ErrBackendUnavailable) {
			t.Errorf("%s: expected ErrBackendUnavailable, got %v", tt.name, err)
		}
		if b != nil {
			t.Errorf("%s: backend should be nil", tt.name)
		}
	}
}

func TestOpenStore(t *testing.T) {
	prefs := test.NewApp().Preferences()

	withBackend := OpenStore(testOptions(t, BackendPreferences), prefs, nil)
	if !withBackend.HasBackend() {
		t.Error("Expected a structured backend")
	}

	noSchema := testOptions(t, BackendSQLite)
	noSchema.UseBundledSchema = false
	fileOnly := OpenStore(noSchema, prefs, zap.NewNop())
	if fileOnly.HasBackend() {
		t.Error("Missing schema should leave the store in file mode")
	}

	// File mode still persists
	if err := fileOnly.Set(KeyPanedPosition, "300"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := fileOnly.Get(KeyPanedPosition, "250"); got != "300" {
		t.Errorf("Expected %q, got %q", "300", got)
	}
}
