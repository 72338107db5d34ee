package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/ytget/md-wr/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(Runtime{
		Version: "1.2.3",
		NewApp: func(string) fyne.App {
			a := test.NewApp()
			t.Cleanup(a.Quit)
			return a
		},
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--config-dir", t.TempDir())
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "md-wr 1.2.3\n" {
		t.Errorf("Expected 'md-wr 1.2.3', got %q", out)
	}
}

func TestSettings_FileMode(t *testing.T) {
	dir := t.TempDir()

	if _, err := execute(t, "settings", "set", config.KeyUserNotes, "hello there", "--config-dir", dir, "--backend", "none"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, config.KeyUserNotes+config.FileExtension))
	if err != nil {
		t.Fatalf("Expected flat file: %v", err)
	}
	if string(data) != "hello there" {
		t.Errorf("Expected file content 'hello there', got %q", data)
	}

	out, err := execute(t, "settings", "get", config.KeyUserNotes, "--config-dir", dir, "--backend", "none")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out != "hello there\n" {
		t.Errorf("Expected 'hello there', got %q", out)
	}
}

func TestSettings_GetDefault(t *testing.T) {
	out, err := execute(t, "settings", "get", "missing", "fallback", "--config-dir", t.TempDir(), "--backend", "none")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out != "fallback\n" {
		t.Errorf("Expected 'fallback', got %q", out)
	}
}

func TestSettings_SQLiteBackend(t *testing.T) {
	dir := t.TempDir()

	if _, err := execute(t, "settings", "set", config.KeyPanedPosition, "320", "--config-dir", dir, "--backend", "sqlite"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, config.SQLiteFileName)); err != nil {
		t.Errorf("Expected sqlite database: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.KeyPanedPosition+config.FileExtension)); !os.IsNotExist(err) {
		t.Error("Accepted write must not create a flat file")
	}

	out, err := execute(t, "settings", "get", config.KeyPanedPosition, "--config-dir", dir, "--backend", "sqlite")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if out != "320\n" {
		t.Errorf("Expected '320', got %q", out)
	}
}

func TestSettings_InvalidValue(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "settings", "set", config.KeyPanedPosition, "wide", "--config-dir", dir, "--backend", "sqlite")
	if !errors.Is(err, config.ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue, got %v", err)
	}
}

func TestSettings_Info(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "settings", "info", "--config-dir", dir, "--backend", "sqlite")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}

	for _, want := range []string{"backend:", config.BackendSQLite, dir, config.AppID, config.KeyPanedPosition} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected info output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestSettings_InfoWithoutSchema(t *testing.T) {
	out, err := execute(t, "settings", "info", "--config-dir", t.TempDir(), "--bundled-schema=false")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(out, "file") || !strings.Contains(out, "unavailable") {
		t.Errorf("Expected file-backed store without schema, got:\n%s", out)
	}
}

func TestOptionsFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: none\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "settings", "info", "--config-dir", dir)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(out, "file") {
		t.Errorf("Expected config.yaml to select the file store, got:\n%s", out)
	}
}

func TestOptionsFromEnvironment(t *testing.T) {
	t.Setenv("MDWR_BACKEND", "none")

	out, err := execute(t, "settings", "info", "--config-dir", t.TempDir())
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(out, "file") {
		t.Errorf("Expected MDWR_BACKEND to select the file store, got:\n%s", out)
	}
}

func TestUnknownBackend(t *testing.T) {
	_, err := execute(t, "settings", "get", "x", "--config-dir", t.TempDir(), "--backend", "redis")
	if err == nil || !strings.Contains(err.Error(), "unknown settings backend") {
		t.Errorf("Expected unknown backend error, got %v", err)
	}
}

func TestInvalidSettingsKeyFlag(t *testing.T) {
	_, err := execute(t, "version", "--config-dir", t.TempDir(), "--settings-key", "../escape")
	if !errors.Is(err, config.ErrInvalidKey) {
		t.Errorf("Expected ErrInvalidKey, got %v", err)
	}
}
