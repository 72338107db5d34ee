package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"go.uber.org/zap"

	"github.com/ytget/md-wr/internal/config"
	"github.com/ytget/md-wr/internal/editor"
	"github.com/ytget/md-wr/internal/model"
)

type manualTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// manualScheduler runs deferred actions only when fireAll is called
type manualScheduler struct {
	pending []*manualTimer
}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) editor.Timer {
	t := &manualTimer{f: f}
	s.pending = append(s.pending, t)
	return t
}

func (s *manualScheduler) fireAll() {
	pending := s.pending
	s.pending = nil
	for _, t := range pending {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

func newTestApp(t *testing.T) fyne.App {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	return a
}

func newFileSettings(t *testing.T) *config.Settings {
	t.Helper()
	return config.NewSettings(config.NewStore(nil, t.TempDir(), zap.NewNop()))
}

func newTestEditor(t *testing.T, settings editor.Settings) (*EditorView, *manualScheduler) {
	t.Helper()
	newTestApp(t)
	sched := &manualScheduler{}
	v := NewEditorView(settings, NewLocalization(), config.DefaultHomeURL, editor.WithScheduler(sched))
	return v, sched
}

func TestEditorView_TypingUpdatesCountsAndAutoSaves(t *testing.T) {
	settings := newFileSettings(t)
	v, _ := newTestEditor(t, settings)
	v.SetSettingsKey(config.KeyUserNotes)
	v.SetAutoSave(true)

	test.Type(v.entry, "hello world")

	if got := v.Stats(); got != (model.TextStats{Chars: 11, Words: 2}) {
		t.Errorf("Expected 11 chars and 2 words, got %+v", got)
	}
	if v.words.Text != "Words: 2" {
		t.Errorf("Expected words label 'Words: 2', got %q", v.words.Text)
	}
	if v.chars.Text != "Characters: 11" {
		t.Errorf("Expected chars label 'Characters: 11', got %q", v.chars.Text)
	}
	if got := settings.GetText(config.KeyUserNotes); got != "hello world" {
		t.Errorf("Expected auto-saved text, got %q", got)
	}
}

func TestEditorView_NoAutoSaveByDefault(t *testing.T) {
	settings := newFileSettings(t)
	v, _ := newTestEditor(t, settings)
	v.SetSettingsKey(config.KeyUserNotes)

	test.Type(v.entry, "draft")

	if got := settings.GetText(config.KeyUserNotes); got != "" {
		t.Errorf("Expected nothing saved without auto-save, got %q", got)
	}

	test.Tap(v.saveBtn)
	if got := settings.GetText(config.KeyUserNotes); got != "draft" {
		t.Errorf("Expected save button to persist text, got %q", got)
	}
}

func TestEditorView_LoadsSavedText(t *testing.T) {
	settings := newFileSettings(t)
	if err := settings.SetText(config.KeyUserNotes, "saved notes here"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}

	v, _ := newTestEditor(t, settings)
	v.SetAutoSave(true)
	v.SetSettingsKey(config.KeyUserNotes)

	if v.Text() != "saved notes here" {
		t.Errorf("Expected loaded text, got %q", v.Text())
	}
	if v.Stats().Words != 3 {
		t.Errorf("Expected 3 words after load, got %d", v.Stats().Words)
	}
}

func TestEditorView_ClearButton(t *testing.T) {
	settings := newFileSettings(t)
	v, _ := newTestEditor(t, settings)
	v.SetSettingsKey(config.KeyUserNotes)
	v.SetAutoSave(true)
	test.Type(v.entry, "to be removed")

	test.Tap(v.clearBtn)

	if v.Text() != "" {
		t.Errorf("Expected empty editor, got %q", v.Text())
	}
	if v.Stats() != (model.TextStats{}) {
		t.Errorf("Expected zero counts, got %+v", v.Stats())
	}
	if got := settings.GetText(config.KeyUserNotes); got != "" {
		t.Errorf("Expected cleared text to be saved, got %q", got)
	}
}

// countingSettings counts text saves on top of the file store
type countingSettings struct {
	*config.Settings
	saves int
}

func (s *countingSettings) SetText(key, text string) error {
	s.saves++
	return s.Settings.SetText(key, text)
}

func TestEditorView_ClearSavesOnce(t *testing.T) {
	settings := &countingSettings{Settings: newFileSettings(t)}
	v, _ := newTestEditor(t, settings)
	v.SetSettingsKey(config.KeyUserNotes)
	v.SetAutoSave(true)
	test.Type(v.entry, "abc")

	before := settings.saves
	test.Tap(v.clearBtn)

	if got := settings.saves - before; got != 1 {
		t.Errorf("Expected one save for a clear, got %d", got)
	}
}

func TestEditorView_SaveWithoutKeyReportsError(t *testing.T) {
	v, _ := newTestEditor(t, newFileSettings(t))

	var saveErr error
	v.OnSaveFailed = func(err error) { saveErr = err }
	test.Tap(v.saveBtn)

	if !errors.Is(saveErr, editor.ErrNoSettingsKey) {
		t.Errorf("Expected ErrNoSettingsKey, got %v", saveErr)
	}
}

func TestEditorView_Placeholder(t *testing.T) {
	v, _ := newTestEditor(t, newFileSettings(t))
	placeholder := NewLocalization().GetText(KeyPlaceholder)

	if v.entry.PlaceHolder != placeholder {
		t.Errorf("Expected placeholder %q, got %q", placeholder, v.entry.PlaceHolder)
	}

	v.entry.FocusGained()
	if v.entry.PlaceHolder != "" {
		t.Errorf("Expected placeholder hidden while focused, got %q", v.entry.PlaceHolder)
	}

	v.entry.FocusLost()
	if v.entry.PlaceHolder != placeholder {
		t.Errorf("Expected placeholder back after blur, got %q", v.entry.PlaceHolder)
	}

	v.SetPlaceholderText("Write here")
	if v.entry.PlaceHolder != "Write here" {
		t.Errorf("Expected custom placeholder, got %q", v.entry.PlaceHolder)
	}
}

func TestEditorView_NavigationToggle(t *testing.T) {
	settings := newFileSettings(t)
	v, sched := newTestEditor(t, settings)

	if v.IsNavigationPanelVisible() {
		t.Fatal("Panel should start hidden")
	}
	if v.body.Objects[0] != v.editorPane {
		t.Fatal("Hidden panel should not be attached")
	}

	var toggled []bool
	v.OnNavigationToggled = func(visible bool) { toggled = append(toggled, visible) }

	test.Tap(v.navToggle)
	if !v.IsNavigationPanelVisible() {
		t.Error("Panel should be visible after toggle")
	}
	if v.body.Objects[0] != v.split {
		t.Error("Visible panel should be attached through the split")
	}
	if !settings.GetNavigationState().Visible {
		t.Error("Visible state should be saved")
	}

	test.Tap(v.navToggle)
	if v.IsNavigationPanelVisible() {
		t.Error("Panel should be hidden after second toggle")
	}
	if v.nav.Visible() {
		t.Error("Panel should be concealed immediately")
	}
	if v.body.Objects[0] != v.split {
		t.Error("Panel should stay attached until the hide delay passes")
	}

	sched.fireAll()
	if v.body.Objects[0] != v.editorPane {
		t.Error("Panel should be detached after the hide delay")
	}
	if settings.GetNavigationState().Visible {
		t.Error("Hidden state should be saved")
	}
	if len(toggled) != 2 || !toggled[0] || toggled[1] {
		t.Errorf("Expected toggle callbacks [true false], got %v", toggled)
	}
}

func TestEditorView_ReshowCancelsDetach(t *testing.T) {
	v, sched := newTestEditor(t, newFileSettings(t))

	v.SetNavigationPanelVisible(true)
	v.SetNavigationPanelVisible(false)
	v.SetNavigationPanelVisible(true)
	sched.fireAll()

	if v.body.Objects[0] != v.split {
		t.Error("Re-shown panel must stay attached")
	}
	if !v.nav.Visible() {
		t.Error("Re-shown panel must be visible")
	}
}

func TestEditorView_RestoresNavigationState(t *testing.T) {
	settings := newFileSettings(t)
	if err := settings.SetNavigationState(model.NavigationState{Visible: true, Position: 250}); err != nil {
		t.Fatalf("SetNavigationState failed: %v", err)
	}

	v, _ := newTestEditor(t, settings)
	if !v.IsNavigationPanelVisible() {
		t.Fatal("Saved visible state should be restored")
	}

	// The position is applied once the widget has a width
	v.Resize(fyne.NewSize(1000, 600))
	if v.split.Offset != 0.25 {
		t.Errorf("Expected split offset 0.25, got %v", v.split.Offset)
	}
	if v.PanedPosition() != 250 {
		t.Errorf("Expected paned position 250, got %d", v.PanedPosition())
	}
}

func TestEditorView_PreviewFollowsText(t *testing.T) {
	v, _ := newTestEditor(t, newFileSettings(t))
	v.SetNavigationPanelVisible(true)

	test.Type(v.entry, "# Title")

	if !strings.Contains(v.nav.preview.String(), "Title") {
		t.Errorf("Expected preview to render typed markdown, got %q", v.nav.preview.String())
	}
}

func TestEditorView_DisposeSavesState(t *testing.T) {
	settings := newFileSettings(t)
	v, _ := newTestEditor(t, settings)
	v.SetSettingsKey(config.KeyUserNotes)
	v.SetAutoSave(true)
	v.SetNavigationPanelVisible(true)
	v.SetText("final words")

	if err := v.Dispose(); err != nil {
		t.Fatalf("Dispose failed: %v", err)
	}

	if got := settings.GetText(config.KeyUserNotes); got != "final words" {
		t.Errorf("Expected final text saved, got %q", got)
	}
	if !settings.GetNavigationState().Visible {
		t.Error("Expected navigation state saved on dispose")
	}
}

func TestEditorView_RefreshTexts(t *testing.T) {
	newTestApp(t)
	loc := NewLocalization()
	v := NewEditorView(newFileSettings(t), loc, config.DefaultHomeURL, editor.WithScheduler(&manualScheduler{}))

	loc.SetLanguage("ru")
	v.RefreshTexts()

	if v.saveBtn.Text != "Сохранить" {
		t.Errorf("Expected Russian save label, got %q", v.saveBtn.Text)
	}
	if !strings.HasPrefix(v.words.Text, "Слова") {
		t.Errorf("Expected Russian words label, got %q", v.words.Text)
	}
	if v.entry.PlaceHolder != loc.GetText(KeyPlaceholder) {
		t.Errorf("Expected Russian placeholder, got %q", v.entry.PlaceHolder)
	}
}
