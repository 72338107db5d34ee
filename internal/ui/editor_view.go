package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/md-wr/internal/editor"
	"github.com/ytget/md-wr/internal/model"
)

// notesEntry is a multi-line entry that reports focus changes
type notesEntry struct {
	widget.Entry

	focused        bool
	onFocusChanged func(focused bool)
}

func newNotesEntry() *notesEntry {
	e := &notesEntry{}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	return e
}

// FocusGained implements fyne.Focusable
func (e *notesEntry) FocusGained() {
	e.Entry.FocusGained()
	e.focused = true
	if e.onFocusChanged != nil {
		e.onFocusChanged(true)
	}
}

// FocusLost implements fyne.Focusable
func (e *notesEntry) FocusLost() {
	e.Entry.FocusLost()
	e.focused = false
	if e.onFocusChanged != nil {
		e.onFocusChanged(false)
	}
}

// EditorView is the notes editor widget: a titled text area with word and
// character counters, save and clear actions, and a collapsible navigation
// panel on the right. Text and panel state persist through editor.Settings.
type EditorView struct {
	widget.BaseWidget

	// OnTextChanged is called after every edit
	OnTextChanged func(text string)
	// OnNavigationToggled is called after the panel is shown or hidden by the user
	OnNavigationToggled func(visible bool)
	// OnSaveFailed is called when an explicit save fails
	OnSaveFailed func(err error)

	controller   *editor.Controller
	localization *Localization

	title     *widget.Label
	entry     *notesEntry
	words     *canvas.Text
	chars     *canvas.Text
	saveBtn   *widget.Button
	clearBtn  *widget.Button
	navToggle *widget.Button
	nav       *NavigationPanel

	editorPane *fyne.Container
	split      *container.Split
	body       *fyne.Container

	placeholder     string
	stats           model.TextStats
	navAttached     bool
	pendingPosition int
}

// NewEditorView creates the editor and applies the saved navigation state.
// Call SetSettingsKey to load and persist text.
func NewEditorView(settings editor.Settings, localization *Localization, homeURL string, opts ...editor.Option) *EditorView {
	v := &EditorView{
		localization: localization,
		placeholder:  localization.GetText(KeyPlaceholder),
	}

	v.title = widget.NewLabelWithStyle(localization.GetText(KeyNotesTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.entry = newNotesEntry()
	v.entry.SetPlaceHolder(v.placeholder)
	v.words = canvas.NewText("", captionColor())
	v.chars = canvas.NewText("", captionColor())
	v.words.TextSize = theme.CaptionTextSize()
	v.chars.TextSize = theme.CaptionTextSize()

	v.saveBtn = widget.NewButtonWithIcon(localization.GetText(KeySave), theme.DocumentSaveIcon(), v.onSave)
	v.saveBtn.Importance = widget.HighImportance
	v.clearBtn = widget.NewButtonWithIcon(localization.GetText(KeyClear), theme.ContentClearIcon(), v.ClearText)
	v.clearBtn.Importance = widget.DangerImportance
	v.navToggle = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), v.ToggleNavigationPanel)
	v.navToggle.Importance = widget.LowImportance

	v.nav = NewNavigationPanel(localization.GetText(KeyPreview), homeURL)

	header := container.NewBorder(nil, nil, v.title, v.navToggle)
	footer := container.NewHBox(v.words, v.chars, layout.NewSpacer(), v.clearBtn, v.saveBtn)
	v.editorPane = container.NewBorder(header, footer, nil, nil, v.entry)
	v.split = container.NewHSplit(v.editorPane, v.nav)
	v.body = container.NewStack(v.editorPane)

	v.controller = editor.NewController(surface{v}, settings, opts...)
	v.entry.OnChanged = v.onTextChanged
	v.entry.onFocusChanged = v.controller.FocusChanged

	v.ExtendBaseWidget(v)

	v.surface().ShowStats(model.TextStats{})
	v.controller.LoadNavigationState()
	return v
}

// Controller returns the controller driving this view
func (v *EditorView) Controller() *editor.Controller {
	return v.controller
}

// Text returns the current editor text
func (v *EditorView) Text() string {
	return v.entry.Text
}

// SetText replaces the editor text
func (v *EditorView) SetText(text string) {
	v.entry.SetText(text)
}

// ClearText empties the editor
func (v *EditorView) ClearText() {
	v.controller.Clear()
}

// SetSettingsKey binds the editor to key and loads its saved text
func (v *EditorView) SetSettingsKey(key string) {
	v.controller.SetSettingsKey(key)
}

// SetAutoSave enables saving on every edit
func (v *EditorView) SetAutoSave(autoSave bool) {
	v.controller.SetAutoSave(autoSave)
}

// Save writes the text under the bound key
func (v *EditorView) Save() error {
	return v.controller.Save()
}

// Load re-reads the text saved under the bound key
func (v *EditorView) Load() {
	v.controller.Load()
}

// SetPlaceholderText sets the hint shown while the editor is empty and unfocused
func (v *EditorView) SetPlaceholderText(text string) {
	v.placeholder = text
	v.controller.FocusChanged(v.entry.focused)
}

// SetMonospace switches the editor font
func (v *EditorView) SetMonospace(monospace bool) {
	v.entry.TextStyle.Monospace = monospace
	v.entry.Refresh()
}

// SetWrapping sets how long lines wrap
func (v *EditorView) SetWrapping(wrap fyne.TextWrap) {
	v.entry.Wrapping = wrap
	v.entry.Refresh()
}

// Stats returns the counters currently displayed
func (v *EditorView) Stats() model.TextStats {
	return v.stats
}

// ToggleNavigationPanel shows or hides the navigation panel
func (v *EditorView) ToggleNavigationPanel() {
	v.SetNavigationPanelVisible(!v.controller.NavigationVisible())
}

// SetNavigationPanelVisible shows or hides the navigation panel and saves the state
func (v *EditorView) SetNavigationPanelVisible(visible bool) {
	v.controller.SetNavigationVisible(visible, v.livePosition())
	if v.OnNavigationToggled != nil {
		v.OnNavigationToggled(visible)
	}
}

// IsNavigationPanelVisible reports whether the panel is shown
func (v *EditorView) IsNavigationPanelVisible() bool {
	return v.controller.NavigationVisible()
}

// PanedPosition returns the splitter position in pixels from the left edge
func (v *EditorView) PanedPosition() int {
	if pos := v.livePosition(); pos > 0 {
		return pos
	}
	return v.controller.PanedPosition()
}

// SetHomeURL points the navigation panel link at raw
func (v *EditorView) SetHomeURL(raw string) error {
	return v.nav.SetHomeURL(raw)
}

// RefreshTexts re-applies localized strings
func (v *EditorView) RefreshTexts() {
	v.title.SetText(v.localization.GetText(KeyNotesTitle))
	v.saveBtn.SetText(v.localization.GetText(KeySave))
	v.clearBtn.SetText(v.localization.GetText(KeyClear))
	v.nav.SetTitle(v.localization.GetText(KeyPreview))
	v.SetPlaceholderText(v.localization.GetText(KeyPlaceholder))
	v.surface().ShowStats(v.stats)
}

// Dispose saves the final state. The view must not be used afterwards.
func (v *EditorView) Dispose() error {
	return v.controller.Dispose()
}

// Resize applies a splitter position that arrived before the first layout
func (v *EditorView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	if v.pendingPosition > 0 && size.Width > 0 && v.navAttached {
		v.applyPosition(v.pendingPosition)
	}
}

// CreateRenderer implements fyne.Widget
func (v *EditorView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.body)
}

func (v *EditorView) surface() surface {
	return surface{v}
}

func (v *EditorView) onTextChanged(text string) {
	v.controller.TextChanged(text)
	if v.navAttached {
		v.nav.SetMarkdown(text)
	}
	if v.OnTextChanged != nil {
		v.OnTextChanged(text)
	}
}

func (v *EditorView) onSave() {
	if err := v.controller.Save(); err != nil && v.OnSaveFailed != nil {
		v.OnSaveFailed(err)
	}
}

// livePosition returns the splitter position, or 0 before layout or while detached
func (v *EditorView) livePosition() int {
	width := v.Size().Width
	if !v.navAttached || width <= 0 {
		return 0
	}
	return int(v.split.Offset * float64(width))
}

func (v *EditorView) applyPosition(position int) {
	width := v.Size().Width
	if width <= 0 {
		v.pendingPosition = position
		return
	}
	v.pendingPosition = 0

	offset := float64(position) / float64(width)
	if offset < MinSplitOffset {
		offset = MinSplitOffset
	} else if offset > MaxSplitOffset {
		offset = MaxSplitOffset
	}
	v.split.SetOffset(offset)
}

// surface adapts EditorView to editor.View
type surface struct {
	v *EditorView
}

func (s surface) Text() string {
	return s.v.entry.Text
}

func (s surface) SetText(text string) {
	s.v.entry.SetText(text)
}

func (s surface) ShowStats(stats model.TextStats) {
	v := s.v
	v.stats = stats
	v.words.Text = fmt.Sprintf(WordsLabelFormat, v.localization.GetText(KeyWords), stats.Words)
	v.chars.Text = fmt.Sprintf(CharsLabelFormat, v.localization.GetText(KeyCharacters), stats.Chars)
	v.words.Refresh()
	v.chars.Refresh()
}

func (s surface) SetPlaceholderVisible(visible bool) {
	if visible {
		s.v.entry.SetPlaceHolder(s.v.placeholder)
		return
	}
	s.v.entry.SetPlaceHolder("")
}

func (s surface) ShowNavigation(position int) {
	v := s.v
	if !v.navAttached {
		v.body.Objects = []fyne.CanvasObject{v.split}
		v.navAttached = true
	}
	v.nav.SetMarkdown(v.entry.Text)
	v.nav.Show()
	v.applyPosition(position)
	v.navToggle.SetIcon(theme.NavigateNextIcon())
	v.body.Refresh()
}

func (s surface) HideNavigation() {
	v := s.v
	v.nav.Hide()
	v.navToggle.SetIcon(theme.NavigateBackIcon())
	v.body.Refresh()
}

func (s surface) DetachNavigation() {
	v := s.v
	if !v.navAttached {
		return
	}
	v.body.Objects = []fyne.CanvasObject{v.editorPane}
	v.navAttached = false
	v.pendingPosition = 0
	v.body.Refresh()
}

func captionColor() color.Color {
	app := fyne.CurrentApp()
	if app == nil {
		return theme.DefaultTheme().Color(theme.ColorNameForeground, theme.VariantLight)
	}
	settings := app.Settings()
	return settings.Theme().Color(ColorNameCaption, settings.ThemeVariant())
}
