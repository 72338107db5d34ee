package ui

import (
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"go.uber.org/zap"

	"github.com/ytget/md-wr/internal/config"
	"github.com/ytget/md-wr/internal/editor"
)

// RootUI represents the main window: the notes editor plus menus
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	editor       *EditorView
	logger       *zap.Logger

	toggleItem *fyne.MenuItem
	closed     bool
}

// RootOptions configures NewRootUI
type RootOptions struct {
	// SettingsKey is the key the notes are saved under
	SettingsKey string
	// Scheduler overrides the panel detach scheduler, mainly for tests
	Scheduler editor.Scheduler
	Logger    *zap.Logger
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, opts RootOptions) *RootUI {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = editor.TimeScheduler{Wrap: onMainThread}
	}
	key := opts.SettingsKey
	if key == "" {
		key = config.KeyUserNotes
	}

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		logger:       logger,
	}

	ui.editor = NewEditorView(settings, localization, settings.GetHomeURL(),
		editor.WithLogger(logger.Named("editor")),
		editor.WithScheduler(scheduler))
	ui.editor.SetSettingsKey(key)
	ui.editor.SetAutoSave(true)
	ui.editor.OnSaveFailed = ui.onSaveFailed
	ui.editor.OnNavigationToggled = func(bool) { ui.refreshToggleItem() }

	if icon, err := LoadIconResource(); err == nil {
		app.SetIcon(icon)
	}
	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetContent(ui.editor)
	window.SetCloseIntercept(func() {
		ui.Close()
		window.Close()
	})

	ui.createMenu()

	logger.Info("main window ready",
		zap.String("settings_key", key),
		zap.String("storage", settings.Store().BackendName()),
		zap.Bool("navigation_visible", ui.editor.IsNavigationPanelVisible()))
	return ui
}

// Editor returns the notes editor
func (ui *RootUI) Editor() *EditorView {
	return ui.editor
}

// Close persists the editor state. Safe to call more than once.
func (ui *RootUI) Close() {
	if ui.closed {
		return
	}
	ui.closed = true

	if err := ui.editor.Dispose(); err != nil {
		ui.logger.Error("failed to save state on close", zap.Error(err))
	}
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	saveItem := fyne.NewMenuItem(ui.localization.GetText(KeySave), func() {
		if err := ui.editor.Save(); err != nil {
			ui.onSaveFailed(err)
		}
	})
	clearItem := fyne.NewMenuItem(ui.localization.GetText(KeyClear), ui.editor.ClearText)
	preferencesItem := fyne.NewMenuItem(ui.localization.GetText(KeyPreferences), ui.onShowPreferences)

	ui.toggleItem = fyne.NewMenuItem(ui.toggleLabel(), ui.editor.ToggleNavigationPanel)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(availableLanguages))
	for code := range availableLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), saveItem, clearItem, fyne.NewMenuItemSeparator(), preferencesItem),
		fyne.NewMenu(ui.localization.GetText(KeyView), ui.toggleItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

func (ui *RootUI) refreshToggleItem() {
	if ui.toggleItem == nil {
		return
	}
	ui.toggleItem.Label = ui.toggleLabel()
	if menu := ui.window.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

func (ui *RootUI) toggleLabel() string {
	if ui.editor.IsNavigationPanelVisible() {
		return ui.localization.GetText(KeyHidePanel)
	}
	return ui.localization.GetText(KeyShowPanel)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)

	if err := ui.settings.SetLanguage(langCode); err != nil {
		ui.logger.Error("failed to save language", zap.String("language", langCode), zap.Error(err))
	}

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.editor.RefreshTexts()
}

// onShowPreferences shows the preferences dialog
func (ui *RootUI) onShowPreferences() {
	ShowPreferencesDialog(ui.window, ui.settings, ui.localization, ui.onPreferencesSaved)
}

// onPreferencesSaved applies saved preferences to the running window
func (ui *RootUI) onPreferencesSaved() {
	if err := ui.editor.SetHomeURL(ui.settings.GetHomeURL()); err != nil {
		ui.logger.Warn("ignoring saved home URL", zap.Error(err))
	}
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	dialog.ShowInformation(ui.localization.GetText(KeyPreferences), ui.localization.GetText(KeyPreferencesSaved), ui.window)
}

func (ui *RootUI) onSaveFailed(err error) {
	ui.logger.Error("save failed", zap.Error(err))
	dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorSavingNotes), err), ui.window)
}

// onMainThread wraps f so it runs on the Fyne event loop
func onMainThread(f func()) func() {
	return func() {
		fyne.Do(f)
	}
}
