package ui

import (
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/multierr"

	"github.com/ytget/md-wr/internal/config"
)

// PreferencesDialog edits the navigation panel link and the interface language
type PreferencesDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	homeURLEntry   *widget.Entry
	languageSelect *widget.Select
	storageLabel   *widget.Label

	languageCodes []string
}

// NewPreferencesDialog creates a new preferences dialog
func NewPreferencesDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *PreferencesDialog {
	pd := &PreferencesDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	pd.createUI()
	return pd
}

// Show displays the preferences dialog
func (pd *PreferencesDialog) Show() {
	pd.loadCurrentSettings()
	pd.dialog.Show()
}

// createUI creates the preferences dialog UI
func (pd *PreferencesDialog) createUI() {
	pd.homeURLEntry = widget.NewEntry()
	pd.homeURLEntry.SetPlaceHolder(config.DefaultHomeURL)
	pd.homeURLEntry.Validator = ValidateHomeURL

	// Language codes sorted so "system" comes last and the list is stable
	labels := pd.settings.GetLanguageOptions()
	pd.languageCodes = pd.languageCodes[:0]
	for code := range labels {
		pd.languageCodes = append(pd.languageCodes, code)
	}
	sort.Slice(pd.languageCodes, func(i, j int) bool {
		a, b := pd.languageCodes[i], pd.languageCodes[j]
		if (a == config.DefaultLanguage) != (b == config.DefaultLanguage) {
			return b == config.DefaultLanguage
		}
		return a < b
	})

	options := make([]string, 0, len(pd.languageCodes))
	for _, code := range pd.languageCodes {
		options = append(options, pd.languageLabel(code))
	}
	pd.languageSelect = widget.NewSelect(options, nil)

	pd.storageLabel = widget.NewLabel("")
	pd.storageLabel.Wrapping = fyne.TextWrapWord

	form := container.NewVBox(
		widget.NewLabel(pd.localization.GetText(KeyHomeURL)+":"),
		pd.homeURLEntry,

		widget.NewLabel(pd.localization.GetText(KeyLanguage)+":"),
		pd.languageSelect,

		widget.NewSeparator(),
		pd.storageLabel,
	)

	pd.dialog = dialog.NewCustomConfirm(
		pd.localization.GetText(KeyPreferences),
		pd.localization.GetText(KeySave),
		pd.localization.GetText(KeyCancel),
		form,
		pd.onSave,
		pd.window,
	)

	pd.dialog.Resize(fyne.NewSize(PreferencesDialogWidth, PreferencesDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (pd *PreferencesDialog) loadCurrentSettings() {
	pd.homeURLEntry.SetText(pd.settings.GetHomeURL())
	pd.languageSelect.SetSelected(pd.languageLabel(pd.settings.GetLanguage()))

	store := pd.settings.Store()
	if store.HasBackend() {
		pd.storageLabel.SetText(store.BackendName() + ": " + store.ConfigDir())
	} else {
		pd.storageLabel.SetText(pd.localization.GetText(KeyStorageFileBacked) + ": " + store.ConfigDir())
	}
}

// onSave handles saving the preferences
func (pd *PreferencesDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if err := pd.apply(); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", pd.localization.GetText(KeyErrorSavingPrefs), err), pd.window)
		return
	}

	if pd.onSaved != nil {
		pd.onSaved()
	}
}

// apply validates the form and writes it to settings
func (pd *PreferencesDialog) apply() error {
	homeURL := strings.TrimSpace(pd.homeURLEntry.Text)
	if err := ValidateHomeURL(homeURL); err != nil {
		return err
	}

	var err error
	err = multierr.Append(err, pd.settings.SetHomeURL(homeURL))

	if idx := pd.languageSelect.SelectedIndex(); idx >= 0 && idx < len(pd.languageCodes) {
		err = multierr.Append(err, pd.settings.SetLanguage(pd.languageCodes[idx]))
	}
	return err
}

func (pd *PreferencesDialog) languageLabel(code string) string {
	if code == config.DefaultLanguage {
		return pd.localization.GetText(KeySystemLanguage)
	}
	if name, ok := pd.localization.GetAvailableLanguages()[code]; ok {
		return name
	}
	return code
}

// ShowPreferencesDialog is a convenience function to show the preferences dialog
func ShowPreferencesDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewPreferencesDialog(settings, localization, window, onSaved).Show()
}
