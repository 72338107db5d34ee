package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyNotesTitle        = "notes_title"
	KeyPlaceholder       = "placeholder"
	KeySave              = "save"
	KeyClear             = "clear"
	KeyWords             = "words"
	KeyCharacters        = "characters"
	KeyShowPanel         = "show_panel"
	KeyHidePanel         = "hide_panel"
	KeyFile              = "file"
	KeyView              = "view"
	KeyLanguage          = "language"
	KeyPreferences       = "preferences"
	KeyHomeURL           = "home_url"
	KeyCancel            = "cancel"
	KeyPreferencesSaved  = "preferences_saved"
	KeyPreview           = "preview"
	KeyErrorSavingNotes  = "error_saving_notes"
	KeyErrorSavingPrefs  = "error_saving_preferences"
	KeySystemLanguage    = "system_language"
	KeyStorageFileBacked = "storage_file_backed"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "MD Writer",
		KeyNotesTitle:        "Notes",
		KeyPlaceholder:       "Start writing your masterpiece...",
		KeySave:              "Save",
		KeyClear:             "Clear",
		KeyWords:             "Words",
		KeyCharacters:        "Characters",
		KeyShowPanel:         "Show Navigation Panel",
		KeyHidePanel:         "Hide Navigation Panel",
		KeyFile:              "File",
		KeyView:              "View",
		KeyLanguage:          "Language",
		KeyPreferences:       "Preferences",
		KeyHomeURL:           "Navigation Panel Link",
		KeyCancel:            "Cancel",
		KeyPreferencesSaved:  "Preferences saved",
		KeyPreview:           "Preview",
		KeyErrorSavingNotes:  "Could not save notes",
		KeyErrorSavingPrefs:  "Could not save preferences",
		KeySystemLanguage:    "System Default",
		KeyStorageFileBacked: "Settings are stored in plain files",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "MD Писатель",
		KeyNotesTitle:        "Заметки",
		KeyPlaceholder:       "Начните писать свой шедевр...",
		KeySave:              "Сохранить",
		KeyClear:             "Очистить",
		KeyWords:             "Слова",
		KeyCharacters:        "Символы",
		KeyShowPanel:         "Показать панель навигации",
		KeyHidePanel:         "Скрыть панель навигации",
		KeyFile:              "Файл",
		KeyView:              "Вид",
		KeyLanguage:          "Язык",
		KeyPreferences:       "Параметры",
		KeyHomeURL:           "Ссылка панели навигации",
		KeyCancel:            "Отмена",
		KeyPreferencesSaved:  "Параметры сохранены",
		KeyPreview:           "Просмотр",
		KeyErrorSavingNotes:  "Не удалось сохранить заметки",
		KeyErrorSavingPrefs:  "Не удалось сохранить параметры",
		KeySystemLanguage:    "Как в системе",
		KeyStorageFileBacked: "Настройки хранятся в обычных файлах",
	}
}
