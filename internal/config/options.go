package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ytget/md-wr/internal/platform"
)

// Option keys, shared by the config file, MDWR_* environment variables and CLI flags
const (
	OptConfigDir        = "config_dir"
	OptBackend          = "backend"
	OptSchemaDirs       = "schema_dirs"
	OptUseBundledSchema = "use_bundled_schema"
	OptLogLevel         = "log_level"
	OptLogFormat        = "log_format"
	OptSettingsKey      = "settings_key"
	OptWindowWidth      = "window_width"
	OptWindowHeight     = "window_height"
)

// EnvPrefix prefixes environment overrides, e.g. MDWR_BACKEND
const EnvPrefix = "MDWR"

// Options file lookup
const (
	OptionsFileName = "config"
	OptionsFileType = "yaml"
)

// Options configures the application shell and the choice of settings backend.
// They are read once at startup and never written back.
type Options struct {
	ConfigDir        string
	Backend          string
	SchemaDirs       []string
	UseBundledSchema bool
	LogLevel         string
	LogFormat        string
	SettingsKey      string
	WindowWidth      int
	WindowHeight     int
}

// SetOptionDefaults registers default option values on v
func SetOptionDefaults(v *viper.Viper) {
	v.SetDefault(OptBackend, BackendPreferences)
	v.SetDefault(OptUseBundledSchema, true)
	v.SetDefault(OptLogLevel, "info")
	v.SetDefault(OptLogFormat, "console")
	v.SetDefault(OptSettingsKey, KeyUserNotes)
	v.SetDefault(OptWindowWidth, 1000)
	v.SetDefault(OptWindowHeight, 700)
}

// LoadOptions resolves options from v: defaults, then config.yaml in the config
// directory, then the environment, then any flags already bound to v.
func LoadOptions(v *viper.Viper) (Options, error) {
	SetOptionDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configDir := v.GetString(OptConfigDir)
	if configDir == "" {
		dir, err := platform.UserConfigDir(AppNamespace)
		if err != nil {
			return Options{}, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		configDir = dir
	}

	v.SetConfigName(OptionsFileName)
	v.SetConfigType(OptionsFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Options{}, fmt.Errorf("failed to read options file: %w", err)
		}
	}

	opts := Options{
		ConfigDir:        configDir,
		Backend:          strings.ToLower(v.GetString(OptBackend)),
		SchemaDirs:       splitDirs(v.GetStringSlice(OptSchemaDirs)),
		UseBundledSchema: v.GetBool(OptUseBundledSchema),
		LogLevel:         v.GetString(OptLogLevel),
		LogFormat:        v.GetString(OptLogFormat),
		SettingsKey:      v.GetString(OptSettingsKey),
		WindowWidth:      v.GetInt(OptWindowWidth),
		WindowHeight:     v.GetInt(OptWindowHeight),
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks option values that cannot be defaulted
func (o Options) Validate() error {
	switch o.Backend {
	case BackendPreferences, BackendSQLite, BackendNone:
	default:
		return fmt.Errorf("unknown settings backend %q (want %s, %s or %s)", o.Backend, BackendPreferences, BackendSQLite, BackendNone)
	}
	if o.SettingsKey != "" {
		if err := validateKey(o.SettingsKey); err != nil {
			return err
		}
	}
	if o.WindowWidth <= 0 || o.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", o.WindowWidth, o.WindowHeight)
	}
	return nil
}

// splitDirs accepts both list values and a single PATH-style string
func splitDirs(values []string) []string {
	var dirs []string
	for _, v := range values {
		for _, d := range filepath.SplitList(v) {
			if d = strings.TrimSpace(d); d != "" {
				dirs = append(dirs, d)
			}
		}
	}
	return dirs
}
