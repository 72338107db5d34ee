package cli

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ytget/md-wr/internal/config"
	"github.com/ytget/md-wr/internal/logging"
)

// AppName is the command and window name
const AppName = "md-wr"

// Flag names
const (
	flagConfigDir     = "config-dir"
	flagBackend       = "backend"
	flagSchemaDir     = "schema-dir"
	flagBundledSchema = "bundled-schema"
	flagLogLevel      = "log-level"
	flagLogFormat     = "log-format"
	flagSettingsKey   = "settings-key"
	flagWidth         = "width"
	flagHeight        = "height"
)

// Runtime carries build information and the Fyne app factory
type Runtime struct {
	Version string
	// NewApp creates the Fyne application; tests substitute the test app
	NewApp func(id string) fyne.App
}

// session is the state shared by every command after option loading
type session struct {
	runtime Runtime
	viper   *viper.Viper
	opts    config.Options
	logger  *zap.Logger
	app     fyne.App
}

// openStore opens the settings store using the app's preferences
func (s *session) openStore() *config.Store {
	if s.app == nil {
		s.app = s.runtime.NewApp(config.AppID)
	}
	return config.OpenStore(s.opts, s.app.Preferences(), s.logger.Named("settings"))
}

// NewRootCommand builds the md-wr command tree
func NewRootCommand(rt Runtime) *cobra.Command {
	if rt.Version == "" {
		rt.Version = "dev"
	}
	if rt.NewApp == nil {
		rt.NewApp = app.NewWithID
	}

	s := &session{runtime: rt, viper: viper.New()}

	root := &cobra.Command{
		Use:   AppName,
		Short: "A small notes editor with a collapsible navigation panel",
		Long: `md-wr opens a notes editor whose text, panel visibility and splitter
position persist between runs.

Settings go to the structured backend selected with --backend. When that
backend is unavailable, or rejects a write, they are written as plain files
named {key}.txt under the config directory instead.`,
		Version:       rt.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if s.logger != nil {
				_ = s.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWindow(s)
		},
	}

	flags := root.PersistentFlags()
	flags.String(flagConfigDir, "", "directory for settings files (default is the platform config dir + /md-wr)")
	flags.String(flagBackend, config.BackendPreferences, "structured settings backend: preferences, sqlite or none")
	flags.StringSlice(flagSchemaDir, nil, "extra directories searched for the settings schema")
	flags.Bool(flagBundledSchema, true, "fall back to the schema compiled into the binary")
	flags.String(flagLogLevel, "info", "log level: debug, info, warn or error")
	flags.String(flagLogFormat, logging.FormatConsole, "log format: console or json")
	flags.String(flagSettingsKey, config.KeyUserNotes, "settings key the editor text is saved under")
	root.Flags().Int(flagWidth, 1000, "initial window width")
	root.Flags().Int(flagHeight, 700, "initial window height")

	bind := map[string]string{
		config.OptConfigDir:        flagConfigDir,
		config.OptBackend:          flagBackend,
		config.OptSchemaDirs:       flagSchemaDir,
		config.OptUseBundledSchema: flagBundledSchema,
		config.OptLogLevel:         flagLogLevel,
		config.OptLogFormat:        flagLogFormat,
		config.OptSettingsKey:      flagSettingsKey,
	}
	for key, name := range bind {
		cobra.CheckErr(s.viper.BindPFlag(key, flags.Lookup(name)))
	}
	cobra.CheckErr(s.viper.BindPFlag(config.OptWindowWidth, root.Flags().Lookup(flagWidth)))
	cobra.CheckErr(s.viper.BindPFlag(config.OptWindowHeight, root.Flags().Lookup(flagHeight)))

	root.AddCommand(newVersionCommand(s))
	root.AddCommand(newSettingsCommand(s))
	return root
}

// load resolves options and builds the logger
func (s *session) load() error {
	opts, err := config.LoadOptions(s.viper)
	if err != nil {
		return err
	}

	logger, err := logging.New(opts.LogLevel, opts.LogFormat)
	if err != nil {
		return err
	}

	s.opts = opts
	s.logger = logger
	s.logger.Debug("options loaded",
		zap.String("config_dir", opts.ConfigDir),
		zap.String("backend", opts.Backend),
		zap.Strings("schema_dirs", opts.SchemaDirs))
	return nil
}

// Execute runs the command line and exits non-zero on failure
func Execute(version string) {
	root := NewRootCommand(Runtime{Version: version})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}
