package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/md-wr/internal/config"
)

func newSettingsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and write settings without opening the editor",
		Long: `Read and write settings through the same store the editor uses.

Examples:
  md-wr settings get user-notes
  md-wr settings set navigation-panel-visible true
  md-wr settings set paned-position 320 --backend sqlite
  md-wr settings info`,
	}

	cmd.AddCommand(
		newSettingsGetCommand(s),
		newSettingsSetCommand(s),
		newSettingsInfoCommand(s),
	)
	return cmd
}

func newSettingsGetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> [default]",
		Short: "Print the value stored under key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def := ""
			if len(args) == 2 {
				def = args[1]
			}

			return withStore(s, func(store *config.Store) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), store.Get(args[0], def))
				return err
			})
		},
	}
}

func newSettingsSetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store value under key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(s, func(store *config.Store) error {
				if err := store.Set(args[0], args[1]); err != nil {
					return err
				}
				s.logger.Debug("setting written", zap.String("key", args[0]))
				return nil
			})
		},
	}
}

func newSettingsInfoCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show where settings are stored and which keys are declared",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(s, func(store *config.Store) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "backend:\t%s\n", store.BackendName())
				fmt.Fprintf(w, "config dir:\t%s\n", store.ConfigDir())

				schema, err := config.LoadSchema(config.AppID, s.opts.SchemaDirs, s.opts.UseBundledSchema)
				if err != nil {
					fmt.Fprintf(w, "schema:\tunavailable (%v)\n", err)
					return w.Flush()
				}
				fmt.Fprintf(w, "schema:\t%s\n", schema.ID)
				for _, key := range schema.Keys {
					fmt.Fprintf(w, "  %s\t%s\tdefault %q\n", key.Name, key.Type, key.Default)
				}
				return w.Flush()
			})
		},
	}
}

// withStore opens the store for the duration of fn
func withStore(s *session, fn func(store *config.Store) error) error {
	store := s.openStore()
	defer func() {
		if err := store.Close(); err != nil {
			s.logger.Warn("failed to close settings store", zap.Error(err))
		}
	}()
	return fn(store)
}
