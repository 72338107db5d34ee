package cli

import (
	"fmt"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/ytget/md-wr/internal/config"
	"github.com/ytget/md-wr/internal/ui"
)

// runWindow opens the editor window and blocks until it is closed
func runWindow(s *session) error {
	s.logger.Info("starting", zap.String("version", s.runtime.Version))

	store := s.openStore()
	defer func() {
		if err := store.Close(); err != nil {
			s.logger.Error("failed to close settings store", zap.Error(err))
		}
	}()

	a := s.app
	a.Settings().SetTheme(ui.NewCompactTheme())

	w := a.NewWindow(fmt.Sprintf("%s v%s", AppName, s.runtime.Version))
	w.Resize(fyne.NewSize(float32(s.opts.WindowWidth), float32(s.opts.WindowHeight)))

	ui.NewRootUI(w, a, config.NewSettings(store), ui.RootOptions{
		SettingsKey: s.opts.SettingsKey,
		Logger:      s.logger.Named("ui"),
	})

	w.ShowAndRun()
	s.logger.Info("stopped")
	return nil
}
