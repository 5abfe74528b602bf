package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kanaz/internal/app"
	"github.com/abhisek/kanaz/internal/screens/home"
	"github.com/abhisek/kanaz/internal/selfupdate"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	events, closeEvents, err := openEvents()
	if err != nil {
		return err
	}
	defer closeEvents()

	var checker *selfupdate.Checker
	if cfg.Update.Check {
		checker = selfupdate.NewChecker(selfupdate.WithRepo(cfg.Update.Owner, cfg.Update.Repo))
	}

	return app.Run(app.Options{
		Loader:     newLoader(),
		KanaSource: cfg.Data.Kana,
		FoodSource: cfg.Data.Food,
		Home: home.Options{
			Driver:  driverOptions(events),
			Events:  events,
			Checker: checker,
			Version: version,
			Logger:  logger,
		},
		Logger: logger,
	})
}
