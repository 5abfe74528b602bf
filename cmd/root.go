package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kanaz/internal/config"
	"github.com/abhisek/kanaz/internal/distractor"
	"github.com/abhisek/kanaz/internal/logging"
	"github.com/abhisek/kanaz/internal/quiz"
	"github.com/abhisek/kanaz/internal/store"
	"github.com/abhisek/kanaz/internal/vocab"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "kanaz",
	Short: "Kana flashcard quiz for the terminal",
	Long: "kanaz drills recognition of hiragana, katakana and food words. Each prompt " +
		"shows an emoji and a description with four kana spellings to choose from.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/kanaz/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides KANAZ_DB env var)")
	pf.String("kana-data", "", "Kana dataset file or URL (default: built-in)")
	pf.String("food-data", "", "Food dataset file or URL (default: built-in)")
	pf.Uint64("seed", 0, "Random seed for reproducible quizzes (0 picks one)")
	pf.String("log-level", "", "Log level: debug, info, warn, error or off")
	pf.Bool("no-store", false, "Do not record sessions and answers")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// setup loads configuration and the logger for every command.
func setup(cmd *cobra.Command) error {
	c, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	cfg = c

	l, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = l.With(zap.String("version", version))
	logger.Debug("config loaded", zap.Any("config", cfg))
	return nil
}

// resolveDBPath returns the database path from --db / config (highest
// priority), then the KANAZ_DB env var, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openEvents opens the event store unless recording is disabled. The
// returned close function is never nil.
func openEvents() (store.EventRepo, func(), error) {
	if !cfg.StoreEnabled {
		return nil, func() {}, nil
	}
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))
	return st.EventRepo(), func() { _ = st.Close() }, nil
}

func newLoader() *vocab.Loader {
	return vocab.NewLoader(vocab.WithLogger(logger))
}

func driverOptions(events store.EventRepo) quiz.DriverOptions {
	return quiz.DriverOptions{
		Rand:        distractor.NewRand(cfg.Seed),
		MaxAttempts: cfg.Distractors.MaxAttempts,
		Events:      events,
		Logger:      logger,
	}
}
