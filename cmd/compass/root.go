package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeanpaul/compass/internal/compass"
	"github.com/jeanpaul/compass/internal/config"
	"github.com/jeanpaul/compass/internal/logging"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "compass",
		Short:         "Place people on a two-axis personality grid",
		Long:          `An interactive scatter plot of people across four quadrants, saved to a local JSON file.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding people_data.json (overrides config)")

	rootCmd.AddCommand(
		NewAddCmd(),
		NewMoveCmd(),
		NewEditCmd(),
		NewRmCmd(),
		NewClearCmd(),
		NewListCmd(),
		NewHistoryCmd(),
		NewExportCmd(),
		NewImportCmd(),
		NewDoctorCmd(),
		NewWatchCmd(),
		NewVersionCmd(version),
	)
	return rootCmd
}

// loadConfig reads the layered config and applies --data-dir.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

func newStore(cfg *config.Config, logger *zap.Logger) *compass.Store {
	return compass.New(cfg.DataDir,
		compass.WithLogger(logger),
		compass.WithHiddenDir(cfg.HideDataDir),
	)
}

// openStore loads the store for read-only commands. A corrupt file is
// reported but leaves an empty store.
func openStore(cmd *cobra.Command) (*compass.Store, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.Console(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	s := newStore(cfg, logger)
	if err := s.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return s, func() { _ = logger.Sync() }, nil
}

// withSession runs fn between SessionStart and SessionEnd, so every mutating
// command leaves the same session bookkeeping in the history as the TUI.
func withSession(cmd *cobra.Command, fn func(*compass.Store) error) error {
	s, done, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer done()

	s.SessionStart()
	defer s.SessionEnd()
	return fn(s)
}
