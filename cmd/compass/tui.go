package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeanpaul/compass/internal/compass"
	"github.com/jeanpaul/compass/internal/logging"
	"github.com/jeanpaul/compass/internal/tui"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, statErr := os.Stat(cfg.DataDir)
	logger, err := logging.File(cfg.LogLevel, cfg.LogFile())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	// The log file creates the data dir, so the store never sees it new.
	if os.IsNotExist(statErr) && cfg.HideDataDir {
		if err := compass.HideDir(cfg.DataDir); err != nil {
			logger.Warn("could not hide data directory", zap.String("dir", cfg.DataDir), zap.Error(err))
		}
	}

	s := newStore(cfg, logger)
	if err := s.Load(); err != nil {
		// Start empty. The unreadable file is kept until the first change is saved.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	s.SessionStart()

	m := tui.NewModel(s, tui.Options{Theme: cfg.Theme, ConfirmClear: cfg.ConfirmClear})

	var opts []tea.ProgramOption
	if isTerminal() {
		opts = append(opts, tea.WithAltScreen())
	}
	opts = append(opts, tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		s.SessionEnd()
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
