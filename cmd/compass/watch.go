package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeanpaul/compass/internal/compass"
)

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the listing whenever the data file changes",
		Long:  `Watch the data directory and reprint everyone each time people_data.json is rewritten. Read only.`,
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	cmd.Flags().Duration("debounce", 200*time.Millisecond, "Debounce window for batching changes")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	debounce, _ := cmd.Flags().GetDuration("debounce")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := cfg.DataFile()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Saves replace the file by rename, so watch the directory.
	if err := watcher.Add(cfg.DataDir); err != nil {
		return fmt.Errorf("watch %s: %w", cfg.DataDir, err)
	}

	out := cmd.OutOrStdout()
	show := func() {
		s := compass.New(cfg.DataDir, compass.WithLogger(zap.NewNop()))
		if err := s.Load(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			return
		}
		fmt.Fprintf(out, "--- %s (%d people)\n", time.Now().Format(time.TimeOnly), s.Len())
		_ = writeList(out, s.Points(), "table")
	}

	fmt.Fprintf(out, "Watching %s for changes...\n", path)
	show()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDataEvent(event, path) {
				continue
			}
			if !pending {
				timer.Reset(debounce)
				pending = true
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		case <-timer.C:
			pending = false
			show()
		}
	}
}

// isDataEvent reports whether event changed the data file itself.
func isDataEvent(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
