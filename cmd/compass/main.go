package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jeanpaul/compass/internal/tui"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
