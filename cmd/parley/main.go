// Parley - display names and agent smoke tests for a chat bot.
//
// Stores the names users pick with "/myname" or "call me", and runs the
// end-to-end scenario suite against the agent entry point.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asteroid-belt/parley/internal/cli"
	"github.com/asteroid-belt/parley/internal/log"
	"github.com/asteroid-belt/parley/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	telemetryClient := telemetry.New()

	err := cli.Execute(ctx, telemetryClient)

	telemetryClient.Close()
	_ = log.Close()
	stop()

	if err != nil {
		os.Exit(1)
	}
}
