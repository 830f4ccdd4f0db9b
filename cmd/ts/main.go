package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"timesheet/internal/cli"
)

func main() {
	// Interrupts cancel the context so long-running commands such as remind run exit cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewDefaultApp(connect)
	err := app.Run(ctx, os.Args[1:])
	if closeErr := app.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
