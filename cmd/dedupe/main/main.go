package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/dedupe/cmd/dedupe"
	"github.com/arthur-debert/dedupe/pkg/exitcode"
	"github.com/arthur-debert/dedupe/pkg/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := dedupe.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// Print the error in red when stderr is a color terminal
		printer := output.NewPrinter(os.Stderr, output.DetectFormat(os.Stderr, false))
		_ = printer.Error(err)
		os.Exit(exitcode.ForError(err))
	}
}
