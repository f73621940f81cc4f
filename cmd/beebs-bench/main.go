package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tebeka/atexit"
	"github.com/vk/beebsbench/internal/app"
	"github.com/vk/beebsbench/internal/cli"
)

// main is the entrypoint for the beebs-bench driver.
func main() {
	// Use a minimal logger until the run's sink is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := exitCode(run(ctx, os.Stdout, os.Args[1:]), os.Stderr)

	// atexit.Exit skips deferred calls.
	stop()
	atexit.Exit(code)
}

// exitCode reports err on stderr and maps it to the process exit status.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(stderr, exitErr.Message)
		return exitErr.Code
	}
	fmt.Fprintln(stderr, err)
	return 1
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	benchApp, err := app.NewApp(outW, appConfig)
	if err != nil {
		return err
	}
	atexit.Register(func() { _ = benchApp.Close() })
	defer benchApp.Close()

	return benchApp.Run(ctx)
}
