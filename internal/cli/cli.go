package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/vk/beebsbench/internal/app"
	"github.com/vk/beebsbench/internal/matrix"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet("beebs-bench", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	flagSet.Usage = func() {
		fmt.Fprintf(output, `
Run BEEBS Benchmarks for a given set of configurations on a given set of
architectures. The default is to run all configurations on all architectures.

Available configurations are:

    %s

Available architectures are:

    %s

Usage:
  beebs-bench [options]

Options:
`, strings.Join(matrix.Configs(), " "), strings.Join(matrix.ArchNames(), " "))
		flagSet.PrintDefaults()
	}

	archesFlag := flagSet.StringSlice("arches", nil, "Target architectures, comma separated or repeated.")
	configsFlag := flagSet.StringSlice("configs", nil, "Configurations, comma separated or repeated.")
	buildDirFlags := make(map[string]*string)
	installDirFlags := make(map[string]*string)
	for _, arch := range matrix.ArchNames() {
		buildDirFlags[arch] = flagSet.String(arch+"-build-dir", "", fmt.Sprintf("Directory in which %s benchmarks are built.", arch))
		installDirFlags[arch] = flagSet.String(arch+"-install-dir", "", fmt.Sprintf("Directory in which the %s toolchain is installed.", arch))
	}
	topDirFlag := flagSet.String("top-dir", "", "Top-level directory. Defaults to the current directory.")
	beebsDirFlag := flagSet.String("beebs-dir", "", "BEEBS source directory. Defaults to <top-dir>/beebs.")
	runFileFlag := flagSet.String("run-file", "", "Optional HCL run file.")
	keepGoingFlag := flagSet.Bool("keep-going", false, "Attempt every pair after a failure and report a summary.")
	jobsFlag := flagSet.Int("jobs", 1, "Number of pairs to build concurrently.")
	logLevelFlag := flagSet.String("log-level", "info", "Console logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", "auto", "Console log format. Options: 'auto', 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}

	topDir := *topDirFlag
	if topDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, false, &ExitError{Code: 1, Message: err.Error()}
		}
		topDir = wd
	}

	cfg := app.Config{
		TopDir:      topDir,
		BeebsDir:    *beebsDirFlag,
		RunFile:     *runFileFlag,
		Arches:      *archesFlag,
		Configs:     *configsFlag,
		BuildDirs:   make(map[string]string),
		InstallDirs: make(map[string]string),
		LogLevel:    *logLevelFlag,
		LogFormat:   *logFormatFlag,
	}
	for arch, dir := range buildDirFlags {
		cfg.BuildDirs[arch] = *dir
	}
	for arch, dir := range installDirFlags {
		cfg.InstallDirs[arch] = *dir
	}
	if flagSet.Changed("keep-going") {
		cfg.KeepGoing = keepGoingFlag
	}
	if flagSet.Changed("jobs") {
		cfg.Jobs = jobsFlag
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
