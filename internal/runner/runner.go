package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/beebsbench/internal/ctxlog"
)

const defaultWaitDelay = 5 * time.Second

// Command is a single invocation.
type Command struct {
	Args         []string
	Timeout      time.Duration // zero means no limit
	WorkDir      string
	ToolchainDir string
}

// Executor is implemented by anything that can run a Command.
type Executor interface {
	Execute(ctx context.Context, c Command) error
}

// Runner executes commands on the host.
type Runner struct {
	searchPath string
	waitDelay  time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithSearchPath replaces the inherited PATH the toolchain dir is prepended to.
func WithSearchPath(path string) Option {
	return func(r *Runner) { r.searchPath = path }
}

// WithWaitDelay bounds how long Execute waits for output pipes to close
// after the child has been killed.
func WithWaitDelay(d time.Duration) Option {
	return func(r *Runner) { r.waitDelay = d }
}

// New returns a Runner that augments the invoking process' PATH.
func New(opts ...Option) *Runner {
	r := &Runner{
		searchPath: os.Getenv("PATH"),
		waitDelay:  defaultWaitDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs c to completion. Only PATH is passed to the child. Captured
// output is logged at debug level on success and at info level on failure.
func (r *Runner) Execute(ctx context.Context, c Command) error {
	logger := ctxlog.FromContext(ctx)
	if len(c.Args) == 0 {
		return &ExecutionError{Kind: StartFailed, Err: errors.New("empty command")}
	}
	logger.Debug("Running command.", "cmd", strings.Join(c.Args, " "), "dir", c.WorkDir, "timeout", c.Timeout)

	path := c.ToolchainDir + string(os.PathListSeparator) + r.searchPath
	bin, err := lookPath(c.Args[0], path)
	if err != nil {
		logger.Info("Process could not be started.", "error", err)
		return &ExecutionError{Args: c.Args, Kind: StartFailed, Err: err}
	}

	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, bin, c.Args[1:]...)
	cmd.Args[0] = c.Args[0]
	cmd.Dir = c.WorkDir
	cmd.Env = []string{"PATH=" + path}
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = r.waitDelay
	setProcessGroup(cmd)

	err = cmd.Run()
	switch {
	case err == nil:
		logger.Info("Process exited normally.")
		logOutput(ctx, logger, slog.LevelDebug, &stdout, &stderr)
		return nil

	case ctx.Err() != nil:
		logger.Info("Process canceled.", "error", ctx.Err())
		logOutput(ctx, logger, slog.LevelInfo, &stdout, &stderr)
		return &ExecutionError{Args: c.Args, Kind: Canceled, Err: ctx.Err()}

	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		logger.Info(fmt.Sprintf("Execution timeout (%s) expired.", c.Timeout))
		logOutput(ctx, logger, slog.LevelInfo, &stdout, &stderr)
		return &ExecutionError{Args: c.Args, Kind: Timeout, Timeout: c.Timeout, Err: context.DeadlineExceeded}

	// A background process spawned by the command may hold the output
	// pipes open after the command itself has exited.
	case errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success():
		logger.Info("Process exited normally.")
		logger.Warn("Output cut off, a background process kept the pipes open.", "wait_delay", r.waitDelay)
		logOutput(ctx, logger, slog.LevelDebug, &stdout, &stderr)
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Info(fmt.Sprintf("Process exited abnormally with code %d.", exitErr.ExitCode()))
		logOutput(ctx, logger, slog.LevelInfo, &stdout, &stderr)
		return &ExecutionError{Args: c.Args, Kind: NonZeroExit, Code: exitErr.ExitCode(), Err: err}
	}

	logger.Info("Process could not be started.", "error", err)
	return &ExecutionError{Args: c.Args, Kind: StartFailed, Err: err}
}

func logOutput(ctx context.Context, logger *slog.Logger, level slog.Level, stdout, stderr *bytes.Buffer) {
	logger.Log(ctx, level, "Stdout:\n\n"+stdout.String()+"\n")
	logger.Log(ctx, level, "Stderr:\n\n"+stderr.String()+"\n")
}

// lookPath resolves name against path rather than the invoking process'
// PATH, so executables in the toolchain dir shadow host ones.
func lookPath(name, path string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		if err := checkExecutable(name); err != nil {
			return "", err
		}
		return filepath.Abs(name)
	}
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if checkExecutable(candidate) == nil {
			return filepath.Abs(candidate)
		}
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func checkExecutable(file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	if info.IsDir() || info.Mode()&0o111 == 0 {
		return fs.ErrPermission
	}
	return nil
}
