package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/vk/beebsbench/internal/ctxlog"
	"github.com/vk/beebsbench/internal/logging"
	"github.com/vk/beebsbench/internal/matrix"
	"github.com/vk/beebsbench/internal/orchestrator"
	"github.com/vk/beebsbench/internal/runfile"
	"github.com/vk/beebsbench/internal/runner"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	config       *Config
	sink         *logging.Sink
	logger       *slog.Logger
	plan         *matrix.Plan
	orchestrator *orchestrator.Orchestrator
}

// Option customises an App, mainly for tests.
type Option func(*options)

type options struct {
	exec runner.Executor
	now  func() time.Time
	env  func() []string
}

// WithExecutor replaces the host process runner.
func WithExecutor(exec runner.Executor) Option {
	return func(o *options) { o.exec = exec }
}

// WithEnviron replaces the environment exposed to run-file expressions.
func WithEnviron(env func() []string) Option {
	return func(o *options) { o.env = env }
}

// WithClock replaces the clock used to name the log file.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewApp opens the run's log sink, merges the optional run file beneath the
// command-line configuration, and resolves the plan. Selection errors are
// reported here, before any build directory is touched. On error the sink
// is already closed.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	o := options{exec: runner.New(), now: time.Now, env: os.Environ}
	for _, opt := range opts {
		opt(&o)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	sink, err := logging.Open(cfg.TopDir, o.now(), logging.Options{
		Console: outW,
		Level:   level,
		Format:  cfg.LogFormat,
	})
	if err != nil {
		return nil, err
	}
	logger := sink.Logger
	logger.Info("Top dir: " + cfg.TopDir)
	logger.Debug("Logger configured successfully.", "log_file", sink.Path())

	a := &App{config: cfg, sink: sink, logger: logger}
	if err := a.resolve(o); err != nil {
		logger.Error("Invalid configuration.", "error", err)
		_ = sink.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) resolve(o options) error {
	ctx := ctxlog.WithLogger(context.Background(), a.logger)
	cfg := a.config

	file := &runfile.File{}
	if cfg.RunFile != "" {
		var err error
		file, err = runfile.Load(ctx, cfg.RunFile, runfile.Vars{TopDir: cfg.TopDir, Env: environ(o.env())})
		if err != nil {
			return err
		}
		a.logger.Debug("Run file loaded.", "path", cfg.RunFile)
	}

	spec := matrix.PlanSpec{
		TopDir:    cfg.TopDir,
		BeebsDir:  cfg.BeebsDir,
		Arches:    firstNonEmpty(cfg.Arches, file.Arches),
		Configs:   firstNonEmpty(cfg.Configs, file.Configs),
		Overrides: make(map[string]matrix.Paths),
	}
	for arch, p := range file.Overrides {
		spec.Overrides[arch] = p
	}
	for arch, dir := range cfg.BuildDirs {
		if dir == "" {
			continue
		}
		p := spec.Overrides[arch]
		p.BuildDir = dir
		spec.Overrides[arch] = p
	}
	for arch, dir := range cfg.InstallDirs {
		if dir == "" {
			continue
		}
		p := spec.Overrides[arch]
		p.InstallDir = dir
		spec.Overrides[arch] = p
	}

	plan, err := matrix.NewPlan(spec)
	if err != nil {
		return err
	}

	opts := orchestrator.DefaultOptions()
	if t := file.Timeouts.Configure; t > 0 {
		opts.ConfigureTimeout = t
	}
	if t := file.Timeouts.Build; t > 0 {
		opts.BuildTimeout = t
	}
	if t := file.Timeouts.Check; t > 0 {
		opts.CheckTimeout = t
	}
	if file.MakeJobs != nil {
		opts.MakeJobs = *file.MakeJobs
	}
	if keepGoing := firstSet(cfg.KeepGoing, file.KeepGoing); keepGoing != nil && *keepGoing {
		opts.Policy = orchestrator.ContinueOnError
	}
	if jobs := firstSet(cfg.Jobs, file.Jobs); jobs != nil {
		opts.Jobs = *jobs
	}

	orch, err := orchestrator.New(plan, o.exec, opts)
	if err != nil {
		return err
	}
	a.plan = plan
	a.orchestrator = orch
	return nil
}

// Plan returns the resolved plan. This is primarily for testing.
func (a *App) Plan() *matrix.Plan {
	return a.plan
}

// LogPath returns the location of the run's log file.
func (a *App) LogPath() string {
	return a.sink.Path()
}

// Close flushes and closes the log file.
func (a *App) Close() error {
	return a.sink.Close()
}

func firstNonEmpty(a, b []string) []string {
	if len(a) > 0 {
		return a
	}
	return b
}

func firstSet[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}

func environ(kv []string) map[string]string {
	env := make(map[string]string, len(kv))
	for _, e := range kv {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}
	return env
}
