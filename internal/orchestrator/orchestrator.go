package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vk/beebsbench/internal/ctxlog"
	"github.com/vk/beebsbench/internal/matrix"
	"github.com/vk/beebsbench/internal/runner"
	"golang.org/x/sync/errgroup"
)

// Orchestrator runs a Plan's matrix.
type Orchestrator struct {
	plan *matrix.Plan
	exec runner.Executor
	opts Options
}

// New returns an Orchestrator for plan that runs commands through exec.
func New(plan *matrix.Plan, exec runner.Executor, opts Options) (*Orchestrator, error) {
	if plan == nil {
		return nil, errors.New("plan is required")
	}
	if exec == nil {
		return nil, errors.New("executor is required")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Orchestrator{plan: plan, exec: exec, opts: opts}, nil
}

// Run builds every pair of the plan. Under FailFast it returns the first
// *BuildError and leaves the remaining pairs unattempted; under
// ContinueOnError it attempts all pairs and returns a *MatrixError if any
// failed.
func (o *Orchestrator) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	pairs := o.plan.Pairs()

	logger.Info("Running for targets: " + strings.Join(archNames(o.plan.Arches()), ", "))
	logger.Info("Running configurations: " + strings.Join(o.plan.Configs(), ", "))
	logger.Debug("Matrix resolved.", "pairs", len(pairs), "policy", o.opts.Policy.String(), "jobs", o.opts.Jobs)

	if o.opts.Jobs > 1 {
		return o.runParallel(ctx, pairs)
	}

	var failures []*BuildError
	attempted := 0
	for _, pair := range pairs {
		if ctx.Err() != nil {
			break
		}
		attempted++
		err := o.BuildOne(ctx, pair)
		if err == nil {
			continue
		}
		var buildErr *BuildError
		if !errors.As(err, &buildErr) {
			return err
		}
		if o.opts.Policy == FailFast {
			return err
		}
		failures = append(failures, buildErr)
	}
	if len(failures) == 0 && ctx.Err() != nil {
		return ctx.Err()
	}
	return o.summarize(ctx, attempted, failures)
}

// runParallel builds up to Jobs pairs at once. Under FailFast the first
// failure cancels the pairs still in flight.
func (o *Orchestrator) runParallel(ctx context.Context, pairs []matrix.Pair) error {
	results := make([]error, len(pairs))
	ran := make([]bool, len(pairs))

	groupCtx := ctx
	var g *errgroup.Group
	if o.opts.Policy == FailFast {
		g, groupCtx = errgroup.WithContext(ctx)
	} else {
		g = &errgroup.Group{}
	}
	g.SetLimit(o.opts.Jobs)

	for i, pair := range pairs {
		g.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			ran[i] = true
			results[i] = o.BuildOne(groupCtx, pair)
			if o.opts.Policy == FailFast {
				return results[i]
			}
			return nil
		})
	}
	firstErr := g.Wait()

	if o.opts.Policy == FailFast {
		if firstErr == nil && ctx.Err() != nil {
			return ctx.Err()
		}
		return firstErr
	}

	var failures []*BuildError
	attempted := 0
	for i, err := range results {
		if ran[i] {
			attempted++
		}
		if err == nil {
			continue
		}
		var buildErr *BuildError
		if !errors.As(err, &buildErr) {
			return err
		}
		failures = append(failures, buildErr)
	}
	if len(failures) == 0 && ctx.Err() != nil {
		return ctx.Err()
	}
	return o.summarize(ctx, attempted, failures)
}

func (o *Orchestrator) summarize(ctx context.Context, attempted int, failures []*BuildError) error {
	if len(failures) == 0 {
		return nil
	}
	logger := ctxlog.FromContext(ctx)
	for _, f := range failures {
		logger.Error("Build failed.", "arch", f.Pair.Arch.Name, "config", f.Pair.Config, "step", string(f.Step))
	}
	return &MatrixError{Attempted: attempted, Failures: failures}
}

// BuildOne recreates the build instance directory for pair and runs its
// pipeline. Anything already at that path is discarded first. Output of
// steps that succeeded stays in place when a later step fails.
func (o *Orchestrator) BuildOne(ctx context.Context, pair matrix.Pair) error {
	ctx, logger := ctxlog.With(ctx, "arch", pair.Arch.Name, "config", pair.Config)
	logger.Info(fmt.Sprintf("Building %s on %s", pair.Config, pair.Arch.Name))

	dir := o.plan.BuildInstanceDir(pair)
	logger.Info("Building in " + dir)
	if err := prepareDir(dir); err != nil {
		logger.Info("Aborting due to error preparing the build directory.", "error", err)
		return &BuildError{Pair: pair, Step: StepPrepare, Err: err}
	}

	toolchainDir := o.plan.Paths(pair.Arch.Name).ToolchainDir()
	for _, s := range o.pipeline(pair) {
		logger.Info(s.banner)
		err := o.exec.Execute(ctx, runner.Command{
			Args:         s.args,
			Timeout:      s.timeout,
			WorkDir:      dir,
			ToolchainDir: toolchainDir,
		})
		if err != nil {
			logger.Info("Aborting due to error in command execution.", "step", string(s.step))
			return &BuildError{Pair: pair, Step: s.step, Err: err}
		}
	}
	return nil
}

// prepareDir leaves an empty directory at path, removing whatever was there.
func prepareDir(path string) error {
	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	case err == nil:
		if err := os.Remove(path); err != nil {
			return err
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}
	return os.MkdirAll(path, 0o755)
}

func archNames(arches []matrix.Arch) []string {
	names := make([]string, len(arches))
	for i, a := range arches {
		names[i] = a.Name
	}
	return names
}
