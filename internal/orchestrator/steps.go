package orchestrator

import (
	"strconv"
	"time"

	"github.com/vk/beebsbench/internal/matrix"
)

// Step names one stage of a build instance's pipeline.
type Step string

const (
	StepPrepare   Step = "prepare"
	StepConfigure Step = "configure"
	StepBuild     Step = "build"
	StepCheck     Step = "check"
)

type stepSpec struct {
	step    Step
	banner  string
	args    []string
	timeout time.Duration
}

// pipeline returns the three steps for pair, in execution order.
func (o *Orchestrator) pipeline(pair matrix.Pair) []stepSpec {
	return []stepSpec{
		{
			step:   StepConfigure,
			banner: "Configuring...",
			args: []string{
				o.plan.ConfigureScript(),
				"--host=" + pair.Arch.Triple,
				"--with-chip=compare-" + pair.Config,
				"--with-board=generic",
			},
			timeout: o.opts.ConfigureTimeout,
		},
		{
			step:    StepBuild,
			banner:  "Building...",
			args:    []string{"make", "-j" + strconv.Itoa(o.opts.MakeJobs)},
			timeout: o.opts.BuildTimeout,
		},
		{
			step:    StepCheck,
			banner:  "Benchmarking...",
			args:    []string{"make", "check"},
			timeout: o.opts.CheckTimeout,
		},
	}
}
