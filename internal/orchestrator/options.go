package orchestrator

import (
	"fmt"
	"time"
)

// Policy decides what happens to the rest of the matrix after a pair fails.
type Policy int

const (
	FailFast Policy = iota
	ContinueOnError
)

func (p Policy) String() string {
	if p == ContinueOnError {
		return "continue-on-error"
	}
	return "fail-fast"
}

// Options tunes the pipeline. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	ConfigureTimeout time.Duration
	BuildTimeout     time.Duration
	CheckTimeout     time.Duration

	// MakeJobs is the parallelism hint passed to the build step as -j.
	MakeJobs int

	Policy Policy

	// Jobs is how many pairs may be built at once.
	Jobs int
}

// DefaultOptions returns the stock timeouts (30s, 120s, 60s), make -j9, and a
// sequential fail-fast matrix.
func DefaultOptions() Options {
	return Options{
		ConfigureTimeout: 30 * time.Second,
		BuildTimeout:     120 * time.Second,
		CheckTimeout:     60 * time.Second,
		MakeJobs:         9,
		Policy:           FailFast,
		Jobs:             1,
	}
}

func (o Options) validate() error {
	if o.ConfigureTimeout <= 0 || o.BuildTimeout <= 0 || o.CheckTimeout <= 0 {
		return fmt.Errorf("step timeouts must be positive")
	}
	if o.MakeJobs < 1 {
		return fmt.Errorf("make jobs must be at least 1, got %d", o.MakeJobs)
	}
	if o.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", o.Jobs)
	}
	return nil
}
