package orchestrator

import (
	"fmt"
	"strings"

	"github.com/vk/beebsbench/internal/matrix"
)

// BuildError reports the step that failed for one pair.
type BuildError struct {
	Pair matrix.Pair
	Step Step
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building %s on %s failed at %s: %v", e.Pair.Config, e.Pair.Arch.Name, e.Step, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// MatrixError collects the failed pairs of a ContinueOnError run, in matrix
// order.
type MatrixError struct {
	Attempted int
	Failures  []*BuildError
}

func (e *MatrixError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d builds failed", len(e.Failures), e.Attempted)
	for _, f := range e.Failures {
		b.WriteString("\n  ")
		b.WriteString(f.Error())
	}
	return b.String()
}

func (e *MatrixError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
