package runner

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrExecution is matched by every ExecutionError, so callers that do not
// care why a command failed can test for it with errors.Is.
var ErrExecution = errors.New("command execution failed")

// Kind classifies why a command failed.
type Kind int

const (
	Timeout Kind = iota + 1
	NonZeroExit
	StartFailed
	Canceled
)

func (k Kind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case NonZeroExit:
		return "non-zero exit"
	case StartFailed:
		return "start failed"
	case Canceled:
		return "canceled"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ExecutionError describes a failed command.
type ExecutionError struct {
	Args    []string
	Kind    Kind
	Code    int           // exit status, NonZeroExit only
	Timeout time.Duration // budget that was exceeded, Timeout only
	Err     error
}

func (e *ExecutionError) Error() string {
	cmd := strings.Join(e.Args, " ")
	switch e.Kind {
	case Timeout:
		return fmt.Sprintf("%s: execution timeout (%s) expired", cmd, e.Timeout)
	case NonZeroExit:
		return fmt.Sprintf("%s: exited abnormally with code %d", cmd, e.Code)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", cmd, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s", cmd, e.Kind)
	}
}

func (e *ExecutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExecution}
	}
	return []error{ErrExecution, e.Err}
}
