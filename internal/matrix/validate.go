package matrix

import (
	"fmt"
	"slices"
)

// Axis names one of the two dimensions of the benchmark matrix.
type Axis string

const (
	AxisArch   Axis = "architecture"
	AxisConfig Axis = "configuration"
)

// InvalidSelectionError reports a selected value that is not part of the
// axis' registry.
type InvalidSelectionError struct {
	Axis  Axis
	Value string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Axis, e.Value)
}

// ValidateSelection checks that every selected value is allowed. The first
// offending value is reported.
func ValidateSelection(axis Axis, selected, allowed []string) error {
	for _, s := range selected {
		if !slices.Contains(allowed, s) {
			return &InvalidSelectionError{Axis: axis, Value: s}
		}
	}
	return nil
}
