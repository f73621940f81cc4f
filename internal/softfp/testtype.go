package softfp

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownTestType is returned for a test type with no template.
var ErrUnknownTestType = errors.New("unknown test type")

// TestType binds a test name to the libgcc routine it exercises.
type TestType struct {
	Name    string
	Routine string
}

var testTypes = []TestType{
	{Name: "f32_add", Routine: "__addsf3"},
}

// Lookup returns the test type registered under name.
func Lookup(name string) (TestType, error) {
	i := slices.IndexFunc(testTypes, func(tt TestType) bool { return tt.Name == name })
	if i < 0 {
		return TestType{}, fmt.Errorf("%w: %s", ErrUnknownTestType, name)
	}
	return testTypes[i], nil
}

// TestTypeNames lists every known test type.
func TestTypeNames() []string {
	names := make([]string, len(testTypes))
	for i, tt := range testTypes {
		names[i] = tt.Name
	}
	return names
}

// FileName is the name of the assembly file generated for the n-th vector.
func FileName(testType string, n int) string {
	return fmt.Sprintf("%s_%d.s", testType, n)
}
