package softfp

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Vector is one row of test input: two operands, the expected result and
// the expected exception flags, all as hexadecimal words.
type Vector struct {
	LHS      string
	RHS      string
	Expected string
	Flags    string
	Line     int
}

// Operands are formatted into a fixed-width record by the generated code,
// so they must be exactly one 32-bit word.
var (
	wordPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}$`)
	hexPattern  = regexp.MustCompile(`^[0-9a-fA-F]+$`)
)

// ParseVectors reads whitespace separated rows from r. Blank lines are
// skipped.
func ParseVectors(r io.Reader) ([]Vector, error) {
	var vectors []Vector
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: expected 4 fields (lhs rhs expected flags), got %d", line, len(fields))
		}
		v := Vector{LHS: fields[0], RHS: fields[1], Expected: fields[2], Flags: fields[3], Line: line}
		if !wordPattern.MatchString(v.LHS) || !wordPattern.MatchString(v.RHS) {
			return nil, fmt.Errorf("line %d: operands must be 8 hex digits", line)
		}
		if !hexPattern.MatchString(v.Expected) || !hexPattern.MatchString(v.Flags) {
			return nil, fmt.Errorf("line %d: expected result and flags must be hexadecimal", line)
		}
		vectors = append(vectors, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read test vectors: %w", err)
	}
	return vectors, nil
}
