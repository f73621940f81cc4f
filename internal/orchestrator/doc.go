// Package orchestrator drives the benchmark matrix. For every
// (architecture, configuration) pair of a matrix.Plan it recreates an empty
// build instance directory and runs the configure, build and check steps
// through a runner.Executor, stopping at the first failing step.
//
// By default the first failing pair also stops the matrix. With
// ContinueOnError every pair is attempted and the failures are reported
// together in a MatrixError.
package orchestrator
