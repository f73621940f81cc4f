// Package app contains the core application logic. It turns a validated
// Config into a logging sink, a resolved matrix.Plan and an orchestrator,
// and runs the benchmark matrix, decoupled from any specific entrypoint.
package app
