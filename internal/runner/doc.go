// Package runner executes a single external command under a timeout, with a
// minimal environment whose PATH puts a toolchain's bin directory first. It
// captures the command's output into the context logger and classifies the
// outcome as success, timeout, non-zero exit, start failure or
// cancellation.
package runner
