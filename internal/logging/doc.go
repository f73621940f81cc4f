// Package logging builds the run's log sink: a slog.Logger that mirrors
// informational records to the console and writes every record, debug
// included, to a per-run file under <top>/logs named after the run's start
// time.
package logging
