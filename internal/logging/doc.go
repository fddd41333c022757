// Package logging constructs the slog loggers used across annconv.
//
// Conversion diagnostics (overlap eliminations, boundary mismatches,
// double-claimed offsets) are advisory: they are emitted as Warn records on
// these loggers and never interrupt processing. The console format is picked
// when stderr is a terminal and JSON otherwise, so batch runs driven by
// other tooling stay machine-readable.
package logging
