// Package logging constructs the slog loggers used across fftranscode.
//
// Loggers are built once in the command layer and passed down explicitly;
// no package installs a process-wide default. The console handler renders
// compact timestamp/level/component lines for interactive use, while the
// JSON handler emits machine-readable records for file sinks.
package logging
