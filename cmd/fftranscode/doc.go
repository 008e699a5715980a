// Package main hosts the fftranscode CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, sets up structured
// logging, and hands the assembled transcode request to the supervisor. The
// root command runs a single supervised ffmpeg invocation; subcommands cover
// configuration scaffolding, dependency checks, and the run history journal.
//
// Keep this package lean: command handlers translate flags into internal
// package calls and map errors to exit codes, nothing more.
package main
