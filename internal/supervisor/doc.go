// Package supervisor owns the lifecycle of exactly one engine child process
// per run: spawn, poll, reap, cancel.
//
// A Supervisor is single-use and single-threaded: one goroutine constructs
// it, calls Run, and (on failure paths) calls Cancel. Interrupts reach the
// polling loop through the context handed to Run, typically one produced by
// signal.NotifyContext, so an interrupted parent always kills and reaps its
// child before exiting.
package supervisor
