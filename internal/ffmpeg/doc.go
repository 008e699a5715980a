// Package ffmpeg derives the engine command line for a transcode run.
//
// It builds the ordered argument vector from a Request, generates the
// conventional output file name when the caller did not pick one, and
// probes the engine binary for its version banner. Nothing in this package
// spawns the long-running transcode itself; that is the supervisor's job.
package ffmpeg
