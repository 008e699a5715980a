package supervisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"fftranscode/internal/ffmpeg"
	"fftranscode/internal/history"
	"fftranscode/internal/logging"
)

const (
	// DefaultWaitInterval is the fixed polling interval.
	DefaultWaitInterval = time.Second
	// DefaultMaxWaits is one week of one-second waits.
	DefaultMaxWaits = 604800
)

var (
	// ErrTimeout reports that the child was still running when the polling
	// ceiling was reached. Distinct from any engine-reported exit code.
	ErrTimeout = errors.New("transcode exceeded maximum wait time")
	// ErrCancelled reports that the run was interrupted and the child was
	// killed and reaped.
	ErrCancelled = errors.New("transcode cancelled")
)

var (
	startCommand = exec.Command
	osExit       = os.Exit
)

type waitResult struct {
	code int
	err  error
}

// Supervisor runs one transcode child process to completion. Not safe for
// concurrent use; a single goroutine drives it.
type Supervisor struct {
	req    ffmpeg.Request
	logger *slog.Logger
	store  *history.Store
	runID  string

	waitInterval time.Duration
	maxWaits     int

	state      State
	numWaits   int
	cmd        *exec.Cmd
	waitCh     chan waitResult
	reaped     bool
	outputPath string
	lock       *flock.Flock
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Supervisor) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHistory attaches a run journal. Journaling is best-effort; a nil
// store disables it.
func WithHistory(store *history.Store) Option {
	return func(s *Supervisor) {
		s.store = store
	}
}

// WithWaitInterval overrides the polling interval.
func WithWaitInterval(interval time.Duration) Option {
	return func(s *Supervisor) {
		if interval > 0 {
			s.waitInterval = interval
		}
	}
}

// WithMaxWaits overrides the polling ceiling.
func WithMaxWaits(max int) Option {
	return func(s *Supervisor) {
		if max > 0 {
			s.maxWaits = max
		}
	}
}

// New constructs a supervisor for a single request.
func New(req ffmpeg.Request, opts ...Option) *Supervisor {
	s := &Supervisor{
		req:          req,
		logger:       logging.NewNop(),
		runID:        uuid.NewString(),
		waitInterval: DefaultWaitInterval,
		maxWaits:     DefaultMaxWaits,
		state:        StateNotStarted,
		waitCh:       make(chan waitResult, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "supervisor").With(logging.String("run_id", s.runID))
	return s
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	return s.state
}

// Waits returns the number of completed polling iterations.
func (s *Supervisor) Waits() int {
	return s.numWaits
}

// OutputPath returns the resolved output file path. Empty until Run has
// built the argument vector.
func (s *Supervisor) OutputPath() string {
	return s.outputPath
}

// Run executes the transcode: resolve output redirection, probe the engine
// version, build the argument vector, spawn the child, and poll until it
// exits or the ceiling is reached. The child's exit code is returned
// verbatim; a non-zero code is not an error here. ErrTimeout and
// ErrCancelled mark the supervisor-level failures. Callers must invoke
// Cancel on any error return to guarantee the child is reaped.
func (s *Supervisor) Run(ctx context.Context) (int, error) {
	if s.state != StateNotStarted {
		return 0, fmt.Errorf("supervisor already ran (state %s)", s.state)
	}

	out, cleanup, err := s.resolveOutput()
	if err != nil {
		return 0, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	version := ffmpeg.Version(ctx, s.logger)
	args, outputPath := ffmpeg.BuildArgs(s.req, version)
	s.outputPath = outputPath
	if s.req.OutputFile == "" {
		s.logger.Info("generated output file name", logging.String("output_file", outputPath))
	}

	unlock, err := s.acquireOutputLock(outputPath)
	if err != nil {
		return 0, err
	}
	defer unlock()

	s.logger.Info("starting engine", logging.Any("args", args))
	cmd := startCommand(args[0], args[1:]...)
	cmd.Stdout = out
	// stderr shares stdout's destination so error text keeps its
	// surrounding progress context.
	cmd.Stderr = out
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start engine: %w", err)
	}
	s.cmd = cmd
	s.state = StateRunning

	if err := s.store.RecordStart(ctx, s.runID, s.req.InputFile, outputPath, args); err != nil {
		s.logger.Warn("record run start", logging.Error(err))
	}

	go func() {
		waitErr := cmd.Wait()
		res := waitResult{}
		if waitErr != nil {
			var exitErr *exec.ExitError
			if errors.As(waitErr, &exitErr) {
				res.code = exitErr.ExitCode()
			} else {
				res.err = waitErr
			}
		}
		s.waitCh <- res
	}()

	return s.supervise(ctx)
}

func (s *Supervisor) supervise(ctx context.Context) (int, error) {
	ticker := time.NewTicker(s.waitInterval)
	defer ticker.Stop()

	for s.numWaits < s.maxWaits {
		select {
		case res := <-s.waitCh:
			s.reaped = true
			s.state = StateExited
			if res.err != nil {
				s.recordResult(history.StatusFailed, nil)
				return 0, fmt.Errorf("wait for engine: %w", res.err)
			}
			s.logger.Info("engine exited",
				logging.Int("exit_code", res.code),
				logging.Int("waits", s.numWaits))
			status := history.StatusCompleted
			if res.code != 0 {
				status = history.StatusFailed
			}
			s.recordResult(status, &res.code)
			return res.code, nil
		case <-ctx.Done():
			s.logger.Warn("interrupt received, cancelling transcode")
			s.state = StateCancelled
			s.killAndReap()
			s.recordResult(history.StatusCancelled, nil)
			return 0, ErrCancelled
		case <-ticker.C:
			s.numWaits++
		}
	}

	s.state = StateTimedOut
	s.recordResult(history.StatusTimedOut, nil)
	elapsed := time.Duration(s.maxWaits) * s.waitInterval
	return 0, fmt.Errorf("%w: engine still running after %s", ErrTimeout, elapsed)
}

// Cancel kills a still-running child and blocks until the OS confirms it
// was reaped, so no zombie is left behind. When forceExit is set the whole
// supervising process terminates with status 2 after cleanup; otherwise
// control returns to the caller so the original failure can propagate.
func (s *Supervisor) Cancel(forceExit bool) {
	s.logger.Warn("cancelling transcode")

	if s.cmd != nil && !s.reaped {
		s.logger.Warn("engine still executing, sending kill signal")
		s.killAndReap()
		// A run that already reached a terminal state (timed out) keeps its
		// recorded status; only a live run transitions to cancelled here.
		if s.state == StateRunning {
			s.state = StateCancelled
			s.recordResult(history.StatusCancelled, nil)
		}
	}

	if forceExit {
		osExit(2)
	}
}

func (s *Supervisor) killAndReap() {
	if s.cmd == nil || s.cmd.Process == nil || s.reaped {
		return
	}
	// Kill can race a child that just exited; the reap below still drains
	// the wait result either way.
	_ = s.cmd.Process.Kill()
	res := <-s.waitCh
	s.reaped = true
	s.logger.Debug("engine reaped after kill", logging.Int("exit_code", res.code))
}

func (s *Supervisor) resolveOutput() (io.Writer, func(), error) {
	if s.req.SubprocessOut == "" || s.req.SubprocessOut == "-" {
		s.logger.Info("using stdout for engine output")
		return os.Stdout, nil, nil
	}

	file, err := os.Create(s.req.SubprocessOut)
	if err != nil {
		return nil, nil, fmt.Errorf("open engine output file %s: %w", s.req.SubprocessOut, err)
	}
	s.logger.Info("opened file for engine output", logging.String("path", s.req.SubprocessOut))
	return file, func() { _ = file.Close() }, nil
}

// acquireOutputLock takes a flock next to the output path so two
// supervisors never write the same file concurrently.
func (s *Supervisor) acquireOutputLock(outputPath string) (func(), error) {
	lockPath := outputPath + ".lock"
	s.lock = flock.New(lockPath)

	locked, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("output %s is being written by another transcode", outputPath)
	}
	return func() {
		_ = s.lock.Unlock()
		_ = os.Remove(lockPath)
	}, nil
}

func (s *Supervisor) recordResult(status string, exitCode *int) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordResult(context.Background(), s.runID, status, exitCode); err != nil {
		s.logger.Warn("record run result", logging.Error(err))
	}
}
