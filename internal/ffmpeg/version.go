package ffmpeg

import (
	"context"
	"log/slog"
	"os/exec"
	"regexp"

	"fftranscode/internal/logging"
)

var commandContext = exec.CommandContext

// versionPattern matches the engine's banner at the start of its output.
// There is no multiline search: anything printed before the banner makes
// the probe miss.
var versionPattern = regexp.MustCompile(`^ffmpeg version (.+) Copyright`)

// Version asks the engine for its version banner and extracts the version
// token from the combined output. Failures are logged and yield an empty
// string; version detection never aborts a run.
func Version(ctx context.Context, logger *slog.Logger) string {
	if logger == nil {
		logger = logging.NewNop()
	}

	cmd := commandContext(ctx, Binary, "-version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		logger.Warn("engine version probe failed", logging.Error(err))
		return ""
	}

	match := versionPattern.FindSubmatch(out)
	if match == nil {
		logger.Warn("engine version banner not recognized")
		return ""
	}

	version := string(match[1])
	logger.Info("detected engine version", logging.String("version", version))
	return version
}
